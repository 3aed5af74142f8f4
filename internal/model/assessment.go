package model

// DefaultColor is applied server-side when a new assessment omits a color.
const DefaultColor = "#FF6B6B"

// Assessment is a due-dated item shown on the calendar. The server assigns
// the ID; all other fields are replaced wholesale on update.
//
// SubmitDate travels as a date/time string ("2024-03-01 00:00:00" or
// "2024-03-01T00:00:00.000Z" depending on the driver). Day matching never
// parses it back into a time.Time; see the calendar package.
type Assessment struct {
	ID          int    `json:"ID" gorm:"column:ID;primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Description string `json:"description" gorm:"column:description;type:text"`
	SubmitDate  string `json:"submit_date" gorm:"column:submit_date;type:datetime;not null"`
	Color       string `json:"color" gorm:"column:color;type:varchar(16)"`
}

// TableName preserves the (misspelled) table name the schema shipped with.
func (Assessment) TableName() string { return "assessement" }

// AssessmentInput is the payload accepted by the create and update endpoints.
// Name and SubmitDate are mandatory on creation; Description and Color fall
// back to defaults server-side.
type AssessmentInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	SubmitDate  string `json:"submit_date" validate:"required"`
	Color       string `json:"color"`
}

// ApplyDefaults fills optional fields the way the server would.
func (in *AssessmentInput) ApplyDefaults() {
	if in.Color == "" {
		in.Color = DefaultColor
	}
}
