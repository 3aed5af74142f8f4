package calendar

import (
	"testing"
	"time"

	"github.com/nhle/assessment-calendar/internal/model"
)

func TestExtractKey(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024-03-01T10:00:00.000Z", "2024-03-01"},
		{"2024-03-01 00:00:00", "2024-03-01"},
		{"2024-03-01", "2024-03-01"},
		{"  2024-03-01T00:00:00.000Z  ", "2024-03-01"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractKey(tc.raw); got != tc.want {
			t.Errorf("ExtractKey(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestLocalKeyUsesLocalComponents(t *testing.T) {
	// 23:30 local on March 1st must stay March 1st no matter what the
	// equivalent UTC calendar day is.
	d := time.Date(2024, time.March, 1, 23, 30, 0, 0, time.Local)
	if got := LocalKey(d); got != "2024-03-01" {
		t.Errorf("LocalKey = %q, want 2024-03-01", got)
	}

	early := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	if got := LocalKey(early); got != "2024-03-01" {
		t.Errorf("LocalKey at midnight = %q, want 2024-03-01", got)
	}
}

func TestLocalKeyZeroPads(t *testing.T) {
	d := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.Local)
	if got := LocalKey(d); got != "2024-01-05" {
		t.Errorf("LocalKey = %q, want 2024-01-05", got)
	}
}

func TestOnDayMatchesMidnightLocalDate(t *testing.T) {
	// An assessment stored at exactly midnight on a date must match that
	// date's cell regardless of the host timezone offset.
	day := model.CalendarDay{
		Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local),
	}

	for _, raw := range []string{
		"2024-03-01 00:00:00",
		"2024-03-01T00:00:00.000Z",
		"2024-03-01",
	} {
		a := model.Assessment{SubmitDate: raw}
		if !OnDay(a, day) {
			t.Errorf("assessment with submit_date %q did not match 2024-03-01", raw)
		}
	}

	miss := model.Assessment{SubmitDate: "2024-03-02 00:00:00"}
	if OnDay(miss, day) {
		t.Error("assessment due 2024-03-02 matched 2024-03-01")
	}
}

func TestAssessmentsOn(t *testing.T) {
	day := model.CalendarDay{
		Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local),
	}
	list := []model.Assessment{
		{ID: 1, SubmitDate: "2024-03-01 00:00:00"},
		{ID: 2, SubmitDate: "2024-03-02 00:00:00"},
		{ID: 3, SubmitDate: "2024-03-01T09:00:00.000Z"},
	}

	got := AssessmentsOn(list, day)
	if len(got) != 2 {
		t.Fatalf("got %d assessments, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("got IDs %d,%d, want 1,3", got[0].ID, got[1].ID)
	}
}

func TestDisplayKey(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024-03-01T00:00:00.000Z", "01-03-2024"},
		{"2024-03-01 00:00:00", "01-03-2024"},
		{"2024-3-1", "01-03-2024"},
		{"not-a-date", "not-a-date"},
		{"nodashes", "nodashes"},
	}
	for _, tc := range cases {
		if got := DisplayKey(tc.raw); got != tc.want {
			t.Errorf("DisplayKey(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
