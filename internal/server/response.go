package server

import "github.com/gofiber/fiber/v2"

// Envelope is the JSON wrapper every endpoint responds with.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// OK writes a success envelope with the given status, payload, and message.
func OK(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Fail writes a failure envelope. err may be nil for purely client-side
// failures such as validation and missing routes.
func Fail(c *fiber.Ctx, status int, message string, err error) error {
	env := Envelope{
		Success: false,
		Message: message,
	}
	if err != nil {
		env.Error = err.Error()
	}
	return c.Status(status).JSON(env)
}
