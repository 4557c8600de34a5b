// Package response defines the canonical JSON envelope shared by every
// endpoint: {success, message, data, statusCode, timestamp}. Handlers use the
// success helpers; the central error handler produces the failure shape.
package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
}

func envelope(success bool, message string, data any, status int) Envelope {
	return Envelope{
		Success:    success,
		Message:    message,
		Data:       data,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// OK renders a 200 success envelope.
func OK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, envelope(true, message, data, http.StatusOK))
}

// Created renders a 201 success envelope.
func Created(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, envelope(true, message, data, http.StatusCreated))
}

// Error builds the failure envelope used by the central error handler.
func Error(message string, status int) Envelope {
	return envelope(false, message, nil, status)
}
