package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deadanime/proxy/internal/upstream"
)

// Envelope is the structured error body every failed request gets. Stack is
// only populated in development mode.
type Envelope struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Stack     string `json:"stack,omitempty"`
}

// GlobalErrorHandler converts every error escaping a handler into an
// Envelope. Nothing reaches the inbound caller unconverted.
func GlobalErrorHandler(dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			respond(c, http.StatusBadRequest, ve.Message, "")
			return
		}

		var ue *upstream.Error
		if errors.As(err, &ue) {
			status := ue.Status
			if status == 0 {
				status = http.StatusInternalServerError
			}
			respond(c, status, ue.Message, "")
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			respond(c, he.Code, fmt.Sprintf("%v", he.Message), "")
			return
		}

		slog.Error("Unhandled error", "error", err, "path", c.Path())
		var stack string
		if dev {
			stack = string(debug.Stack())
		}
		respond(c, http.StatusInternalServerError, err.Error(), stack)
	}
}

func respond(c echo.Context, status int, message, stack string) {
	if message == "" {
		message = http.StatusText(status)
	}
	_ = c.JSON(status, Envelope{
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Stack:     stack,
	})
}
