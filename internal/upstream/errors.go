package upstream

import "fmt"

// Error is a non-success response from the upstream catalog API. Status 0
// means the request never produced a response (network failure).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0:
		return "upstream request failed: " + e.Message
	case e.Message == "":
		return fmt.Sprintf("upstream returned %d", e.Status)
	default:
		return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
	}
}

// Retryable reports whether the failure is eligible for backoff retry.
// Client errors (4xx) are surfaced immediately.
func (e *Error) Retryable() bool {
	return e.Status >= 500 || e.Status == 0
}
