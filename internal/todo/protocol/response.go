package protocol

import (
	"encoding/json"
	"fmt"
)

// Status is the outcome field of a response envelope.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
	StatusWarning Status = "WARNING"
)

// Response is the fixed-shape envelope for status messages. Listing commands
// bypass it and return their rendered text raw.
type Response struct {
	Status  Status `json:"status"`
	Message string `json:"Message"`
}

// Format renders the envelope for the wire.
func Format(status Status, message string) string {
	b, err := json.Marshal(Response{Status: status, Message: message})
	if err != nil {
		// Response only holds strings; Marshal cannot fail on it.
		panic(err)
	}
	return string(b)
}

// Successf formats a SUCCESS envelope.
func Successf(format string, args ...any) string {
	return Format(StatusSuccess, fmt.Sprintf(format, args...))
}

// Errorf formats an ERROR envelope.
func Errorf(format string, args ...any) string {
	return Format(StatusError, fmt.Sprintf(format, args...))
}

// Warningf formats a WARNING envelope.
func Warningf(format string, args ...any) string {
	return Format(StatusWarning, fmt.Sprintf(format, args...))
}
