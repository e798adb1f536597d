package tool

import "fmt"

// Metadata records where and when a tool call was served. The registry
// stamps it onto every envelope it returns, overwriting whatever the
// adapter set.
type Metadata struct {
	Source    string `json:"source"`
	Operation string `json:"operation"`
	Timestamp string `json:"timestamp"`
	Server    string `json:"server,omitempty"`
}

// Envelope is the uniform result of every tool call. Exactly one of Data
// and Error is meaningful depending on Success.
type Envelope struct {
	Success  bool      `json:"success"`
	Data     any       `json:"data,omitempty"`
	Message  string    `json:"message,omitempty"`
	Error    string    `json:"error,omitempty"`
	Metadata *Metadata `json:"_metadata,omitempty"`
}

// Ok builds a success envelope.
func Ok(data any, message string) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// Okf builds a success envelope with a formatted message.
func Okf(data any, format string, args ...any) Envelope {
	return Ok(data, fmt.Sprintf(format, args...))
}

// Fail builds a failure envelope.
func Fail(err string) Envelope {
	return Envelope{
		Success: false,
		Error:   err,
	}
}

// Failf builds a failure envelope from a format string.
func Failf(format string, args ...any) Envelope {
	return Fail(fmt.Sprintf(format, args...))
}
