package trace

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NewSession returns a fresh session id. Every CLI run stamps one on the
// trace header so that traces from parallel runs can be told apart.
func NewSession() string {
	return uuid.NewString()
}

// formatHeader renders the first line of a stream trace.
func formatHeader(session string, level Level, format Format) []byte {
	if format == FormatNDJSON {
		data, _ := json.Marshal(struct {
			Kind    string `json:"kind"`
			Session string `json:"session"`
			Level   string `json:"level"`
		}{"header", session, level.String()})
		return append(data, '\n')
	}
	return fmt.Appendf(nil, "# dotlib trace session=%s level=%s\n", session, level)
}
