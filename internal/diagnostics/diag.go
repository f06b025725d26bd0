package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes reported by the operator surface.
const (
	ControlParse   = "CONTROL.PARSE"
	ControlBusy    = "CONTROL.BUSY"
	ControlReject  = "CONTROL.REJECTED"
	ConfigSave     = "CONFIG.SAVE"
	DriverFallback = "DRIVER.FALLBACK"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Rejected reports a control command whose value is out of range.
func Rejected(field string, value any, valid string) Diagnostic {
	return Diagnostic{
		Severity:       Warn,
		Code:           ControlReject,
		Summary:        fmt.Sprintf("%s %v rejected", field, value),
		SuggestedFixes: []string{"use " + valid},
		Evidence:       map[string]any{field: value},
	}
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Summary)
	}
	return fmt.Sprintf("[%s] %s: %s (%s)", d.Severity, d.Code, d.Summary, d.Detail)
}
