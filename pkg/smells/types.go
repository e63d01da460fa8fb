package smells

import (
	"strings"

	"github.com/rxwycdh/rxhash"
)

// Severity tags a finding via its leading marker in the rendered message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityOK      Severity = "ok"
)

// Finding is one detected smell in a Dockerfile, or the clean marker when no
// check fired. The clean marker never coexists with another finding for the
// same file.
type Finding struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return strings.ToUpper(string(f.Severity)) + ": " + f.Message
}

// Fingerprint returns a stable hash of the finding, used for baseline
// suppression across runs.
func (f Finding) Fingerprint() string {
	h, err := rxhash.HashStruct(f)
	if err != nil {
		return ""
	}
	return h
}
