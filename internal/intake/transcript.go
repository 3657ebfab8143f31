package intake

import (
	"strings"
	"time"
)

const (
	// TranscriptName is the object name of the generated transcript.
	TranscriptName        = "intake_answers.txt"
	transcriptContentType = "text/plain"

	bannerWidth      = 50
	submittedLayout  = "January 02, 2006 at 03:04 PM"
	defaultOrgName   = "HALEY DYNAMIC SYSTEMS"
	transcriptIndent = "  "
)

// BuildTranscript renders fields as a plain-text document. Values are
// embedded verbatim and fields keep their order.
func BuildTranscript(org string, fields []Field, submittedAt time.Time) string {
	if strings.TrimSpace(org) == "" {
		org = defaultOrgName
	}
	rule := strings.Repeat("=", bannerWidth)

	lines := make([]string, 0, 5+3*len(fields))
	lines = append(lines,
		rule,
		org+" - CLIENT INTAKE",
		rule,
		"Submitted: "+submittedAt.Format(submittedLayout),
		"",
	)
	for _, f := range fields {
		lines = append(lines, Label(f.Key)+":", transcriptIndent+f.Value, "")
	}
	return strings.Join(lines, "\n")
}
