package extraction

import (
	"regexp"
	"strings"
)

// Issue codes reported by Check.
const (
	IssueUnextractable   = "unextractable"
	IssueIrregularLayout = "irregular-layout"
)

// whitespaceRun matches runs of three or more consecutive whitespace
// characters, a proxy for multi-column or table layouts that confuse ATS
// parsers.
var whitespaceRun = regexp.MustCompile(`\s{3,}`)

// irregularRunThreshold is the number of whitespace runs above which a PDF is
// flagged as irregular.
const irregularRunThreshold = 50

// Check inspects extracted text for signs it is unusable for scoring.
// ok is true iff no issues were found.
func Check(text string, format Format) (ok bool, issues []string) {
	issues = []string{}
	if strings.TrimSpace(text) == "" {
		issues = append(issues, IssueUnextractable)
	}
	if format == FormatPDF && len(whitespaceRun.FindAllStringIndex(text, -1)) > irregularRunThreshold {
		issues = append(issues, IssueIrregularLayout)
	}
	return len(issues) == 0, issues
}
