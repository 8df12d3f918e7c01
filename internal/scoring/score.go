// Package scoring computes keyword-overlap match percentages between résumé
// text and job postings.
package scoring

import (
	"math"
	"regexp"
	"strings"
)

// titleBonusCap limits how many points the job title can contribute.
const titleBonusCap = 2

var titleTokenSplit = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Score returns the match percentage in [0,100] for a résumé against a job.
//
// Each keyword present in the résumé (case-insensitive substring match) counts
// one point; duplicates in the keyword list each count. Title tokens found in
// the résumé add up to titleBonusCap extra points. The denominator always
// includes the title allowance, so an empty keyword list still scores out of 2.
func Score(resumeText, jobTitle string, keywords []string) int {
	rt := strings.ToLower(resumeText)

	total := len(keywords) + titleBonusCap
	if total < 1 {
		total = 1
	}

	hits := 0
	for _, k := range keywords {
		if strings.Contains(rt, strings.ToLower(k)) {
			hits++
		}
	}

	titleHits := 0
	for _, tok := range titleTokenSplit.Split(strings.ToLower(jobTitle), -1) {
		if tok == "" {
			continue
		}
		if strings.Contains(rt, tok) {
			titleHits++
		}
	}
	if titleHits > titleBonusCap {
		titleHits = titleBonusCap
	}

	pct := int(math.Round(100 * float64(hits+titleHits) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// MatchedKeywords returns the keywords from the job that appear in the résumé
// text, preserving the job's keyword order.
func MatchedKeywords(resumeText string, keywords []string) []string {
	rt := strings.ToLower(resumeText)
	matched := []string{}
	for _, k := range keywords {
		if strings.Contains(rt, strings.ToLower(k)) {
			matched = append(matched, k)
		}
	}
	return matched
}
