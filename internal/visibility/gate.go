// Package visibility shapes computed match scores for presentation based on
// the viewer's subscription tier. Every read path goes through Apply so no
// endpoint can leak a real score that another one masks.
package visibility

import "math"

// Viewer describes the inputs the gate needs about the requester. Both fields
// are plain data so the gate stays a pure function.
type Viewer struct {
	Premium bool
	// ShowMatchToFree is the process-wide override that reveals real scores
	// to free viewers. It is passed in explicitly, never read from ambient
	// state.
	ShowMatchToFree bool
}

// View is the gated portion of a job annotation.
type View struct {
	MatchScore      *int     `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	Locked          bool     `json:"locked"`
	ScoreHint       *int     `json:"score_hint,omitempty"`
}

// Apply enforces tier visibility on a view in place.
//
// Premium viewers (or anyone when the override is on) see the view untouched.
// Free viewers get a locked view: the real score and matched keywords are
// removed and replaced with a hint bucketed to the nearest multiple of 10, so
// the exact score cannot be reconstructed.
func Apply(viewer Viewer, v *View) {
	if viewer.Premium || viewer.ShowMatchToFree {
		v.Locked = false
		return
	}

	if v.MatchScore != nil {
		hint := int(math.Round(float64(*v.MatchScore)/10.0)) * 10
		v.ScoreHint = &hint
	}
	v.Locked = true
	v.MatchScore = nil
	v.MatchedKeywords = []string{}
}
