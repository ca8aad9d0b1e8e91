package matching

import (
	"fmt"
	"math"
	"strconv"
)

// YearsEstimator turns experience entries into a tenure figure.
type YearsEstimator interface {
	EstimateYears(entries []Experience) float64
}

// EntryCountEstimator assumes two years per experience entry.
type EntryCountEstimator struct{}

func (EntryCountEstimator) EstimateYears(entries []Experience) float64 {
	return float64(2 * len(entries))
}

type yearsRange struct {
	min float64
	max float64
}

const (
	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"
	LevelLead   = "lead"
)

var levelRanges = map[string]yearsRange{
	LevelEntry:  {min: 0, max: 2},
	LevelMid:    {min: 2, max: 5},
	LevelSenior: {min: 5, max: 10},
	LevelLead:   {min: 8, max: 100},
}

// LevelRange returns the inclusive years band for a level; unknown levels use mid.
func LevelRange(level string) (float64, float64) {
	r, ok := levelRanges[level]
	if !ok {
		r = levelRanges[LevelMid]
	}
	return r.min, r.max
}

func MatchExperience(years float64, level string) ExperienceMatch {
	lo, hi := LevelRange(level)

	switch {
	case years >= lo && years <= hi:
		return ExperienceMatch{Score: 100, Reason: "Perfect experience match"}
	case years < lo:
		diff := lo - years
		score := int(math.Max(0, math.Round(100-diff*20)))
		return ExperienceMatch{
			Score:  score,
			Reason: fmt.Sprintf("%s years below requirement", strconv.FormatFloat(diff, 'f', -1, 64)),
		}
	default:
		return ExperienceMatch{Score: 90, Reason: "Over-qualified but suitable"}
	}
}
