package matching

import (
	"fmt"
	"math"
	"strings"
)

const (
	weightSkills     = 0.4
	weightText       = 0.3
	weightExperience = 0.2
	weightLocation   = 0.1
)

func Combine(skills SkillsMatch, textScore float64, exp ExperienceMatch, loc LocationMatch) MatchResult {
	total := skills.Percentage*weightSkills +
		textScore*weightText +
		float64(exp.Score)*weightExperience +
		float64(loc.Score)*weightLocation

	return MatchResult{
		MatchScore: clampInt(int(math.Round(total)), 0, 100),
		MatchDetails: MatchDetails{
			SkillsMatch:     skills,
			ExperienceMatch: exp,
			LocationMatch:   loc,
		},
		Reasoning: reasoning(total, skills, exp, loc),
	}
}

func reasoning(total float64, skills SkillsMatch, exp ExperienceMatch, loc LocationMatch) string {
	parts := make([]string, 0, 4)
	switch {
	case total >= 80:
		parts = append(parts, "Excellent match!")
	case total >= 60:
		parts = append(parts, "Good match.")
	default:
		parts = append(parts, "Moderate match.")
	}

	parts = append(parts, fmt.Sprintf("%d%% skills match.", int(math.Round(skills.Percentage))))
	parts = append(parts, exp.Reason)
	parts = append(parts, loc.Reason)

	return strings.Join(parts, " ")
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
