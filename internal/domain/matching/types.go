package matching

import (
	"errors"
	"strings"
)

var ErrMalformedJob = errors.New("malformed job")

type Experience struct {
	Title       string
	Description string
}

type Candidate struct {
	Bio        string
	Location   string
	Skills     []string
	Experience []Experience
}

type Job struct {
	Title            string
	Description      string
	RequiredSkills   []string
	Responsibilities []string
	Qualifications   []string
	ExperienceLevel  string
	Location         string
}

// Validate reports jobs that cannot be scored meaningfully. Batch callers skip them.
func (j Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return errors.Join(ErrMalformedJob, errors.New("missing title"))
	}
	if strings.TrimSpace(j.Description) == "" {
		return errors.Join(ErrMalformedJob, errors.New("missing description"))
	}
	return nil
}

type SkillsMatch struct {
	Percentage float64  `json:"percentage"`
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
}

type ExperienceMatch struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type LocationMatch struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type MatchDetails struct {
	SkillsMatch     SkillsMatch     `json:"skillsMatch"`
	ExperienceMatch ExperienceMatch `json:"experienceMatch"`
	LocationMatch   LocationMatch   `json:"locationMatch"`
}

type MatchResult struct {
	MatchScore   int          `json:"matchScore"`
	MatchDetails MatchDetails `json:"matchDetails"`
	Reasoning    string       `json:"reasoning"`
}
