package dto

import "talent-match/internal/domain/matching"

type SkillsMatchResponse struct {
	Percentage float64  `json:"percentage"`
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
}

type ScoreReasonResponse struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type MatchDetailsResponse struct {
	SkillsMatch     SkillsMatchResponse `json:"skills_match"`
	ExperienceMatch ScoreReasonResponse `json:"experience_match"`
	LocationMatch   ScoreReasonResponse `json:"location_match"`
}

type MatchResultResponse struct {
	MatchScore   int                  `json:"match_score"`
	MatchDetails MatchDetailsResponse `json:"match_details"`
	Reasoning    string               `json:"reasoning"`
}

func NewMatchDetailsResponse(d matching.MatchDetails) MatchDetailsResponse {
	matched := d.SkillsMatch.Matched
	if matched == nil {
		matched = []string{}
	}
	missing := d.SkillsMatch.Missing
	if missing == nil {
		missing = []string{}
	}
	return MatchDetailsResponse{
		SkillsMatch: SkillsMatchResponse{
			Percentage: d.SkillsMatch.Percentage,
			Matched:    matched,
			Missing:    missing,
		},
		ExperienceMatch: ScoreReasonResponse{Score: d.ExperienceMatch.Score, Reason: d.ExperienceMatch.Reason},
		LocationMatch:   ScoreReasonResponse{Score: d.LocationMatch.Score, Reason: d.LocationMatch.Reason},
	}
}

func NewMatchResultResponse(r matching.MatchResult) MatchResultResponse {
	return MatchResultResponse{
		MatchScore:   r.MatchScore,
		MatchDetails: NewMatchDetailsResponse(r.MatchDetails),
		Reasoning:    r.Reasoning,
	}
}
