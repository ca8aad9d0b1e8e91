package dto

import (
	"time"

	"talent-match/internal/domain/recommendation"
	"talent-match/internal/domain/skill"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
)

type RecommendationResponse struct {
	ID           uuid.UUID            `json:"id"`
	CandidateID  uuid.UUID            `json:"candidate_id"`
	JobID        uuid.UUID            `json:"job_id"`
	GenerationID uuid.UUID            `json:"generation_id"`
	MatchScore   int                  `json:"match_score"`
	MatchDetails MatchDetailsResponse `json:"match_details"`
	Reasoning    string               `json:"reasoning"`
	Viewed       bool                 `json:"viewed"`
	ViewedAt     *time.Time           `json:"viewed_at"`
	CreatedAt    time.Time            `json:"created_at"`
	ExpiresAt    time.Time            `json:"expires_at"`
	Job          *JobSummaryResponse  `json:"job,omitempty"`
}

type RequiredSkillResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type JobSummaryResponse struct {
	ID               uuid.UUID               `json:"id"`
	Title            string                  `json:"title"`
	Company          string                  `json:"company"`
	Location         string                  `json:"location"`
	ExperienceLevel  string                  `json:"experience_level"`
	Status           string                  `json:"status"`
	RequiredSkills   []RequiredSkillResponse `json:"required_skills"`
	RecruiterCompany string                  `json:"recruiter_company"`
}

type SkippedJobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Reason string    `json:"reason"`
}

type GenerationResponse struct {
	GenerationID    uuid.UUID                `json:"generation_id"`
	Count           int                      `json:"count"`
	ActiveJobs      int                      `json:"active_jobs"`
	Excluded        int                      `json:"excluded"`
	Scored          int                      `json:"scored"`
	Skipped         []SkippedJobResponse     `json:"skipped"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type StatsResponse struct {
	Total        int `json:"total"`
	Viewed       int `json:"viewed"`
	Unviewed     int `json:"unviewed"`
	HighMatch    int `json:"high_match"`
	AverageScore int `json:"average_score"`
}

type CandidateSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Location string    `json:"location"`
}

type CandidateMatchResponse struct {
	RecommendationResponse
	Candidate CandidateSummaryResponse `json:"candidate"`
}

type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Synonyms []string  `json:"synonyms"`
}

func NewRecommendationResponse(r recommendation.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:           r.ID,
		CandidateID:  r.CandidateID,
		JobID:        r.JobID,
		GenerationID: r.GenerationID,
		MatchScore:   r.MatchScore,
		MatchDetails: NewMatchDetailsResponse(r.MatchDetails),
		Reasoning:    r.Reasoning,
		Viewed:       r.Viewed,
		ViewedAt:     r.ViewedAt,
		CreatedAt:    r.CreatedAt,
		ExpiresAt:    r.ExpiresAt,
		Job:          newJobSummaryResponse(r.Job),
	}
}

func newJobSummaryResponse(j *recommendation.JobSummary) *JobSummaryResponse {
	if j == nil {
		return nil
	}
	required := make([]RequiredSkillResponse, 0, len(j.RequiredSkills))
	for _, s := range j.RequiredSkills {
		required = append(required, RequiredSkillResponse{Name: s.Name, Category: s.Category})
	}
	return &JobSummaryResponse{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		ExperienceLevel:  j.ExperienceLevel,
		Status:           j.Status,
		RequiredSkills:   required,
		RecruiterCompany: j.RecruiterCompany,
	}
}

func NewRecommendationListResponse(items []recommendation.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewRecommendationResponse(it))
	}
	return out
}

func NewGenerationResponse(r usecase.GenerationReport) GenerationResponse {
	skipped := make([]SkippedJobResponse, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		skipped = append(skipped, SkippedJobResponse{JobID: s.JobID, Reason: s.Reason})
	}
	return GenerationResponse{
		GenerationID:    r.GenerationID,
		Count:           len(r.Recommendations),
		ActiveJobs:      r.ActiveJobs,
		Excluded:        r.Excluded,
		Scored:          r.Scored,
		Skipped:         skipped,
		Recommendations: NewRecommendationListResponse(r.Recommendations),
	}
}

func NewStatsResponse(s recommendation.Stats) StatsResponse {
	return StatsResponse{
		Total:        s.Total,
		Viewed:       s.Viewed,
		Unviewed:     s.Unviewed,
		HighMatch:    s.HighMatch,
		AverageScore: s.AverageScore,
	}
}

func NewCandidateMatchListResponse(items []repository.CandidateMatch) []CandidateMatchResponse {
	out := make([]CandidateMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CandidateMatchResponse{
			RecommendationResponse: NewRecommendationResponse(it.Recommendation),
			Candidate: CandidateSummaryResponse{
				ID:       it.CandidateID,
				FullName: it.CandidateName,
				Location: it.CandidateLocation,
			},
		})
	}
	return out
}

func NewSkillListResponse(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, it := range items {
		syn := it.Synonyms
		if syn == nil {
			syn = []string{}
		}
		out = append(out, SkillResponse{ID: it.ID, Name: it.Name, Category: it.Category, Synonyms: syn})
	}
	return out
}
