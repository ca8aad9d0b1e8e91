package usecase

import (
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
)

func toMatchingCandidate(p candidate.Profile) matching.Candidate {
	exp := make([]matching.Experience, 0, len(p.Experience))
	for _, e := range p.Experience {
		exp = append(exp, matching.Experience{Title: e.Title, Description: e.Description})
	}
	return matching.Candidate{
		Bio:        p.Bio,
		Location:   p.Location,
		Skills:     skillNames(p.Skills),
		Experience: exp,
	}
}

func toMatchingJob(p job.Posting) matching.Job {
	return matching.Job{
		Title:            p.Title,
		Description:      p.Description,
		RequiredSkills:   skillNames(p.RequiredSkills),
		Responsibilities: p.Responsibilities,
		Qualifications:   p.Qualifications,
		ExperienceLevel:  p.ExperienceLevel,
		Location:         p.Location,
	}
}

func skillNames(skills []skill.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}
