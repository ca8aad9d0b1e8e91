package usecase

import (
	"context"

	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
	"talent-match/internal/repository"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	SynonymNormalizer(ctx context.Context) (*matching.SynonymNormalizer, error)
}

// Skill exposes the skill catalog and the synonym table derived from it.
type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *Skill) SynonymNormalizer(ctx context.Context) (*matching.SynonymNormalizer, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return matching.NewSynonymNormalizer(repository.SynonymMap(items)), nil
}
