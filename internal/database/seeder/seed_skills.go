package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
	"talent-match/internal/domain/skill"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

type skillSeed struct {
	Name     string
	Category string
	Synonyms []string
}

var skillCatalog = []skillSeed{
	{Name: "go", Category: skill.CategoryProgramming, Synonyms: []string{"golang"}},
	{Name: "javascript", Category: skill.CategoryProgramming, Synonyms: []string{"js", "ecmascript"}},
	{Name: "typescript", Category: skill.CategoryProgramming, Synonyms: []string{"ts"}},
	{Name: "python", Category: skill.CategoryProgramming, Synonyms: []string{"py"}},
	{Name: "react", Category: skill.CategoryFramework, Synonyms: []string{"reactjs", "react.js"}},
	{Name: "react native", Category: skill.CategoryFramework, Synonyms: []string{"rn"}},
	{Name: "node.js", Category: skill.CategoryFramework, Synonyms: []string{"node", "nodejs"}},
	{Name: "postgresql", Category: skill.CategoryDatabase, Synonyms: []string{"postgres", "psql"}},
	{Name: "redis", Category: skill.CategoryDatabase},
	{Name: "docker", Category: skill.CategoryDevOps, Synonyms: []string{"containers"}},
	{Name: "kubernetes", Category: skill.CategoryDevOps, Synonyms: []string{"k8s"}},
	{Name: "ci/cd", Category: skill.CategoryDevOps, Synonyms: []string{"continuous integration"}},
	{Name: "aws", Category: skill.CategoryCloud, Synonyms: []string{"amazon web services"}},
	{Name: "gcp", Category: skill.CategoryCloud, Synonyms: []string{"google cloud"}},
	{Name: "figma", Category: skill.CategoryDesign},
	{Name: "test automation", Category: skill.CategoryTool, Synonyms: []string{"automated testing"}},
	{Name: "communication", Category: skill.CategorySoftSkill},
	{Name: "english", Category: skill.CategoryLanguage},
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "skills", "id", "name", "category", "synonyms", "created_at"); err != nil {
		return err
	}

	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range skillCatalog {
			synonyms := it.Synonyms
			if synonyms == nil {
				synonyms = []string{}
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category, synonyms) VALUES (gen_random_uuid(), $1, $2, $3)
				 ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category, synonyms = EXCLUDED.synonyms`,
				it.Name,
				it.Category,
				synonyms,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	return nil
}
