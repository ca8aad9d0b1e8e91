package seeder

// Defaults is the catalog seed. Demo data is opt-in.
func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
	}
}

func WithDemo() []Seeder {
	return append(Defaults(), DemoSeeder{})
}
