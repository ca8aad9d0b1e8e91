package matching

// Engine runs the four scorers and the aggregator for one candidate/job pair.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	text   TextScorer
	years  YearsEstimator
	skills SkillNormalizer
}

type Option func(*Engine)

func WithTextScorer(s TextScorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.text = s
		}
	}
}

func WithYearsEstimator(y YearsEstimator) Option {
	return func(e *Engine) {
		if y != nil {
			e.years = y
		}
	}
}

// WithSkillNormalizer enables synonym-aware skill comparison. Off by default.
func WithSkillNormalizer(n SkillNormalizer) Option {
	return func(e *Engine) {
		e.skills = n
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		text:  NewTFIDFScorer(),
		years: EntryCountEstimator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Score(c Candidate, j Job) MatchResult {
	textScore := e.text.Score(CandidateText(c), JobText(j))
	skills := matchSkillsWith(e.skills, c.Skills, j.RequiredSkills)
	exp := MatchExperience(e.years.EstimateYears(c.Experience), j.ExperienceLevel)
	loc := MatchLocation(c.Location, j.Location)

	return Combine(skills, textScore, exp, loc)
}
