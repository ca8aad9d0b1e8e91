package matching

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sharedTermWeight = 1 + math.Log(2.0/3.0)

func TestTokenize(t *testing.T) {
	got := Tokenize("Node.js, React & C++ developer_team")
	assert.Equal(t, []string{"node", "js", "react", "c", "developer_team"}, got)
}

func TestTokenize_KeepsNonASCIILettersInOneToken(t *testing.T) {
	got := Tokenize("Café naïve São-Paulo Düsseldorf2024")
	assert.Equal(t, []string{"café", "naïve", "são", "paulo", "düsseldorf2024"}, got)
}

func TestTFIDFScorer(t *testing.T) {
	s := NewTFIDFScorer()

	tests := []struct {
		name      string
		candidate string
		job       string
		want      float64
	}{
		{name: "no overlap", candidate: "gardening", job: "accounting", want: 0},
		{name: "two shared terms", candidate: "go developer", job: "Go developer wanted", want: 2 * sharedTermWeight * 10},
		{name: "duplicates counted per occurrence", candidate: "go go", job: "go", want: 2 * sharedTermWeight * 10},
		{name: "stopwords ignored", candidate: "the go", job: "the go", want: sharedTermWeight * 10},
		{name: "empty candidate", candidate: "", job: "go", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(tt.candidate, tt.job), 1e-9)
		})
	}
}

func TestTFIDFScorer_Capped(t *testing.T) {
	text := strings.Repeat("kubernetes ", 200)
	assert.Equal(t, 100.0, NewTFIDFScorer().Score(text, text))
}

func TestTFIDFScorer_Asymmetric(t *testing.T) {
	s := NewTFIDFScorer()
	a := s.Score("go go go", "go rust")
	b := s.Score("go rust", "go go go")
	assert.NotEqual(t, a, b)
}

func TestMatchSkills_Example(t *testing.T) {
	res := MatchSkills([]string{"react", "node.js"}, []string{"react", "node.js", "mongodb"})
	assert.Equal(t, []string{"react", "node.js"}, res.Matched)
	assert.Equal(t, []string{"mongodb"}, res.Missing)
	assert.InDelta(t, 66.67, res.Percentage, 0.01)
}

func TestMatchSkills_EmptyJob(t *testing.T) {
	res := MatchSkills([]string{"go"}, nil)
	assert.Equal(t, 0.0, res.Percentage)
	assert.Empty(t, res.Matched)
	assert.Empty(t, res.Missing)
}

func TestMatchSkills_Partition(t *testing.T) {
	job := []string{" Go ", "postgresql", "GO", "docker", "redis"}
	res := MatchSkills([]string{"go", "Redis", "python"}, job)

	union := append(append([]string{}, res.Matched...), res.Missing...)
	assert.ElementsMatch(t, []string{"go", "postgresql", "docker", "redis"}, union)
	for _, m := range res.Matched {
		assert.NotContains(t, res.Missing, m)
	}
	assert.InDelta(t, 50.0, res.Percentage, 1e-9)
}

func TestMatchSkills_NoSynonymResolution(t *testing.T) {
	res := MatchSkills([]string{"js"}, []string{"javascript"})
	assert.Equal(t, 0.0, res.Percentage)
}

func TestSynonymNormalizer(t *testing.T) {
	norm := NewSynonymNormalizer(map[string][]string{
		"javascript": {"js", "ecmascript"},
		"postgresql": {"postgres", "javascript"},
	})
	assert.Equal(t, "javascript", norm.Normalize("js"))
	assert.Equal(t, "postgresql", norm.Normalize("postgres"))
	assert.Equal(t, "javascript", norm.Normalize("javascript"))
	assert.Equal(t, "go", norm.Normalize("go"))

	res := matchSkillsWith(norm, []string{"JS", "postgres"}, []string{"javascript", "postgresql"})
	assert.Equal(t, 100.0, res.Percentage)
}

func TestEntryCountEstimator(t *testing.T) {
	var est EntryCountEstimator
	assert.Equal(t, 0.0, est.EstimateYears(nil))
	assert.Equal(t, 6.0, est.EstimateYears(make([]Experience, 3)))
}

func TestMatchExperience(t *testing.T) {
	tests := []struct {
		years  float64
		level  string
		score  int
		reason string
	}{
		{years: 0, level: LevelEntry, score: 100, reason: "Perfect experience match"},
		{years: 2, level: LevelEntry, score: 100, reason: "Perfect experience match"},
		{years: 4, level: LevelEntry, score: 90, reason: "Over-qualified but suitable"},
		{years: 2, level: LevelSenior, score: 40, reason: "3 years below requirement"},
		{years: 0, level: LevelLead, score: 0, reason: "8 years below requirement"},
		{years: 0, level: "principal", score: 60, reason: "2 years below requirement"},
		{years: 4, level: "", score: 100, reason: "Perfect experience match"},
		{years: 200, level: LevelLead, score: 90, reason: "Over-qualified but suitable"},
	}
	for _, tt := range tests {
		got := MatchExperience(tt.years, tt.level)
		assert.Equal(t, tt.score, got.Score, "years=%v level=%q", tt.years, tt.level)
		assert.Equal(t, tt.reason, got.Reason, "years=%v level=%q", tt.years, tt.level)
	}
}

func TestMatchExperience_PerfectIffInRange(t *testing.T) {
	for _, level := range []string{LevelEntry, LevelMid, LevelSenior, LevelLead} {
		lo, hi := LevelRange(level)
		for y := 0.0; y <= 20; y += 2 {
			inRange := y >= lo && y <= hi
			assert.Equal(t, inRange, MatchExperience(y, level).Score == 100, "level=%s years=%v", level, y)
		}
	}
}

func TestMatchLocation(t *testing.T) {
	assert.Equal(t, LocationMatch{Score: 100, Reason: "Same location"}, MatchLocation("Berlin", "Berlin"))
	assert.Equal(t, LocationMatch{Score: 100, Reason: "Different location"}, MatchLocation("Berlin", "berlin"))
	assert.Equal(t, LocationMatch{Score: 50, Reason: "Different location"}, MatchLocation("Berlin", "Paris"))
	assert.Equal(t, LocationMatch{Score: 100, Reason: "Same location"}, MatchLocation("", ""))
}

func TestCombine_Deterministic(t *testing.T) {
	res := Combine(
		SkillsMatch{Percentage: 100},
		0,
		ExperienceMatch{Score: 100, Reason: "Perfect experience match"},
		LocationMatch{Score: 100, Reason: "Same location"},
	)
	assert.Equal(t, 70, res.MatchScore)
	assert.Equal(t, "Good match. 100% skills match. Perfect experience match Same location", res.Reasoning)
}

func TestCombine_Bands(t *testing.T) {
	exp := ExperienceMatch{Score: 100, Reason: "Perfect experience match"}
	loc := LocationMatch{Score: 100, Reason: "Same location"}

	excellent := Combine(SkillsMatch{Percentage: 100}, 100, exp, loc)
	assert.Equal(t, 100, excellent.MatchScore)
	assert.True(t, strings.HasPrefix(excellent.Reasoning, "Excellent match!"))

	moderate := Combine(SkillsMatch{Percentage: 200.0 / 3}, 0, ExperienceMatch{Score: 0, Reason: "x"}, LocationMatch{Score: 50, Reason: "y"})
	assert.Equal(t, 32, moderate.MatchScore)
	assert.Equal(t, "Moderate match. 67% skills match. x y", moderate.Reasoning)
}

func TestJobValidate(t *testing.T) {
	require.NoError(t, Job{Title: "Go dev", Description: "Build services"}.Validate())
	assert.ErrorIs(t, Job{Description: "x"}.Validate(), ErrMalformedJob)
	assert.ErrorIs(t, Job{Title: "x", Description: "  "}.Validate(), ErrMalformedJob)
}

func TestEngineScore_Bounds(t *testing.T) {
	e := NewEngine()
	candidates := []Candidate{
		{},
		{Bio: "Go Go Go kubernetes", Skills: []string{"go", "kubernetes"}, Location: "Remote",
			Experience: []Experience{{Title: "Go engineer", Description: "kubernetes operators"}}},
		{Skills: []string{"cobol"}, Experience: make([]Experience, 40), Location: "Nowhere"},
	}
	jobs := []Job{
		{},
		{Title: "Go engineer", Description: strings.Repeat("go kubernetes ", 50), RequiredSkills: []string{"go"},
			ExperienceLevel: LevelSenior, Location: "remote"},
		{Title: "Mainframe", Description: "cobol", ExperienceLevel: "unknown"},
	}
	for _, c := range candidates {
		for _, j := range jobs {
			res := e.Score(c, j)
			assert.GreaterOrEqual(t, res.MatchScore, 0)
			assert.LessOrEqual(t, res.MatchScore, 100)
			assert.Equal(t, res, e.Score(c, j))
		}
	}
}

type fixedText float64

func (f fixedText) Score(string, string) float64 { return float64(f) }

type fixedYears float64

func (f fixedYears) EstimateYears([]Experience) float64 { return float64(f) }

func TestEngineScore_PluggableComponents(t *testing.T) {
	e := NewEngine(WithTextScorer(fixedText(0)), WithYearsEstimator(fixedYears(3)))
	res := e.Score(
		Candidate{Skills: []string{"go"}, Location: "Jakarta"},
		Job{Title: "t", Description: "d", RequiredSkills: []string{"go"}, ExperienceLevel: LevelMid, Location: "Jakarta"},
	)
	assert.Equal(t, 70, res.MatchScore)
	assert.Equal(t, []string{"go"}, res.MatchDetails.SkillsMatch.Matched)
	assert.Equal(t, 100, res.MatchDetails.ExperienceMatch.Score)
}
