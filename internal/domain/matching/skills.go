package matching

import (
	"sort"
	"strings"
)

// SkillNormalizer maps a canonical skill name onto the name used for comparison.
type SkillNormalizer interface {
	Normalize(name string) string
}

// CanonicalSkill lowercases and trims a skill name.
func CanonicalSkill(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SynonymNormalizer resolves synonyms to the catalog skill they belong to.
type SynonymNormalizer struct {
	lookup map[string]string
}

// NewSynonymNormalizer builds the lookup from skill name -> synonyms.
// A synonym claimed by two skills resolves to the alphabetically first skill; a synonym
// that is itself a skill name never moves.
func NewSynonymNormalizer(synonyms map[string][]string) *SynonymNormalizer {
	names := make([]string, 0, len(synonyms))
	for name := range synonyms {
		names = append(names, name)
	}
	sort.Strings(names)

	lookup := make(map[string]string, len(synonyms))
	for _, name := range names {
		canon := CanonicalSkill(name)
		if canon == "" {
			continue
		}
		lookup[canon] = canon
	}
	for _, name := range names {
		canon := CanonicalSkill(name)
		if canon == "" {
			continue
		}
		for _, s := range synonyms[name] {
			s = CanonicalSkill(s)
			if s == "" {
				continue
			}
			if _, taken := lookup[s]; taken {
				continue
			}
			lookup[s] = canon
		}
	}
	return &SynonymNormalizer{lookup: lookup}
}

func (n *SynonymNormalizer) Normalize(name string) string {
	if n == nil {
		return name
	}
	if v, ok := n.lookup[name]; ok {
		return v
	}
	return name
}

// MatchSkills compares by exact canonical name. Matched and Missing keep job order and
// together partition the job's skill set.
func MatchSkills(candidateSkills, jobSkills []string) SkillsMatch {
	return matchSkillsWith(nil, candidateSkills, jobSkills)
}

func matchSkillsWith(norm SkillNormalizer, candidateSkills, jobSkills []string) SkillsMatch {
	canon := func(s string) string {
		s = CanonicalSkill(s)
		if norm != nil && s != "" {
			s = norm.Normalize(s)
		}
		return s
	}

	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		if s = canon(s); s != "" {
			have[s] = struct{}{}
		}
	}

	required := dedupe(jobSkills, canon)
	matched := make([]string, 0, len(required))
	missing := make([]string, 0)
	for _, s := range required {
		if _, ok := have[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	pct := 0.0
	if len(required) > 0 {
		pct = float64(len(matched)) / float64(len(required)) * 100
	}

	return SkillsMatch{Percentage: pct, Matched: matched, Missing: missing}
}

func dedupe(items []string, canon func(string) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = canon(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
