package matching

import (
	"math"
	"strings"
	"unicode"
)

// TextScorer estimates how much of a candidate's text is echoed by a job's text, in [0,100].
type TextScorer interface {
	Score(candidateText, jobText string) float64
}

// TFIDFScorer weighs terms over a corpus made of exactly the two texts being compared.
// For each candidate token occurrence it adds the smaller of the two tf-idf weights, then
// scales the sum by 10 and caps it at 100. The value is neither normalised nor symmetric.
type TFIDFScorer struct{}

func NewTFIDFScorer() TFIDFScorer {
	return TFIDFScorer{}
}

func (TFIDFScorer) Score(candidateText, jobText string) float64 {
	docs := []map[string]int{
		termCounts(candidateText),
		termCounts(jobText),
	}

	idfCache := make(map[string]float64)
	idf := func(term string) float64 {
		if v, ok := idfCache[term]; ok {
			return v
		}
		df := 0
		for _, d := range docs {
			if d[term] > 0 {
				df++
			}
		}
		v := 1 + math.Log(float64(len(docs))/float64(1+df))
		idfCache[term] = v
		return v
	}

	sum := 0.0
	for _, term := range Tokenize(candidateText) {
		w := idf(term)
		c := float64(docs[0][term]) * w
		j := float64(docs[1][term]) * w
		sum += math.Min(c, j)
	}

	return math.Min(sum*10, 100)
}

func termCounts(text string) map[string]int {
	out := make(map[string]int)
	for _, t := range Tokenize(text) {
		if stopWords[t] {
			continue
		}
		out[t]++
	}
	return out
}

// Tokenize lowercases text and splits it on every rune that is not a letter, digit or underscore.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
}

// CandidateText concatenates bio, skill names and experience entries.
func CandidateText(c Candidate) string {
	exp := make([]string, 0, len(c.Experience))
	for _, e := range c.Experience {
		exp = append(exp, e.Title+" "+e.Description)
	}
	return strings.Join([]string{
		c.Bio,
		strings.Join(c.Skills, " "),
		strings.Join(exp, " "),
	}, " ")
}

// JobText concatenates title, description, required skills, responsibilities and qualifications.
func JobText(j Job) string {
	return strings.Join([]string{
		j.Title,
		j.Description,
		strings.Join(j.RequiredSkills, " "),
		strings.Join(j.Responsibilities, " "),
		strings.Join(j.Qualifications, " "),
	}, " ")
}

var stopWords = func() map[string]bool {
	words := []string{
		"about", "above", "after", "again", "all", "also", "am", "an", "and", "another", "any", "are", "as", "at",
		"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
		"came", "can", "cannot", "come", "could", "did", "do", "does", "doing", "during",
		"each", "few", "for", "from", "further", "get", "got",
		"has", "had", "he", "have", "her", "here", "him", "himself", "his", "how",
		"if", "in", "into", "is", "it", "its", "itself", "like", "make", "many", "me", "might", "more", "most",
		"much", "must", "my", "myself", "never", "now", "of", "on", "only", "or", "other", "our", "ours",
		"ourselves", "out", "over", "own", "said", "same", "see", "should", "since", "so", "some", "still",
		"such", "take", "than", "that", "the", "their", "theirs", "them", "themselves", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under", "until", "up", "very",
		"was", "way", "we", "well", "were", "what", "where", "when", "which", "while", "who", "whom",
		"with", "would", "why", "you", "your", "yours", "yourself",
		"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "r", "s", "t",
		"u", "v", "w", "x", "y", "z",
		"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "_",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
