package matching

import "strings"

// MatchLocation scores on a case-insensitive comparison, but the reason text compares the
// raw strings, so "Berlin" vs "berlin" scores 100 with "Different location".
func MatchLocation(candidate, job string) LocationMatch {
	score := 50
	if strings.ToLower(candidate) == strings.ToLower(job) {
		score = 100
	}

	reason := "Different location"
	if candidate == job {
		reason = "Same location"
	}

	return LocationMatch{Score: score, Reason: reason}
}
