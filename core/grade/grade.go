// Package grade canonicalizes free-text grade labels ("Kindergarten", "k",
// "5th Grade") into the closed set {K,1,2,3,4,5}. Grade comparison anywhere
// in the app goes through Normalize so the grouping, filtering and display
// call sites can never drift apart.
package grade

import (
	"regexp"
	"strconv"
	"strings"
)

// Grades is the ordered canonical set, for dropdown builders.
var Grades = []string{Kindergarten, "1", "2", "3", "4", "5"}

// Kindergarten is the canonical label for kindergarten grades.
const Kindergarten = "K"

var gradeRegex = regexp.MustCompile(`k|kindergarten|[0-9]+`)

// Normalize canonicalizes a free-text grade label. It returns "" when no
// grade can be extracted (ungrouped/unknown). Normalize is pure and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	if s == "k" || strings.HasPrefix(s, "kind") {
		return Kindergarten
	}
	m := gradeRegex.FindString(s)
	if m == "" {
		return ""
	}
	if m == "k" || m == "kindergarten" {
		return Kindergarten
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return ""
	}
	return strconv.Itoa(n) // "05" -> "5"
}

// IsCanonical reports whether g is one of the canonical grade labels.
func IsCanonical(g string) bool {
	for _, grd := range Grades {
		if g == grd {
			return true
		}
	}
	return false
}
