package services

import (
	"strconv"
	"strings"

	"github.com/vsit/placement-hub/internal/models"
)

// FilterAll is the sentinel that disables a stream or year constraint.
const FilterAll = "all"

// FilterState is the ephemeral view state of the faculty directory.
// It derives a view over fetched records and is never persisted.
type FilterState struct {
	Search string `form:"search" json:"search"`
	Stream string `form:"stream" json:"stream"`
	Year   string `form:"year" json:"year"`
}

// FilterStudents selects the records matching the filter state. Search
// text matches case-insensitively against name, roll number, email, or
// any skill; stream and year are exact-match and combine with search
// by AND. Input order is preserved, and the result is independent of
// the order the three predicates are checked in.
func FilterStudents(records []models.Student, f FilterState) []models.Student {
	out := make([]models.Student, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, f.Search) && matchesStream(r, f.Stream) && matchesYear(r, f.Year) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r models.Student, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.FullName), search) ||
		strings.Contains(strings.ToLower(r.CollegeRollNo), search) ||
		strings.Contains(strings.ToLower(r.Email), search) {
		return true
	}
	for _, skill := range r.Skills {
		if strings.Contains(strings.ToLower(skill), search) {
			return true
		}
	}
	return false
}

func matchesStream(r models.Student, stream string) bool {
	if stream == "" || stream == FilterAll {
		return true
	}
	return r.Stream == stream
}

func matchesYear(r models.Student, year string) bool {
	if year == "" || year == FilterAll {
		return true
	}
	return strconv.Itoa(r.Year) == year
}
