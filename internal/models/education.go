package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// EducationEntry is one element of a student's past education. The
// stored form is a JSONB array of these; the editable form is one
// entry per line, fields separated by "|":
//
//	St. Xavier's Junior College | HSC Science | 2021
//
// Degree and year may be omitted, the institution may not.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ParseEducationText converts the editable text into entries. Any
// malformed line fails the whole parse so a save never writes a
// partially understood blob.
func ParseEducationText(text string) ([]EducationEntry, error) {
	entries := []EducationEntry{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) > 3 {
			return nil, fmt.Errorf("education line %d: expected at most 3 fields separated by '|', got %d", i+1, len(parts))
		}
		e := EducationEntry{Institution: strings.TrimSpace(parts[0])}
		if e.Institution == "" {
			return nil, fmt.Errorf("education line %d: institution is required", i+1)
		}
		if len(parts) > 1 {
			e.Degree = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			e.Year = strings.TrimSpace(parts[2])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FormatEducationText is the inverse of ParseEducationText.
func FormatEducationText(entries []EducationEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Year != "":
			lines = append(lines, e.Institution+" | "+e.Degree+" | "+e.Year)
		case e.Degree != "":
			lines = append(lines, e.Institution+" | "+e.Degree)
		default:
			lines = append(lines, e.Institution)
		}
	}
	return strings.Join(lines, "\n")
}

// MarshalEducation renders entries to the JSONB wire form.
func MarshalEducation(entries []EducationEntry) (datatypes.JSON, error) {
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// UnmarshalEducation decodes the stored blob. A null or empty blob is
// an empty list; malformed stored JSON is an error the caller must
// surface rather than silently drop.
func UnmarshalEducation(raw datatypes.JSON) ([]EducationEntry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []EducationEntry{}, nil
	}
	var entries []EducationEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("stored past_education is not a valid education list: %w", err)
	}
	return entries, nil
}
