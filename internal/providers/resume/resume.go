package resume

import (
	"context"
	"strings"
)

// Generator produces a resume document from the prompt built out of a
// student's profile. One request per call, no retries; the caller
// reports success or failure to the user as-is.
type Generator interface {
	Generate(ctx context.Context, prompt string) (markdown string, err error)
	Close() error
}

// Input carries the present and derived profile fields a generation
// request is packaged from.
type Input struct {
	FullName         string
	Email            string
	Phone            string
	Stream           string
	Year             int
	AboutYourself    string
	Skills           []string
	Expertise        []string
	Courses          []string
	PastExperience   string
	PreferredJobRole string
	Education        string
}

// BuildPrompt renders the generation request. Empty sections are
// omitted so the model is not prompted to invent them.
func BuildPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("Write a concise one-page resume in Markdown for the following college student. ")
	b.WriteString("Use only the facts provided; do not invent employers, dates, or grades.\n\n")

	section := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}

	section("Name", in.FullName)
	section("Email", in.Email)
	section("Phone", in.Phone)
	section("Stream", in.Stream)
	if in.Year >= 1 && in.Year <= 4 {
		b.WriteString("Year of study: ")
		b.WriteString([]string{"1st", "2nd", "3rd", "4th"}[in.Year-1])
		b.WriteString(" year\n")
	}
	section("About", in.AboutYourself)
	section("Skills", strings.Join(in.Skills, ", "))
	section("Expertise", strings.Join(in.Expertise, ", "))
	section("Courses and certifications", strings.Join(in.Courses, ", "))
	section("Experience", in.PastExperience)
	section("Target role", in.PreferredJobRole)
	section("Education", in.Education)

	return b.String()
}
