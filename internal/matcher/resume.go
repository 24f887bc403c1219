package matcher

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	UnknownName  = "Unknown Name"
	UnknownEmail = "unknown@example.com"
)

var (
	nameRe  = regexp.MustCompile(`^([A-Z][a-z]+ [A-Z][a-z]+)`)
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	experienceRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`experience\s+(?:of\s+)?(\d+)\+?\s*years?`),
		regexp.MustCompile(`worked\s+(?:for\s+)?(\d+)\+?\s*years?`),
	}
)

// Resume is the structured data extracted from a plain text resume.
type Resume struct {
	Name            string
	Email           string
	Skills          []string
	ExperienceYears int
	Raw             string
}

// ParseResume extracts name, email, skills and years of experience from resume text.
func ParseResume(text string) Resume {
	return Resume{
		Name:            ExtractName(text),
		Email:           ExtractEmail(text),
		Skills:          ExtractSkills(text),
		ExperienceYears: ExtractExperience(text),
		Raw:             text,
	}
}

// ExtractName returns a leading "First Last" pair, or UnknownName.
func ExtractName(text string) string {
	if m := nameRe.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return m[1]
	}
	return UnknownName
}

// ExtractEmail returns the first email address in text, or UnknownEmail.
func ExtractEmail(text string) string {
	if m := emailRe.FindString(text); m != "" {
		return m
	}
	return UnknownEmail
}

// ExtractExperience returns the years of experience mentioned in text, 0 if none.
func ExtractExperience(text string) int {
	lower := strings.ToLower(text)
	for _, re := range experienceRes {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if years, err := strconv.Atoi(m[1]); err == nil {
			return years
		}
	}
	return 0
}
