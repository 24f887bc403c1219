package matcher

import (
	"reflect"
	"testing"
)

func TestParseResume(t *testing.T) {
	t.Parallel()

	text := `Jane Smith
jane.smith@example.com

Experienced professional with 7 years of experience in Data Scientist roles.
Skills: python, sql, machine learning
`

	res := ParseResume(text)

	if res.Name != "Jane Smith" {
		t.Fatalf("unexpected name %q", res.Name)
	}
	if res.Email != "jane.smith@example.com" {
		t.Fatalf("unexpected email %q", res.Email)
	}
	if res.ExperienceYears != 7 {
		t.Fatalf("expected 7 years, got %d", res.ExperienceYears)
	}
	want := []string{"python", "sql", "machine learning"}
	if !reflect.DeepEqual(res.Skills, want) {
		t.Fatalf("expected skills %v, got %v", want, res.Skills)
	}
	if res.Raw != text {
		t.Fatal("expected raw text to be kept")
	}
}

func TestParseResumeFallbacks(t *testing.T) {
	t.Parallel()

	res := ParseResume("  lowercase name, no contact details")

	if res.Name != UnknownName {
		t.Fatalf("expected %q, got %q", UnknownName, res.Name)
	}
	if res.Email != UnknownEmail {
		t.Fatalf("expected %q, got %q", UnknownEmail, res.Email)
	}
	if res.ExperienceYears != 0 {
		t.Fatalf("expected 0 years, got %d", res.ExperienceYears)
	}
	if len(res.Skills) != 0 {
		t.Fatalf("expected no skills, got %v", res.Skills)
	}
}

func TestExtractExperiencePatterns(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"10+ years experience with Go":     10,
		"Experience of 4 years in finance": 4,
		"Worked for 6 years at Acme":       6,
		"Fresh graduate":                   0,
	}

	for input, want := range tests {
		if got := ExtractExperience(input); got != want {
			t.Fatalf("%q: expected %d, got %d", input, want, got)
		}
	}
}

func TestExtractNameRequiresLeadingPair(t *testing.T) {
	t.Parallel()

	if got := ExtractName("Resume of John Doe"); got != UnknownName {
		t.Fatalf("expected %q, got %q", UnknownName, got)
	}
	if got := ExtractName("\n\n  Michael Brown\nEngineer"); got != "Michael Brown" {
		t.Fatalf("expected Michael Brown, got %q", got)
	}
}
