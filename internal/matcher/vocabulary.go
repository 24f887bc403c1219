package matcher

import (
	"regexp"
	"strings"
)

// Vocabulary is the fixed list of skill keywords recognised in resumes and job descriptions.
var Vocabulary = []string{
	"python", "java", "javascript", "html", "css", "sql", "nosql",
	"react", "angular", "vue", "node", "django", "flask", "php",
	"aws", "azure", "gcp", "docker", "kubernetes", "devops",
	"machine learning", "ai", "data science", "nlp", "computer vision",
	"project management", "agile", "scrum", "kanban",
	"leadership", "communication", "teamwork", "problem solving",
	"sales", "marketing", "finance", "accounting", "hr", "recruitment",
}

var vocabularyPatterns = compileVocabulary(Vocabulary)

type skillPattern struct {
	skill string
	re    *regexp.Regexp
}

func compileVocabulary(skills []string) []skillPattern {
	patterns := make([]skillPattern, 0, len(skills))
	for _, skill := range skills {
		patterns = append(patterns, skillPattern{
			skill: skill,
			re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`),
		})
	}
	return patterns
}

// ExtractSkills returns the vocabulary skills found in text as whole words, ignoring case.
// The result follows vocabulary order and never contains duplicates.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, p := range vocabularyPatterns {
		if p.re.MatchString(lower) {
			found = append(found, p.skill)
		}
	}
	return found
}

// NormalizeSkills lower-cases and trims skills, dropping empties and duplicates.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
