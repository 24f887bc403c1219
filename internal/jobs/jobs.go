// Package jobs holds the catalog of open positions and their default descriptions.
package jobs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/talentcrew/internal/candidate"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const genericDescription = `We are looking for a %s with relevant experience.

Required Skills:
- Relevant industry experience
- Technical proficiency
- Communication skills
- Problem-solving abilities
`

// Catalog is an ordered list of jobs.
type Catalog struct {
	Jobs []candidate.Job `yaml:"jobs"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalog)
}

// Load reads a catalog from path. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}

	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Jobs))
	for i, j := range c.Jobs {
		title := strings.TrimSpace(j.Title)
		if title == "" {
			return nil, fmt.Errorf("job %d has no title", i)
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("job %q is listed twice", title)
		}
		seen[key] = struct{}{}
		c.Jobs[i].Title = title
	}

	if len(c.Jobs) == 0 {
		return nil, errors.New("catalog has no jobs")
	}
	return &c, nil
}

// Find looks a job up by title, ignoring case and surrounding spaces.
func (c *Catalog) Find(title string) (candidate.Job, bool) {
	title = strings.TrimSpace(title)
	for _, j := range c.Jobs {
		if strings.EqualFold(j.Title, title) {
			return j, true
		}
	}
	return candidate.Job{}, false
}

// Resolve returns the catalog job for title, or a job with a generic description when
// the title is not listed.
func (c *Catalog) Resolve(title string) candidate.Job {
	if j, ok := c.Find(title); ok {
		return j
	}
	title = strings.TrimSpace(title)
	return candidate.Job{Title: title, Description: fmt.Sprintf(genericDescription, title)}
}

func (c *Catalog) Titles() []string {
	out := make([]string, 0, len(c.Jobs))
	for _, j := range c.Jobs {
		out = append(out, j.Title)
	}
	return out
}
