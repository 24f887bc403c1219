package ai

import (
	_ "embed"
	"fmt"
	"strings"
)

// Role names the agent persona used to answer a chat request.
type Role string

const (
	RoleSourcing   Role = "sourcing"
	RoleScreening  Role = "screening"
	RoleEngagement Role = "engagement"
	RoleScheduling Role = "scheduling"
)

//go:embed prompts/engagement.md
var engagementTemplate string

//go:embed prompts/sourcing.md
var sourcingTemplate string

//go:embed prompts/screening.md
var screeningTemplate string

//go:embed prompts/engage_agent.md
var engageAgentTemplate string

//go:embed prompts/scheduling.md
var schedulingTemplate string

// EngagementPrompt asks for an outreach email to a candidate.
func EngagementPrompt(name, jobTitle string, matchingSkills []string) string {
	skills := "various relevant skills"
	if len(matchingSkills) > 0 {
		skills = strings.Join(firstN(matchingSkills, 3), ", ")
	}
	return strings.NewReplacer(
		"{{CANDIDATE_NAME}}", name,
		"{{JOB_TITLE}}", jobTitle,
		"{{SKILLS}}", skills,
	).Replace(engagementTemplate)
}

// AgentPrompt wraps a chat query in the persona of the given agent.
func AgentPrompt(role Role, query string) (string, error) {
	var tmpl string
	switch role {
	case RoleSourcing:
		tmpl = sourcingTemplate
	case RoleScreening:
		tmpl = screeningTemplate
	case RoleEngagement:
		tmpl = engageAgentTemplate
	case RoleScheduling:
		tmpl = schedulingTemplate
	default:
		return "", fmt.Errorf("agent %q not recognized", role)
	}
	return strings.ReplaceAll(tmpl, "{{QUERY}}", query), nil
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
