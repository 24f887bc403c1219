package agents

import (
	"fmt"
	"strings"
)

const engagementTemplate = `Subject: Exciting %[1]s Opportunity

Hi %[2]s,

I hope this message finds you well. I'm reaching out because your profile caught our attention.

%[3]s align well with what we're looking for in our %[1]s position.

Would you be interested in learning more about this opportunity? If so, I'd be happy to provide additional details.

Looking forward to hearing from you.

Best regards,
TalentCrew AI Recruiting Team
`

// EngagementTemplate is the outreach email used when no text generator answers.
func EngagementTemplate(name, jobTitle string, matchingSkills []string) string {
	if strings.TrimSpace(name) == "" {
		name = "Candidate"
	}
	mention := "Your skills"
	if len(matchingSkills) > 0 {
		mention = "Your skills in " + strings.Join(matchingSkills[:min(3, len(matchingSkills))], ", ")
	}
	return fmt.Sprintf(engagementTemplate, jobTitle, name, mention)
}
