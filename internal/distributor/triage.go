package distributor

import (
	"fmt"
	"regexp"
	"strings"
)

// BuildTriagePrompt renders the literal coordinator prompt template used
// to ask an LLM to triage ambiguous story assignments.
func BuildTriagePrompt(teams []TeamCapabilityProfile, stories []StoryClassification) string {
	var sb strings.Builder

	sb.WriteString("You are coordinating story assignment across teams.\n\n")

	sb.WriteString("Teams:\n")
	for _, t := range teams {
		sb.WriteString(fmt.Sprintf("- %s (type=%s, specializations=%s, stream_aligned=%v, assigned=%d)\n",
			t.TeamID, t.TeamType, strings.Join(t.Specializations, ","), t.StreamAligned, t.AssignedCount))
	}

	sb.WriteString("\nStories:\n")
	for _, s := range stories {
		sb.WriteString(fmt.Sprintf("- %s (type=%s, specializations=%s)\n",
			s.StoryID, s.Type, strings.Join(s.Specializations, ",")))
	}

	sb.WriteString("\nRules:\n")
	sb.WriteString("- Every story must be assigned to exactly one team.\n")
	sb.WriteString("- Prefer the team whose type and specializations best match the story.\n")
	sb.WriteString("- Balance load across teams when scores are close.\n")

	sb.WriteString("\nRespond with one line per assignment in this exact format:\n")
	sb.WriteString("ASSIGN: <story_id> to <team_id> because <reason>\n")

	return sb.String()
}

var assignLine = regexp.MustCompile(`^ASSIGN:\s*(\S+)\s+to\s+(\S+)\s+because\s+(.+)$`)

// ParseAssignments parses a coordinator's reply into Assignments.
// Malformed lines, and lines referencing unknown story or team IDs, are
// silently skipped rather than raising, matching the original's tolerant
// parser.
func ParseAssignments(reply string, knownTeams, knownStories map[string]bool) []Assignment {
	var out []Assignment
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		m := assignLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		storyID, teamID, reason := m[1], m[2], strings.TrimSpace(m[3])
		if !knownStories[storyID] || !knownTeams[teamID] {
			continue
		}
		out = append(out, Assignment{StoryID: storyID, TeamID: teamID, Reason: reason})
	}
	return out
}
