// Package distributor assigns backlog stories to teams using a
// capability-profile heuristic, with an optional LLM-coordinator triage
// path for ambiguous cases.
package distributor

import (
	"fmt"
	"sort"
	"strings"
)

// TeamCapabilityProfile describes one team's type and specialization mix.
type TeamCapabilityProfile struct {
	TeamID          string
	TeamType        string // "greenfield", "brownfield", "platform", "mixed"
	Specializations []string
	StreamAligned   bool
	AssignedCount   int
}

// StoryClassification is the result of classifying a story's type and
// specialization tags.
type StoryClassification struct {
	StoryID         string
	Type            string
	Specializations []string
}

// teamTypeKeywords maps a story classification type to the team type it
// best matches.
var teamTypeKeywords = map[string][]string{
	"greenfield": {"new feature", "new service", "from scratch", "greenfield"},
	"brownfield": {"legacy", "migrate", "refactor", "technical debt", "brownfield"},
	"platform":   {"infrastructure", "platform", "tooling", "ci/cd", "deployment"},
}

// specializationKeywords maps a specialization tag to the keywords that
// indicate a story needs it.
var specializationKeywords = map[string][]string{
	"backend":    {"api", "database", "service", "backend"},
	"frontend":   {"ui", "frontend", "component", "page"},
	"mobile":     {"ios", "android", "mobile app"},
	"data":       {"pipeline", "etl", "analytics", "data"},
	"security":   {"auth", "security", "vulnerability", "compliance"},
	"devops":     {"deployment", "ci/cd", "infrastructure", "monitoring"},
}

// ClassifyStory derives a StoryClassification from a story's title and
// description using fixed keyword tables.
func ClassifyStory(storyID, title, description string) StoryClassification {
	text := strings.ToLower(title + " " + description)

	storyType := "general"
	for t, keywords := range teamTypeKeywords {
		if containsAny(text, keywords) {
			storyType = t
			break
		}
	}

	var specs []string
	for spec, keywords := range specializationKeywords {
		if containsAny(text, keywords) {
			specs = append(specs, spec)
		}
	}
	sort.Strings(specs)

	return StoryClassification{StoryID: storyID, Type: storyType, Specializations: specs}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// ScoreStoryForTeam scores how well a team fits a story classification.
// Scoring, in order: +10 if the team's type matches the story's type
// (+5 more if both are "brownfield"), +2 if the team is stream-aligned
// and the story's type is "general" (a stream-aligned catch-all), +3 per
// matching specialization capped at +9, -1 per story already assigned to
// the team (load-balancing penalty).
func ScoreStoryForTeam(team TeamCapabilityProfile, story StoryClassification) int {
	score := 0

	if team.TeamType == story.Type {
		score += 10
		if team.TeamType == "brownfield" {
			score += 5
		}
	}

	if team.StreamAligned && story.Type == "general" {
		score += 2
	}

	overlap := 0
	specSet := make(map[string]bool, len(team.Specializations))
	for _, s := range team.Specializations {
		specSet[s] = true
	}
	for _, s := range story.Specializations {
		if specSet[s] {
			overlap++
		}
	}
	specScore := overlap * 3
	if specScore > 9 {
		specScore = 9
	}
	score += specScore

	score -= team.AssignedCount

	return score
}

// Assignment is one story-to-team assignment decision.
type Assignment struct {
	StoryID string
	TeamID  string
	Reason  string
}

// HeuristicDistribute assigns each story to the highest-scoring team,
// iterating teamOrder (not a map) to preserve deterministic first-match
// tie-breaking: a later team must strictly exceed the current best score
// to replace it.
func HeuristicDistribute(teamOrder []string, profiles map[string]TeamCapabilityProfile, stories []StoryClassification) []Assignment {
	// copy profiles so AssignedCount updates don't mutate the caller's map
	working := make(map[string]TeamCapabilityProfile, len(profiles))
	for k, v := range profiles {
		working[k] = v
	}

	var assignments []Assignment
	for _, story := range stories {
		bestTeam := ""
		bestScore := -1 << 31

		for _, teamID := range teamOrder {
			profile, ok := working[teamID]
			if !ok {
				continue
			}
			score := ScoreStoryForTeam(profile, story)
			if score > bestScore {
				bestScore = score
				bestTeam = teamID
			}
		}

		if bestTeam == "" {
			continue
		}

		profile := working[bestTeam]
		profile.AssignedCount++
		working[bestTeam] = profile

		assignments = append(assignments, Assignment{
			StoryID: story.StoryID,
			TeamID:  bestTeam,
			Reason:  fmt.Sprintf("best fit score %d for type %q", bestScore, story.Type),
		})
	}

	return assignments
}
