package distributor

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClassifyStory", func() {
	It("derives brownfield type and backend specialization from keywords", func() {
		c := ClassifyStory("s1", "Migrate legacy billing API", "refactor the old database layer")
		Expect(c.Type).To(Equal("brownfield"))
		Expect(c.Specializations).To(ContainElement("backend"))
	})

	It("defaults to general when nothing matches", func() {
		c := ClassifyStory("s2", "Write release notes", "summarize the quarter")
		Expect(c.Type).To(Equal("general"))
	})
})

var _ = Describe("ScoreStoryForTeam", func() {
	It("awards the type-match bonus plus the brownfield bonus", func() {
		team := TeamCapabilityProfile{TeamID: "t1", TeamType: "brownfield"}
		story := StoryClassification{Type: "brownfield"}
		Expect(ScoreStoryForTeam(team, story)).To(Equal(15))
	})

	It("caps the specialization overlap score at 9", func() {
		team := TeamCapabilityProfile{TeamID: "t1", TeamType: "mixed", Specializations: []string{"backend", "frontend", "mobile", "data"}}
		story := StoryClassification{Type: "general", Specializations: []string{"backend", "frontend", "mobile", "data"}}
		// 4 overlaps * 3 = 12, capped at 9; no type match, not stream-aligned.
		Expect(ScoreStoryForTeam(team, story)).To(Equal(9))
	})

	It("subtracts one point per story already assigned to the team", func() {
		team := TeamCapabilityProfile{TeamID: "t1", TeamType: "greenfield", AssignedCount: 4}
		story := StoryClassification{Type: "greenfield"}
		Expect(ScoreStoryForTeam(team, story)).To(Equal(6))
	})
})

var _ = Describe("HeuristicDistribute", func() {
	It("breaks ties in favor of whichever team leads teamOrder", func() {
		profiles := map[string]TeamCapabilityProfile{
			"team-a": {TeamID: "team-a", TeamType: "greenfield"},
			"team-b": {TeamID: "team-b", TeamType: "greenfield"},
		}
		stories := []StoryClassification{{StoryID: "s1", Type: "greenfield"}}

		got := HeuristicDistribute([]string{"team-a", "team-b"}, profiles, stories)
		Expect(got).To(HaveLen(1))
		Expect(got[0].TeamID).To(Equal("team-a"))

		got = HeuristicDistribute([]string{"team-b", "team-a"}, profiles, stories)
		Expect(got).To(HaveLen(1))
		Expect(got[0].TeamID).To(Equal("team-b"))
	})

	It("applies the load penalty across successive stories", func() {
		profiles := map[string]TeamCapabilityProfile{
			"team-a": {TeamID: "team-a", TeamType: "greenfield"},
			"team-b": {TeamID: "team-b", TeamType: "greenfield"},
		}
		stories := []StoryClassification{
			{StoryID: "s1", Type: "greenfield"},
			{StoryID: "s2", Type: "greenfield"},
			{StoryID: "s3", Type: "greenfield"},
		}

		got := HeuristicDistribute([]string{"team-a", "team-b"}, profiles, stories)
		Expect(got).To(HaveLen(3))
		Expect([]string{got[0].TeamID, got[1].TeamID, got[2].TeamID}).To(Equal([]string{"team-a", "team-b", "team-a"}))
	})

	It("does not mutate the caller's profile map", func() {
		profiles := map[string]TeamCapabilityProfile{
			"team-a": {TeamID: "team-a", TeamType: "greenfield"},
		}
		stories := []StoryClassification{{StoryID: "s1", Type: "greenfield"}}

		HeuristicDistribute([]string{"team-a"}, profiles, stories)

		Expect(profiles["team-a"].AssignedCount).To(Equal(0))
	})
})

var _ = Describe("ParseAssignments", func() {
	It("skips unknown IDs and malformed lines", func() {
		knownTeams := map[string]bool{"team-a": true}
		knownStories := map[string]bool{"s1": true}

		reply := "ASSIGN: s1 to team-a because it fits backend work\n" +
			"ASSIGN: s2 to team-a because unknown story\n" +
			"ASSIGN: s1 to team-z because unknown team\n" +
			"not a valid line at all\n"

		got := ParseAssignments(reply, knownTeams, knownStories)
		Expect(got).To(HaveLen(1))
		Expect(got[0].StoryID).To(Equal("s1"))
		Expect(got[0].TeamID).To(Equal("team-a"))
		Expect(got[0].Reason).To(Equal("it fits backend work"))
	})
})

var _ = Describe("BuildTriagePrompt", func() {
	It("includes every team and story in the rendered prompt", func() {
		teams := []TeamCapabilityProfile{{TeamID: "team-a", TeamType: "greenfield", Specializations: []string{"backend"}}}
		stories := []StoryClassification{{StoryID: "s1", Type: "greenfield", Specializations: []string{"backend"}}}

		prompt := BuildTriagePrompt(teams, stories)
		Expect(prompt).To(ContainSubstring("team-a"))
		Expect(prompt).To(ContainSubstring("s1"))
		Expect(prompt).To(ContainSubstring("ASSIGN:"))
	})
})
