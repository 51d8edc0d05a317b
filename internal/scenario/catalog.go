// Package scenario implements the fixed, 13-entry episode-type catalog and
// deterministic, seeded scenario generation used to build a ScenarioConfig
// for an episode.
package scenario

import (
	"fmt"
	"math/rand"
	"strings"
)

// EpisodeType describes one of the 13 fixed curriculum episode types.
type EpisodeType struct {
	Name            string
	Stage           int
	Phases          []string
	TargetBehaviors []string
	DurationMinutes int
	Description     string
}

// EpisodeTypes is the fixed catalog of all 13 episode types.
var EpisodeTypes = []EpisodeType{
	// Stage 1: Foundation
	{
		Name: "elicitation", Stage: 1,
		Phases:          []string{"planning"},
		TargetBehaviors: []string{"B-01", "B-02", "B-03"},
		DurationMinutes: 5,
		Description:     "Story elicitation and requirements clarification",
	},
	{
		Name: "decomposition", Stage: 1,
		Phases:          []string{"planning"},
		TargetBehaviors: []string{"B-04", "B-05", "B-06"},
		DurationMinutes: 5,
		Description:     "Task decomposition and estimation",
	},
	{
		Name: "implementation", Stage: 1,
		Phases:          []string{"development"},
		TargetBehaviors: []string{"B-07", "B-08", "B-09"},
		DurationMinutes: 10,
		Description:     "Code implementation with pairing",
	},
	{
		Name: "self_monitoring", Stage: 1,
		Phases:          []string{"development", "qa_review"},
		TargetBehaviors: []string{"B-10", "B-11"},
		DurationMinutes: 8,
		Description:     "Self-monitoring and quality checks",
	},
	// Stage 2: Advanced
	{
		Name: "research", Stage: 2,
		Phases:          []string{"planning", "development"},
		TargetBehaviors: []string{"B-12", "B-13", "B-14"},
		DurationMinutes: 10,
		Description:     "Technical research and spike work",
	},
	{
		Name: "triage", Stage: 2,
		Phases:          []string{"planning", "development"},
		TargetBehaviors: []string{"B-15", "B-16"},
		DurationMinutes: 8,
		Description:     "Bug triage and prioritization under pressure",
	},
	{
		Name: "recovery", Stage: 2,
		Phases:          []string{"development", "qa_review"},
		TargetBehaviors: []string{"B-17", "B-18", "B-19"},
		DurationMinutes: 10,
		Description:     "Recovery from disturbances (flaky tests, incidents)",
	},
	{
		Name: "scope_change", Stage: 2,
		Phases:          []string{"planning", "development"},
		TargetBehaviors: []string{"B-20", "B-21"},
		DurationMinutes: 8,
		Description:     "Handling mid-sprint scope changes",
	},
	// Stage 3: Expert
	{
		Name: "borrowing_arrival", Stage: 3,
		Phases:          []string{"planning", "development", "retro"},
		TargetBehaviors: []string{"B-22", "B-23"},
		DurationMinutes: 10,
		Description:     "Cross-team agent borrowing and adaptation",
	},
	{
		Name: "cross_team_dependency", Stage: 3,
		Phases:          []string{"planning", "development"},
		TargetBehaviors: []string{"B-24", "B-25"},
		DurationMinutes: 10,
		Description:     "Cross-team dependency resolution",
	},
	{
		Name: "knowledge_handoff", Stage: 3,
		Phases:          []string{"development", "retro", "meta_learning"},
		TargetBehaviors: []string{"B-26", "B-27"},
		DurationMinutes: 8,
		Description:     "Knowledge transfer during agent departure",
	},
	// Stage 4: Transfer
	{
		Name: "onboarding_support", Stage: 4,
		Phases:          []string{"planning", "development", "retro"},
		TargetBehaviors: []string{"B-28", "B-29"},
		DurationMinutes: 10,
		Description:     "Supporting new team member onboarding",
	},
	{
		Name: "compensation", Stage: 4,
		Phases:          []string{"planning", "development", "qa_review", "retro"},
		TargetBehaviors: []string{"B-30"},
		DurationMinutes: 10,
		Description:     "Compensating for team gaps after departure",
	},
}

// ByName indexes EpisodeTypes by Name.
var ByName = func() map[string]EpisodeType {
	m := make(map[string]EpisodeType, len(EpisodeTypes))
	for _, et := range EpisodeTypes {
		m[et.Name] = et
	}
	return m
}()

// typeDisturbances maps an episode type to the disturbance kinds relevant
// to it; types absent here fall back to ["flaky_test"] at difficulty>0.5.
var typeDisturbances = map[string][]string{
	"recovery":     {"flaky_test", "production_incident", "build_failure"},
	"triage":       {"production_incident", "scope_creep"},
	"scope_change": {"scope_creep", "requirement_change"},
	"compensation": {"agent_departure"},
}

// Story is a single synthetic or imported backlog item.
type Story struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	StoryPoints        int      `json:"story_points"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
}

// DisturbanceOverrides is the per-episode disturbance configuration
// computed for a generated scenario.
type DisturbanceOverrides struct {
	Enabled     bool               `json:"enabled"`
	Frequencies map[string]float64 `json:"frequencies,omitempty"`
}

// Config is the fully-resolved scenario configuration for one episode.
type Config struct {
	EpisodeType          string                   `json:"episode_type"`
	Stage                int                      `json:"stage"`
	Difficulty           float64                  `json:"difficulty"`
	TargetAgentSlot      string                   `json:"target_agent_slot"`
	BacklogStories       []Story                  `json:"backlog_stories"`
	DisturbanceOverrides DisturbanceOverrides     `json:"disturbance_overrides"`
	AgentOverrides       map[string]AgentOverride `json:"agent_overrides"`
	ExpectedBehaviors    []string                 `json:"expected_behaviors"`
	DurationMinutes      int                      `json:"duration_minutes"`
	Phases               []string                 `json:"phases"`
}

// AgentOverride carries per-role overrides applied when building a
// scenario's team, e.g. marking the training candidate's slot.
type AgentOverride struct {
	IsTrainingCandidate bool `json:"is_training_candidate"`
}

// Catalog builds deterministic ScenarioConfigs from the fixed episode-type
// table, given a seed.
type Catalog struct{}

// NewCatalog constructs a Catalog.
func NewCatalog() *Catalog { return &Catalog{} }

// ListEpisodeTypes returns episode type names, optionally filtered to a
// single training stage (1-4), in catalog-declaration order.
func (c *Catalog) ListEpisodeTypes(stage int) []string {
	var out []string
	for _, et := range EpisodeTypes {
		if stage == 0 || et.Stage == stage {
			out = append(out, et.Name)
		}
	}
	return out
}

// Generate builds a ScenarioConfig for episodeType at the given difficulty
// (0.0 easy - 1.0 hard), placing the training candidate at targetSlot.
// The same (episodeType, difficulty, targetSlot, seed) always produces the
// same stories and disturbances.
func (c *Catalog) Generate(episodeType string, difficulty float64, targetSlot string, seed int64) (Config, error) {
	et, ok := ByName[episodeType]
	if !ok {
		return Config{}, fmt.Errorf("scenario: unknown episode type %q", episodeType)
	}

	rng := rand.New(rand.NewSource(seed))

	stories := generateStories(et.Name, difficulty, rng)
	disturbances := generateDisturbances(et.Name, difficulty, rng)

	return Config{
		EpisodeType:          et.Name,
		Stage:                et.Stage,
		Difficulty:           difficulty,
		TargetAgentSlot:      targetSlot,
		BacklogStories:       stories,
		DisturbanceOverrides: disturbances,
		AgentOverrides:       map[string]AgentOverride{targetSlot: {IsTrainingCandidate: true}},
		ExpectedBehaviors:    append([]string(nil), et.TargetBehaviors...),
		DurationMinutes:      et.DurationMinutes,
		Phases:               append([]string(nil), et.Phases...),
	}, nil
}

// GenerateCurriculum generates a batch of episodes for a curriculum stage,
// cycling through that stage's episode types and sampling difficulty
// uniformly in [0.2, 0.9].
func (c *Catalog) GenerateCurriculum(stage, numEpisodes int, seed int64) ([]Config, error) {
	types := c.ListEpisodeTypes(stage)
	if len(types) == 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(seed))
	scenarios := make([]Config, 0, numEpisodes)
	for i := 0; i < numEpisodes; i++ {
		epType := types[i%len(types)]
		difficulty := 0.2 + rng.Float64()*0.7
		sub := int64(rng.Int31())
		sc, err := c.Generate(epType, difficulty, "dev_mid_backend", sub)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func generateStories(episodeType string, difficulty float64, rng *rand.Rand) []Story {
	numStories := maxInt(1, int(1+difficulty*3))
	storyPoints := int(2 + difficulty*6)
	numCriteria := 1 + int(difficulty*3)

	prefix := strings.ToUpper(episodeType)
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}

	stories := make([]Story, 0, numStories)
	for i := 0; i < numStories; i++ {
		criteria := make([]string, 0, numCriteria)
		for j := 0; j < numCriteria; j++ {
			criteria = append(criteria, fmt.Sprintf("Criterion %d", j+1))
		}
		stories = append(stories, Story{
			ID:                  fmt.Sprintf("EP-%s-%03d", prefix, i+1),
			Title:               fmt.Sprintf("%s task %d", titleCase(episodeType), i+1),
			Description:         fmt.Sprintf("Synthetic story for %s training", episodeType),
			StoryPoints:         storyPoints,
			AcceptanceCriteria:  criteria,
		})
	}
	return stories
}

func generateDisturbances(episodeType string, difficulty float64, rng *rand.Rand) DisturbanceOverrides {
	if difficulty < 0.3 {
		return DisturbanceOverrides{Enabled: false}
	}

	relevant := typeDisturbances[episodeType]
	if len(relevant) == 0 && difficulty > 0.5 {
		relevant = []string{"flaky_test"}
	}

	if len(relevant) == 0 {
		return DisturbanceOverrides{Enabled: false}
	}

	frequencies := make(map[string]float64, len(relevant))
	for _, kind := range relevant {
		frequencies[kind] = 0.2 + rng.Float64()*(difficulty-0.2)
	}

	return DisturbanceOverrides{Enabled: true, Frequencies: frequencies}
}

func titleCase(episodeType string) string {
	words := strings.Split(episodeType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
