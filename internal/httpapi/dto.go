package httpapi

import (
	"sprintbench.app/core/internal/phase"
	"sprintbench.app/core/internal/reward"
	"sprintbench.app/core/internal/scenario"
)

// createEpisodeRequest is the POST /episodes request body.
type createEpisodeRequest struct {
	EpisodeID            string  `json:"episode_id" binding:"required"`
	EpisodeType          string  `json:"episode_type" binding:"required"`
	Difficulty           float64 `json:"difficulty"`
	TargetAgentSlot      string  `json:"target_agent_slot"`
	Seed                 int64   `json:"seed"`
	NumSprints           int     `json:"num_sprints"`
	CheckpointEveryPhase bool    `json:"checkpoint_every_phase"`
}

// episodeResponse mirrors episode.Result over the wire.
type episodeResponse struct {
	EpisodeID    string         `json:"episode_id"`
	EpisodeType  string         `json:"episode_type"`
	Sprints      int            `json:"sprints"`
	PhaseResults []phase.Result `json:"phase_results"`
	Detected     []string       `json:"detected_behaviors"`
	Reward       reward.Signal  `json:"reward"`
}

// episodeTypeResponse describes one catalog entry for GET /episode-types.
type episodeTypeResponse struct {
	Name            string   `json:"name"`
	Stage           int      `json:"stage"`
	Phases          []string `json:"phases"`
	TargetBehaviors []string `json:"target_behaviors"`
	DurationMinutes int      `json:"duration_minutes"`
	Description     string   `json:"description"`
}

func toEpisodeTypeResponse(et scenario.EpisodeType) episodeTypeResponse {
	return episodeTypeResponse{
		Name:            et.Name,
		Stage:           et.Stage,
		Phases:          et.Phases,
		TargetBehaviors: et.TargetBehaviors,
		DurationMinutes: et.DurationMinutes,
		Description:     et.Description,
	}
}

// restoreCheckpointRequest is the POST /checkpoints/{episode_id}/restore body.
type restoreCheckpointRequest struct {
	Sprint             int    `json:"sprint" binding:"required"`
	Phase              string `json:"phase" binding:"required"`
	ExpectedConfigHash string `json:"expected_config_hash"`
}
