package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"sprintbench.app/core/internal/checkpoint"
	"sprintbench.app/core/internal/episode"
	"sprintbench.app/core/internal/scenario"
)

// EpisodeHandler serves the episode-running and catalog-browsing routes.
type EpisodeHandler struct {
	runner *episode.Runner
}

// NewEpisodeHandler constructs an EpisodeHandler.
func NewEpisodeHandler(runner *episode.Runner) *EpisodeHandler {
	return &EpisodeHandler{runner: runner}
}

// Create runs one episode synchronously and returns its result.
func (h *EpisodeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid episode request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = 0.5
	}
	numSprints := req.NumSprints
	if numSprints == 0 {
		numSprints = 1
	}
	targetSlot := req.TargetAgentSlot
	if targetSlot == "" {
		targetSlot = "dev_mid_backend"
	}

	result, err := h.runner.RunEpisode(ctx, req.EpisodeID, req.EpisodeType, difficulty, targetSlot, req.Seed, numSprints, req.CheckpointEveryPhase, nil)
	if err != nil {
		slog.ErrorContext(ctx, "episode run failed", "episode_id", req.EpisodeID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, episodeResponse{
		EpisodeID:    result.EpisodeID,
		EpisodeType:  result.EpisodeType,
		Sprints:      result.Sprints,
		PhaseResults: result.PhaseResults,
		Detected:     result.Detected,
		Reward:       result.Reward,
	})
}

// ListTypes returns the fixed 13-entry episode-type catalog.
func (h *EpisodeHandler) ListTypes(c *gin.Context) {
	out := make([]episodeTypeResponse, 0, len(scenario.EpisodeTypes))
	for _, et := range scenario.EpisodeTypes {
		out = append(out, toEpisodeTypeResponse(et))
	}
	c.JSON(http.StatusOK, gin.H{"episode_types": out})
}

// CheckpointHandler serves checkpoint restore requests.
type CheckpointHandler struct {
	store checkpoint.Store
}

// NewCheckpointHandler constructs a CheckpointHandler. store must not be nil.
func NewCheckpointHandler(store checkpoint.Store) *CheckpointHandler {
	return &CheckpointHandler{store: store}
}

// Restore loads a previously saved checkpoint for an episode/sprint/phase.
func (h *CheckpointHandler) Restore(c *gin.Context) {
	ctx := c.Request.Context()
	episodeID := c.Param("episode_id")

	var req restoreCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid restore request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "checkpoint store not configured"})
		return
	}

	cp, err := h.store.Restore(ctx, episodeID, req.Sprint, req.Phase, req.ExpectedConfigHash)
	if err != nil {
		slog.WarnContext(ctx, "checkpoint restore failed", "episode_id", episodeID, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cp)
}
