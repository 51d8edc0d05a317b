package httpapi

import (
	"github.com/gin-gonic/gin"
	"sprintbench.app/core/core/config"
	"sprintbench.app/core/internal/checkpoint"
	"sprintbench.app/core/internal/episode"
)

// RouterConfig controls which middleware SetupRoutes installs.
type RouterConfig struct {
	Auth config.AuthConfig
}

// SetupRoutes wires the episode-harness HTTP surface onto router.
func SetupRoutes(router *gin.Engine, runner *episode.Runner, ckptStore checkpoint.Store, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	episodeHandler := NewEpisodeHandler(runner)
	checkpointHandler := NewCheckpointHandler(ckptStore)

	v1 := router.Group("/api/v1")
	if cfg.Auth.Enabled() {
		v1.Use(workOSAuth(cfg.Auth))
	}
	{
		v1.POST("/episodes", episodeHandler.Create)
		v1.GET("/episode-types", episodeHandler.ListTypes)
		v1.POST("/checkpoints/:episode_id/restore", checkpointHandler.Restore)
	}
}
