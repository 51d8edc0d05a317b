// Command episode runs one episode end to end against the mock fixture
// and prints the result as indented JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"sprintbench.app/core/common"
	"sprintbench.app/core/common/logger"
	"sprintbench.app/core/core/config"
	"sprintbench.app/core/internal/checkpoint"
	"sprintbench.app/core/internal/episode"
	"sprintbench.app/core/internal/scenario"
)

func main() {
	_ = godotenv.Load()

	episodeType := flag.String("episode-type", "implementation", "episode type name from the catalog")
	difficulty := flag.Float64("difficulty", 0.5, "difficulty in [0.0, 1.0]")
	agentSlot := flag.String("target-agent-slot", "dev_mid_backend", "role ID the training candidate occupies")
	targetSlot := flag.Int("target-slot", 0, "run slot index, appended to the generated episode ID")
	seed := flag.Int64("seed", 1, "deterministic seed for story/disturbance generation")
	numSprints := flag.Int("num-sprints", 1, "number of sprints to run")
	checkpointEveryPhase := flag.Bool("checkpoint-every-phase", false, "save a checkpoint after every phase")
	flag.Parse()

	cfg := config.Load()
	logger.Setup(cfg)

	ctx := context.Background()

	if _, ok := scenario.ByName[*episodeType]; !ok {
		fmt.Fprintf(os.Stderr, "unknown episode type %q\n", *episodeType)
		os.Exit(1)
	}

	var ckptStore checkpoint.Store
	if *checkpointEveryPhase {
		if cfg.Checkpoint.RedisEnabled() {
			ckptStore = checkpoint.NewRedisStore(cfg.Checkpoint.RedisAddr)
		} else {
			ckptStore = checkpoint.NewFileStore(cfg.Checkpoint.Root)
		}
	}

	episodeID, err := common.Slugify(fmt.Sprintf("%s slot%02d seed%d", *episodeType, *targetSlot, *seed), *episodeType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not derive episode id: %v\n", err)
		os.Exit(1)
	}

	runner := episode.NewRunner(ckptStore)
	result, err := runner.RunEpisode(ctx, episodeID, *episodeType, *difficulty, *agentSlot, *seed, *numSprints, *checkpointEveryPhase, nil)
	if err != nil {
		slog.ErrorContext(ctx, "episode run failed", "episode_id", episodeID, "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal episode result", "error", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}
