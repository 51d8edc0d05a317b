package httpapi

import (
	"testing"

	"sprintbench.app/core/internal/scenario"
)

func TestToEpisodeTypeResponseCopiesAllFields(t *testing.T) {
	et := scenario.EpisodeType{
		Name:            "implementation",
		Stage:           1,
		Phases:          []string{"development"},
		TargetBehaviors: []string{"B-07", "B-08", "B-09"},
		DurationMinutes: 10,
		Description:     "Code implementation with pairing",
	}

	got := toEpisodeTypeResponse(et)
	if got.Name != et.Name || got.Stage != et.Stage || got.DurationMinutes != et.DurationMinutes || got.Description != et.Description {
		t.Errorf("toEpisodeTypeResponse() = %+v, unexpected", got)
	}
	if len(got.Phases) != 1 || len(got.TargetBehaviors) != 3 {
		t.Errorf("toEpisodeTypeResponse() slice fields = %+v, unexpected", got)
	}
}
