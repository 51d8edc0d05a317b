package scenario

import (
	"reflect"
	"testing"
)

func TestEpisodeTypesTableHasThirteenEntries(t *testing.T) {
	if len(EpisodeTypes) != 13 {
		t.Fatalf("expected 13 episode types, got %d", len(EpisodeTypes))
	}
	for _, et := range EpisodeTypes {
		if _, ok := ByName[et.Name]; !ok {
			t.Errorf("ByName missing entry for %s", et.Name)
		}
		if et.Stage < 1 || et.Stage > 4 {
			t.Errorf("%s has stage %d, want 1-4", et.Name, et.Stage)
		}
	}
}

func TestListEpisodeTypesFiltersByStage(t *testing.T) {
	c := NewCatalog()
	stage1 := c.ListEpisodeTypes(1)
	if len(stage1) != 4 {
		t.Fatalf("stage 1 types = %d, want 4", len(stage1))
	}
	all := c.ListEpisodeTypes(0)
	if len(all) != 13 {
		t.Fatalf("ListEpisodeTypes(0) = %d, want 13 (all)", len(all))
	}
}

func TestGenerateUnknownEpisodeType(t *testing.T) {
	c := NewCatalog()
	if _, err := c.Generate("does_not_exist", 0.5, "dev_mid_backend", 1); err == nil {
		t.Fatal("expected an error for an unknown episode type")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	c := NewCatalog()
	a, err := c.Generate("implementation", 0.5, "dev_mid_backend", 42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := c.Generate("implementation", 0.5, "dev_mid_backend", 42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(a.BacklogStories) != len(b.BacklogStories) {
		t.Fatalf("story count differs across identical seeds: %d vs %d", len(a.BacklogStories), len(b.BacklogStories))
	}
	for i := range a.BacklogStories {
		if !reflect.DeepEqual(a.BacklogStories[i], b.BacklogStories[i]) {
			t.Errorf("story %d differs across identical seeds: %+v vs %+v", i, a.BacklogStories[i], b.BacklogStories[i])
		}
	}
}

func TestGenerateSetsStageDurationAndExpectedBehaviors(t *testing.T) {
	c := NewCatalog()
	sc, err := c.Generate("triage", 0.6, "qa_lead", 7)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if sc.Stage != 2 {
		t.Errorf("Stage = %d, want 2", sc.Stage)
	}
	if sc.DurationMinutes != 8 {
		t.Errorf("DurationMinutes = %d, want 8", sc.DurationMinutes)
	}
	if len(sc.ExpectedBehaviors) != 2 {
		t.Errorf("ExpectedBehaviors = %v, want 2 codes", sc.ExpectedBehaviors)
	}
	if !sc.AgentOverrides["qa_lead"].IsTrainingCandidate {
		t.Errorf("AgentOverrides missing training-candidate flag on target slot")
	}
}

func TestGenerateStoryPoolSizeScalesWithDifficulty(t *testing.T) {
	c := NewCatalog()
	easy, _ := c.Generate("implementation", 0.0, "dev_mid_backend", 1)
	hard, _ := c.Generate("implementation", 1.0, "dev_mid_backend", 1)

	if len(hard.BacklogStories) <= len(easy.BacklogStories) {
		t.Errorf("hard story pool (%d) should exceed easy story pool (%d)", len(hard.BacklogStories), len(easy.BacklogStories))
	}
}

func TestGenerateCurriculumIsDeterministicAndCyclesTypes(t *testing.T) {
	c := NewCatalog()
	a, err := c.GenerateCurriculum(1, 8, 7)
	if err != nil {
		t.Fatalf("GenerateCurriculum() error = %v", err)
	}
	b, err := c.GenerateCurriculum(1, 8, 7)
	if err != nil {
		t.Fatalf("GenerateCurriculum() error = %v", err)
	}

	if len(a) != 8 {
		t.Fatalf("expected 8 scenarios, got %d", len(a))
	}
	for i := range a {
		if a[i].EpisodeType != b[i].EpisodeType || a[i].Difficulty != b[i].Difficulty {
			t.Errorf("scenario %d differs across identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}

	types := c.ListEpisodeTypes(1)
	for i, sc := range a {
		if sc.EpisodeType != types[i%len(types)] {
			t.Errorf("scenario %d type = %s, want cycled %s", i, sc.EpisodeType, types[i%len(types)])
		}
	}
}
