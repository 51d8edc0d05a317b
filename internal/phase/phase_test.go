package phase

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sprintbench.app/core/internal/sprintconfig"
	"sprintbench.app/core/internal/tracer"
)

type fakeSprintManager struct {
	cfg sprintconfig.ExperimentConfig
}

func (f fakeSprintManager) Config() sprintconfig.ExperimentConfig { return f.cfg }

type fakeCollaborator struct {
	failOn map[string]error
	calls  []string
}

func (f *fakeCollaborator) RunPhase(ctx context.Context, sprint int, phase string) (any, error) {
	f.calls = append(f.calls, phase)
	if err, ok := f.failOn[phase]; ok {
		return nil, err
	}
	return map[string]any{"phase": phase, "sprint": sprint}, nil
}

var _ = Describe("Runner", func() {
	Describe("RunPhase", func() {
		It("rejects an unknown phase name", func() {
			r := NewRunner(fakeSprintManager{}, &fakeCollaborator{}, nil)
			_, err := r.RunPhase(context.Background(), 1, "sprint_zero")
			Expect(errors.Is(err, ErrUnknownPhase)).To(BeTrue())
		})

		It("captures a collaborator error on the Result without propagating it", func() {
			collab := &fakeCollaborator{failOn: map[string]error{"qa_review": errors.New("boom")}}
			r := NewRunner(fakeSprintManager{}, collab, nil)

			result, err := r.RunPhase(context.Background(), 1, "qa_review")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Error).To(Equal("boom"))
		})

		It("sets the tracer's phase only when tracing is enabled", func() {
			tr := tracer.New("ep-1")
			cfg := sprintconfig.ExperimentConfig{TracingEnabled: true}
			r := NewRunner(fakeSprintManager{cfg: cfg}, &fakeCollaborator{}, tr)

			_, err := r.RunPhase(context.Background(), 3, "planning")
			Expect(err).NotTo(HaveOccurred())

			d := tr.Record("someone", "generate", "", "", "", nil)
			Expect(d.DecisionID).To(Equal("someone-s03-planning-001"))
		})
	})

	Describe("RunSequence", func() {
		It("halts at the first failure", func() {
			collab := &fakeCollaborator{failOn: map[string]error{"development": errors.New("stuck")}}
			r := NewRunner(fakeSprintManager{}, collab, nil)

			results, err := r.RunSequence(context.Background(), 1, []string{"planning", "development", "qa_review", "retro"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Error).To(BeEmpty())
			Expect(results[1].Error).To(Equal("stuck"))
			Expect(collab.calls).To(HaveLen(2))
		})

		It("propagates an unknown phase name immediately", func() {
			r := NewRunner(fakeSprintManager{}, &fakeCollaborator{}, nil)
			results, err := r.RunSequence(context.Background(), 1, []string{"planning", "not_a_phase", "retro"})
			Expect(errors.Is(err, ErrUnknownPhase)).To(BeTrue())
			Expect(results).To(HaveLen(1))
		})
	})
})
