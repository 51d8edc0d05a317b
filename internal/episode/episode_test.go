package episode

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Runner.RunEpisode", func() {
	It("errors on an unknown episode type", func() {
		r := NewRunner(nil)
		_, err := r.RunEpisode(context.Background(), "ep-1", "does_not_exist", 0.5, "dev_mid_backend", 1, 1, false, nil)
		Expect(err).To(HaveOccurred())
	})

	It("produces phase results and a reward in [0, 1]", func() {
		r := NewRunner(nil)
		result, err := r.RunEpisode(context.Background(), "ep-1", "implementation", 0.5, "dev_mid_backend", 42, 1, false, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.EpisodeID).To(Equal("ep-1"))
		Expect(result.EpisodeType).To(Equal("implementation"))
		Expect(result.Sprints).To(BeNumerically(">", 0))
		Expect(result.PhaseResults).NotTo(BeEmpty())
		Expect(result.Reward.Total).To(BeNumerically(">=", 0))
		Expect(result.Reward.Total).To(BeNumerically("<=", 1))
	})

	It("is deterministic for a given seed", func() {
		r1 := NewRunner(nil)
		a, err := r1.RunEpisode(context.Background(), "ep-1", "implementation", 0.5, "dev_mid_backend", 7, 1, false, nil)
		Expect(err).NotTo(HaveOccurred())

		r2 := NewRunner(nil)
		b, err := r2.RunEpisode(context.Background(), "ep-1", "implementation", 0.5, "dev_mid_backend", 7, 1, false, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(len(a.PhaseResults)).To(Equal(len(b.PhaseResults)))
		Expect(a.Reward.Total).To(Equal(b.Reward.Total))
	})

	It("reports a non-negative velocity ratio component", func() {
		r := NewRunner(nil)
		result, err := r.RunEpisode(context.Background(), "ep-1", "implementation", 0.5, "dev_mid_backend", 42, 1, false, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reward.Components["velocity_ratio"]).To(BeNumerically(">=", 0))
	})
})
