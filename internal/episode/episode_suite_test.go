package episode

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEpisode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Episode Runner Suite")
}
