// Package portfolio imports open GitLab issues as backlog stories, in
// place of the scenario catalog's synthetic generation, for episodes
// scored against a real backlog.
package portfolio

import (
	"context"
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"sprintbench.app/core/internal/scenario"
)

// Config configures the GitLab-backed importer.
type Config struct {
	Token     string
	BaseURL   string
	ProjectID string
}

// Importer fetches open issues from a GitLab project and maps them to
// scenario.Story values.
type Importer struct {
	client    *gitlab.Client
	projectID string
}

// NewImporter constructs an Importer.
func NewImporter(cfg Config) (*Importer, error) {
	opts := []gitlab.ClientOptionFunc{}
	if cfg.BaseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(cfg.BaseURL))
	}

	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("portfolio: create gitlab client: %w", err)
	}

	return &Importer{client: client, projectID: cfg.ProjectID}, nil
}

// ImportOpenIssues fetches every open issue in the configured project and
// maps each to a scenario.Story, using the issue's weight (when set) or a
// default of 3 story points.
func (imp *Importer) ImportOpenIssues(ctx context.Context) ([]scenario.Story, error) {
	opened := "opened"
	opts := &gitlab.ListProjectIssuesOptions{
		State: &opened,
	}

	issues, _, err := imp.client.Issues.ListProjectIssues(imp.projectID, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("portfolio: list issues: %w", err)
	}

	stories := make([]scenario.Story, 0, len(issues))
	for _, issue := range issues {
		points := 3
		if issue.Weight > 0 {
			points = issue.Weight
		}
		stories = append(stories, scenario.Story{
			ID:          fmt.Sprintf("GITLAB-%d", issue.IID),
			Title:       issue.Title,
			StoryPoints: points,
			Description: issue.Description,
		})
	}

	return stories, nil
}
