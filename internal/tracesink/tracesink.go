// Package tracesink optionally mirrors decision traces into an ArangoDB
// graph (a "decisions" vertex collection plus "precedes" edges linking
// same-agent sequential decisions), supplementing the mandatory per-agent
// JSON trace files with a queryable analytics sink.
package tracesink

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"sprintbench.app/core/internal/tracer"
)

// Config configures the ArangoDB connection.
type Config struct {
	Endpoints []string
	Database  string
	Username  string
	Password  string
}

func (c Config) validate() error {
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("arangodb endpoints are required")
	}
	if c.Database == "" {
		return fmt.Errorf("arangodb database name is required")
	}
	return nil
}

const (
	decisionsCollection = "decisions"
	precedesCollection  = "precedes"
)

// Sink writes decisions and their sequential precedes-edges to ArangoDB.
type Sink struct {
	client arangodb.Client
	db     arangodb.Database
	cfg    Config
}

// New connects to ArangoDB and returns a Sink. Call EnsureCollections
// once before the first Write.
func New(ctx context.Context, cfg Config) (*Sink, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("tracesink config: %w", err)
	}

	endpoint := connection.NewRoundRobinEndpoints(cfg.Endpoints)
	conn := connection.NewHttp2Connection(connection.DefaultHTTP2ConfigurationWrapper(endpoint, true))
	if err := conn.SetAuthentication(connection.NewBasicAuth(cfg.Username, cfg.Password)); err != nil {
		return nil, fmt.Errorf("tracesink auth: %w", err)
	}

	client := arangodb.NewClient(conn)
	return &Sink{client: client, cfg: cfg}, nil
}

// EnsureCollections creates the database and collections if absent.
func (s *Sink) EnsureCollections(ctx context.Context) error {
	exists, err := s.client.DatabaseExists(ctx, s.cfg.Database)
	if err != nil {
		return fmt.Errorf("check database exists: %w", err)
	}
	if !exists {
		if _, err := s.client.CreateDatabase(ctx, s.cfg.Database, nil); err != nil {
			return fmt.Errorf("create database: %w", err)
		}
	}

	db, err := s.client.GetDatabase(ctx, s.cfg.Database, nil)
	if err != nil {
		return fmt.Errorf("get database: %w", err)
	}
	s.db = db

	if err := ensureCollection(ctx, db, decisionsCollection, false); err != nil {
		return err
	}
	if err := ensureCollection(ctx, db, precedesCollection, true); err != nil {
		return err
	}
	return nil
}

func ensureCollection(ctx context.Context, db arangodb.Database, name string, isEdge bool) error {
	exists, err := db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check collection %s exists: %w", name, err)
	}
	if exists {
		return nil
	}

	props := &arangodb.CreateCollectionPropertiesV2{}
	colType := arangodb.CollectionTypeDocument
	if isEdge {
		colType = arangodb.CollectionTypeEdge
	}
	props.Type = &colType

	if _, err := db.CreateCollectionV2(ctx, name, props); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}

type decisionDoc struct {
	Key        string `json:"_key"`
	AgentID    string `json:"agent_id"`
	Sprint     int    `json:"sprint"`
	Phase      string `json:"phase"`
	ActionType string `json:"action_type"`
}

type precedesEdge struct {
	From string `json:"_from"`
	To   string `json:"_to"`
}

// Write ingests decisions as vertices and chains same-agent sequential
// decisions with precedes edges, in the order they appear in decisions.
func (s *Sink) Write(ctx context.Context, decisions []tracer.Decision) error {
	if s.db == nil {
		return fmt.Errorf("tracesink: EnsureCollections must be called first")
	}

	vertices, err := s.db.GetCollection(ctx, decisionsCollection, nil)
	if err != nil {
		return fmt.Errorf("get decisions collection: %w", err)
	}
	edges, err := s.db.GetCollection(ctx, precedesCollection, nil)
	if err != nil {
		return fmt.Errorf("get precedes collection: %w", err)
	}

	lastByAgent := make(map[string]string)
	for _, d := range decisions {
		doc := decisionDoc{Key: d.DecisionID, AgentID: d.AgentID, Sprint: d.Sprint, Phase: d.Phase, ActionType: d.ActionType}
		if _, err := vertices.CreateDocument(ctx, doc); err != nil {
			return fmt.Errorf("ingest decision %s: %w", d.DecisionID, err)
		}

		if prev, ok := lastByAgent[d.AgentID]; ok {
			edge := precedesEdge{
				From: fmt.Sprintf("%s/%s", decisionsCollection, prev),
				To:   fmt.Sprintf("%s/%s", decisionsCollection, d.DecisionID),
			}
			if _, err := edges.CreateDocument(ctx, edge); err != nil {
				return fmt.Errorf("ingest precedes edge for %s: %w", d.DecisionID, err)
			}
		}
		lastByAgent[d.AgentID] = d.DecisionID
	}

	return nil
}
