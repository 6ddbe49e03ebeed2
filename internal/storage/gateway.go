package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/tOgg1/tick/internal/models"
)

// Gateway saves and loads the task list through a KV.
type Gateway struct {
	kv     KV
	key    string
	logger zerolog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithKey overrides DefaultKey.
func WithKey(key string) GatewayOption {
	return func(g *Gateway) {
		if key != "" {
			g.key = key
		}
	}
}

// WithGatewayLogger sets the logger used for swallowed failures.
func WithGatewayLogger(logger zerolog.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// NewGateway creates a gateway over kv.
func NewGateway(kv KV, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		kv:     kv,
		key:    DefaultKey,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Key returns the key the list is stored under.
func (g *Gateway) Key() string { return g.key }

// Save writes the full list. Failures are logged and the stored copy keeps
// its previous value.
func (g *Gateway) Save(ctx context.Context, tasks []models.Task) {
	payload, err := Encode(tasks)
	if err != nil {
		g.logger.Error().Err(err).Str("key", g.key).Msg("failed to encode tasks")
		return
	}
	if err := g.kv.Set(ctx, g.key, string(payload)); err != nil {
		g.logger.Error().Err(err).Str("key", g.key).Int("tasks", len(tasks)).Msg("failed to save tasks")
		return
	}
	g.logger.Debug().Str("key", g.key).Int("tasks", len(tasks)).Msg("tasks saved")
}

// Load reads the stored list. A missing key yields an empty list, and so does
// any read, decode or schema failure after it has been logged.
func (g *Gateway) Load(ctx context.Context) []models.Task {
	value, found, err := g.kv.Get(ctx, g.key)
	if err != nil {
		g.logger.Error().Err(err).Str("key", g.key).Msg("failed to read tasks")
		return []models.Task{}
	}
	if !found {
		return []models.Task{}
	}
	tasks, err := Decode([]byte(value))
	if err != nil {
		g.logger.Warn().Err(err).Str("key", g.key).Msg("discarding unreadable tasks")
		return []models.Task{}
	}
	g.logger.Debug().Str("key", g.key).Int("tasks", len(tasks)).Msg("tasks loaded")
	return tasks
}

// Encode renders tasks in the persisted layout. A nil slice encodes as [].
func Encode(tasks []models.Task) ([]byte, error) {
	return json.Marshal(models.CloneTasks(tasks))
}

// Decode parses and validates a persisted payload, including id uniqueness.
func Decode(payload []byte) ([]models.Task, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		return nil, err
	}
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	return models.CloneTasks(tasks), nil
}
