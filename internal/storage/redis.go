package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"adventure-server/pkg/game"
)

const gameKeyPrefix = "game:"

// RedisStorage implements the Storage interface using Redis for games
// and filesystem for static story resources. Unlike the file backend,
// each game is its own key, so concurrent updates to different games
// don't race on a shared collection.
type RedisStorage struct {
	storyDir
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		storyDir: storyDir{dataDir: dataDir, logger: logger},
		client:   rdb,
		logger:   logger,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Game operations (Redis-backed)

func (r *RedisStorage) ListGames(ctx context.Context) ([]*game.Game, error) {
	keys, err := r.client.Keys(ctx, gameKeyPrefix+"*").Result()
	if err != nil {
		r.logger.Error("Failed to list game keys", "error", err)
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*game.Game, 0, len(keys))
	for _, key := range keys {
		data, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				continue // expired between KEYS and GET
			}
			return nil, fmt.Errorf("failed to load game %s: %w", key, err)
		}

		var g game.Game
		if err := json.Unmarshal([]byte(data), &g); err != nil {
			r.logger.Warn("Skipping corrupt game record", "key", key, "error", err)
			continue
		}
		games = append(games, &g)
	}
	return games, nil
}

func (r *RedisStorage) FindGame(ctx context.Context, id string) (*game.Game, error) {
	cmd := r.client.Get(ctx, gameKeyPrefix+id)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Game not found", "id", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load game", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	var g game.Game
	if err := json.Unmarshal([]byte(cmd.Val()), &g); err != nil {
		r.logger.Error("Failed to unmarshal game", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &g, nil
}

func (r *RedisStorage) AppendGame(ctx context.Context, g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		r.logger.Error("Failed to marshal game", "id", g.ID, "error", err)
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	cmd := r.client.Set(ctx, gameKeyPrefix+g.ID, string(data), 0)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save game", "id", g.ID, "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (r *RedisStorage) UpdateGame(ctx context.Context, id string, previously string, currentStep game.Step, nextSteps []game.Step) error {
	g, err := r.FindGame(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGameNotFound
	}

	g.Previously = previously
	g.CurrentStep = currentStep
	g.NextSteps = nextSteps
	return r.AppendGame(ctx, g)
}
