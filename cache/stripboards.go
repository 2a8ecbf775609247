// Package cache keeps rendered stripboards in Redis so repeated board reads
// skip the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"s7scheduling/stripboard"
)

const (
	boardKeyPrefix = "stripboard:project:" // stripboard:project:{project_id}:{global}.{project}:{audience}
	genKeyPrefix   = "stripboard:gen:"     // stripboard:gen:{project_id}
	globalGenKey   = "stripboard:gen:all"
)

// Audience separates boards rendered for writers, whose cards carry actions,
// from read-only boards.
type Audience string

const (
	Reader Audience = "reader"
	Writer Audience = "writer"
)

// Generation is the invalidation state a board was read under. Get returns
// it and Set stores under it, so a board built from data older than the last
// invalidation lands on a key that is never read again.
type Generation struct {
	global  int64
	project int64
}

// Stripboards is a Redis-backed board cache. A nil *Stripboards is valid and
// caches nothing.
//
// Generation counters carry no expiry: resetting one to an earlier value
// could expose a board written before the reset.
type Stripboards struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Stripboards {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stripboards{client: client, ttl: ttl, log: logger.Named("cache")}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string, ttl time.Duration, logger *zap.Logger) (*Stripboards, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return New(client, ttl, logger), nil
}

// Get returns the cached board, or ok=false on a miss. The returned
// Generation must be passed to Set when the board is rebuilt after a miss;
// read it before reading the store. On error the board must not be cached.
func (c *Stripboards) Get(ctx context.Context, projectID uuid.UUID, audience Audience) (*stripboard.Board, Generation, bool, error) {
	if c == nil {
		return nil, Generation{}, false, nil
	}

	gen, err := c.generation(ctx, projectID)
	if err != nil {
		return nil, gen, false, err
	}

	key := boardKey(projectID, audience, gen)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("failed to get cached stripboard: %w", err)
	}

	var board stripboard.Board
	if err := json.Unmarshal(data, &board); err != nil {
		// treated as a miss so the rebuilt board overwrites it
		c.log.Warn("Discarding unreadable cached stripboard", zap.String("key", key), zap.Error(err))
		return nil, gen, false, nil
	}
	return &board, gen, true, nil
}

// Set stores board under gen, as returned by the Get that missed.
func (c *Stripboards) Set(ctx context.Context, board stripboard.Board, audience Audience, gen Generation) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to marshal stripboard: %w", err)
	}
	if err := c.client.Set(ctx, boardKey(board.ProjectID, audience, gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stripboard: %w", err)
	}
	return nil
}

// Invalidate retires every cached board of a project, including boards still
// being built from data read before the call.
func (c *Stripboards) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if c == nil {
		return nil
	}

	if err := c.client.Incr(ctx, genKey(projectID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stripboard: %w", err)
	}
	c.log.Debug("Invalidated stripboard", zap.Stringer("project_id", projectID))
	return nil
}

// InvalidateAll retires the cached boards of every project.
func (c *Stripboards) InvalidateAll(ctx context.Context) error {
	if c == nil {
		return nil
	}

	if err := c.client.Incr(ctx, globalGenKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stripboards: %w", err)
	}
	c.log.Debug("Invalidated all stripboards")
	return nil
}

func (c *Stripboards) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Stripboards) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Stripboards) generation(ctx context.Context, projectID uuid.UUID) (Generation, error) {
	vals, err := c.client.MGet(ctx, globalGenKey, genKey(projectID)).Result()
	if err != nil {
		return Generation{}, fmt.Errorf("failed to read stripboard generation: %w", err)
	}

	var gen Generation
	if gen.global, err = parseCounter(vals[0]); err != nil {
		return Generation{}, err
	}
	if gen.project, err = parseCounter(vals[1]); err != nil {
		return Generation{}, err
	}
	return gen, nil
}

// parseCounter reads an MGET value; a missing key is generation zero.
func parseCounter(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected stripboard generation %v", v)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stripboard generation %q: %w", s, err)
	}
	return n, nil
}

func genKey(projectID uuid.UUID) string {
	return genKeyPrefix + projectID.String()
}

func boardKey(projectID uuid.UUID, audience Audience, gen Generation) string {
	return fmt.Sprintf("%s%s:%d.%d:%s", boardKeyPrefix, projectID, gen.global, gen.project, audience)
}
