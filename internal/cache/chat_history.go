package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyHistory = "chat:history:"

// Line is one stored transcript entry.
type Line struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ChatHistory keeps a capped per-session chat transcript in a Redis list.
// The list expires together with the session TTL, so abandoned transcripts
// are not kept around.
type ChatHistory struct {
	rdb   *redis.Client
	ttl   time.Duration
	limit int64
}

// NewChatHistory returns a new ChatHistory keeping at most limit lines.
func NewChatHistory(rdb *redis.Client, ttl time.Duration, limit int64) *ChatHistory {
	if limit <= 0 {
		limit = 50
	}
	return &ChatHistory{rdb: rdb, ttl: ttl, limit: limit}
}

// Append pushes lines onto the transcript for the session token and trims
// it to the configured cap.
func (c *ChatHistory) Append(ctx context.Context, token string, lines ...Line) error {
	key := keyHistory + token
	vals := make([]interface{}, 0, len(lines))
	for _, l := range lines {
		b, err := json.Marshal(l)
		if err != nil {
			return err
		}
		vals = append(vals, b)
	}
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, key, vals...)
	pipe.LTrim(ctx, key, -c.limit, -1)
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns the transcript for the session token, oldest first. A
// missing key is an empty transcript, not an error.
func (c *ChatHistory) Get(ctx context.Context, token string) ([]Line, error) {
	raw, err := c.rdb.LRange(ctx, keyHistory+token, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(raw))
	for _, s := range raw {
		var l Line
		if err := json.Unmarshal([]byte(s), &l); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// Delete drops the transcript for the session token (on logout).
func (c *ChatHistory) Delete(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, keyHistory+token).Err()
}
