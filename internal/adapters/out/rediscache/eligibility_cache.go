// Package rediscache keeps settlement-eligibility summaries in Redis.
//
// Keys carry a per-direction version. Invalidate bumps the version, which orphans
// every summary of that direction at once; orphans expire through their TTL.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "freight:eligible"

var _ ports.EligibilityCache = (*EligibilityCache)(nil)

type EligibilityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewEligibilityCache(client redis.UniversalClient, ttl time.Duration) *EligibilityCache {
	return &EligibilityCache{client: client, ttl: ttl}
}

// New connects to addr and checks the connection.
func New(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("rediscache: ping: %w", err)
	}
	return client, nil
}

// GetSummary resolves the key against the current version of direction.
func (c *EligibilityCache) GetSummary(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
) (ports.EligibleSummary, ports.SummaryKey, bool, error) {
	key, err := c.key(ctx, direction, filter)
	if err != nil {
		return ports.EligibleSummary{}, "", false, err
	}

	payload, err := c.client.Get(ctx, string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.EligibleSummary{}, key, false, nil
	}
	if err != nil {
		return ports.EligibleSummary{}, key, false, err
	}

	var summary ports.EligibleSummary
	if err = json.Unmarshal(payload, &summary); err != nil {
		return ports.EligibleSummary{}, key, false, fmt.Errorf("rediscache: decode %s: %w", key, err)
	}
	return summary, key, true, nil
}

// PutSummary writes to key as resolved by GetSummary and never reads the version
// again.
func (c *EligibilityCache) PutSummary(ctx context.Context, key ports.SummaryKey, summary ports.EligibleSummary) error {
	if !strings.HasPrefix(string(key), keyPrefix+":") {
		return errs.NewValueIsInvalidError("summary key")
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, string(key), payload, c.ttl).Err()
}

func (c *EligibilityCache) Invalidate(ctx context.Context, directions ...settlement.Direction) error {
	pipe := c.client.TxPipeline()
	for _, direction := range directions {
		pipe.Incr(ctx, versionKey(direction))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *EligibilityCache) version(ctx context.Context, direction settlement.Direction) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(direction)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func (c *EligibilityCache) key(ctx context.Context, direction settlement.Direction, filter ports.EligibilityFilter) (ports.SummaryKey, error) {
	ver, err := c.version(ctx, direction)
	if err != nil {
		return "", err
	}
	return ports.SummaryKey(fmt.Sprintf("%s:%s:%d:%s", keyPrefix, direction, ver, filterHash(filter))), nil
}

func versionKey(direction settlement.Direction) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, direction)
}

// filterHash is stable for equal filters regardless of pointer identity.
func filterHash(f ports.EligibilityFilter) string {
	parts := []string{
		"cp=" + optional(f.CounterpartyID != nil, func() string { return f.CounterpartyID.String() }),
		"from=" + optional(f.From != nil, func() string { return f.From.Format(time.DateOnly) }),
		"to=" + optional(f.To != nil, func() string { return f.To.Format(time.DateOnly) }),
		"vt=" + f.VehicleType,
		"vn=" + strings.ToLower(f.VehicleNumber),
		"min=" + optional(f.MinTonnage != nil, func() string { return f.MinTonnage.String() }),
		"max=" + optional(f.MaxTonnage != nil, func() string { return f.MaxTonnage.String() }),
		"q=" + strings.ToLower(strings.TrimSpace(f.Search)),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:12])
}

func optional(present bool, value func() string) string {
	if !present {
		return "-"
	}
	return value()
}

func (c *EligibilityCache) PingContext(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
