package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/persona"
)

const kpiKeyPrefix = "kpi:"

// KPIStore holds per-session KPI snapshots in Redis. Snapshots are seeded
// from the default tile set on first read and jittered in place by the
// refresher.
type KPIStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewKPIStore creates a KPI snapshot store. ttl should match the session TTL
// so snapshots expire with their sessions.
func NewKPIStore(client *redis.Client, ttl time.Duration) *KPIStore {
	return &KPIStore{client: client, ttl: ttl}
}

func kpiKey(sessionID string) string {
	return kpiKeyPrefix + sessionID
}

// Get returns the session's KPI snapshot, seeding the default tiles if no
// snapshot exists yet.
func (s *KPIStore) Get(ctx context.Context, sessionID string) ([]models.KPI, error) {
	data, err := s.client.Get(ctx, kpiKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		kpis := persona.DefaultKPIs()
		if err := s.save(ctx, sessionID, kpis); err != nil {
			return nil, err
		}
		return kpis, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load kpi snapshot: %w", err)
	}

	var kpis []models.KPI
	if err := json.Unmarshal(data, &kpis); err != nil {
		return nil, fmt.Errorf("failed to decode kpi snapshot: %w", err)
	}
	return kpis, nil
}

// Reset drops the session's snapshot so the next read reseeds the defaults.
// Persona switches call this as part of dataset regeneration.
func (s *KPIStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, kpiKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to reset kpi snapshot: %w", err)
	}
	return nil
}

// JitterAll applies one refresh step to every live snapshot and returns the
// number of snapshots updated. Snapshots that disappear mid-scan are skipped.
func (s *KPIStore) JitterAll(ctx context.Context, rng *rand.Rand) (int, error) {
	var updated int
	iter := s.client.Scan(ctx, 0, kpiKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return updated, fmt.Errorf("failed to load snapshot %s: %w", key, err)
		}

		var kpis []models.KPI
		if err := json.Unmarshal(data, &kpis); err != nil {
			// Drop undecodable snapshots so they reseed cleanly.
			_ = s.client.Del(ctx, key)
			continue
		}

		kpis = persona.JitterKPIs(kpis, rng)
		encoded, err := json.Marshal(kpis)
		if err != nil {
			return updated, fmt.Errorf("failed to encode snapshot %s: %w", key, err)
		}
		if err := s.client.Set(ctx, key, encoded, redis.KeepTTL).Err(); err != nil {
			return updated, fmt.Errorf("failed to store snapshot %s: %w", key, err)
		}
		updated++
	}
	if err := iter.Err(); err != nil {
		return updated, fmt.Errorf("kpi snapshot scan failed: %w", err)
	}
	return updated, nil
}

func (s *KPIStore) save(ctx context.Context, sessionID string, kpis []models.KPI) error {
	data, err := json.Marshal(kpis)
	if err != nil {
		return fmt.Errorf("failed to encode kpi snapshot: %w", err)
	}
	if err := s.client.Set(ctx, kpiKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store kpi snapshot: %w", err)
	}
	return nil
}
