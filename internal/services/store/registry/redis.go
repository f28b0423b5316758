package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"selfservice/internal/services/models"
	id "selfservice/pkg/domain"
	"selfservice/pkg/platform/sentinel"
)

const registryKeyPrefix = "selfservice:registry:"

// Redis stores each session's registry as one JSON document. The key expires
// with the session and every read or write pushes the expiry forward.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func registryKey(sessionID id.SessionID) string {
	return registryKeyPrefix + sessionID.String()
}

func (s *Redis) Load(ctx context.Context, sessionID id.SessionID) (*models.Registry, error) {
	raw, err := s.client.GetEx(ctx, registryKey(sessionID), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get registry: %w", err)
	}
	return decodeRegistry(raw)
}

// Update runs fn inside WATCH/MULTI. If another request writes the same
// session in between, the transaction aborts with sentinel.ErrConflict.
func (s *Redis) Update(ctx context.Context, sessionID id.SessionID, fn func(*models.Registry) error) error {
	key := registryKey(sessionID)

	txf := func(tx *redis.Tx) error {
		reg := models.NewRegistry()
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("get registry: %w", err)
		default:
			if reg, err = decodeRegistry(raw); err != nil {
				return err
			}
		}

		if err := fn(reg); err != nil {
			return err
		}

		encoded, err := json.Marshal(reg)
		if err != nil {
			return fmt.Errorf("encode registry: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("registry for session %s: %w", sessionID, sentinel.ErrConflict)
	}
	return err
}

func decodeRegistry(raw []byte) (*models.Registry, error) {
	reg := models.NewRegistry()
	if err := json.Unmarshal(raw, reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return reg, nil
}
