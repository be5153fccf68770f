// Package redis provides Redis-based adapters for the development users API.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
	"github.com/target/mmk-usersession/internal/ports"
)

const (
	defaultPrefix = "usersession:profile:"
	maxTxRetries  = 5
)

var _ ports.ProfileStore = (*ProfileStore)(nil)

// ProfileStore keeps one JSON document per user id.
type ProfileStore struct {
	client redis.UniversalClient
	prefix string
}

// NewProfileStore creates a Redis-backed profile store.
func NewProfileStore(client redis.UniversalClient) *ProfileStore {
	return NewProfileStoreWithPrefix(client, defaultPrefix)
}

// NewProfileStoreWithPrefix creates a Redis profile store with a custom key prefix.
func NewProfileStoreWithPrefix(client redis.UniversalClient, prefix string) *ProfileStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ProfileStore{client: client, prefix: prefix}
}

func (s *ProfileStore) Get(ctx context.Context, userID string) (domainuser.Record, error) {
	if userID == "" {
		return nil, apperrors.NotFound("profile not found")
	}
	return s.get(ctx, s.client, userID)
}

func (s *ProfileStore) Save(ctx context.Context, userID string, rec domainuser.Record) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.client.Set(ctx, s.prefix+userID, data, 0).Err()
}

// SetLastPage rewrites last_page under an optimistic WATCH so concurrent
// writers never lose each other's fields.
func (s *ProfileStore) SetLastPage(ctx context.Context, userID, lastPage string) error {
	key := s.prefix + userID
	txf := func(tx *redis.Tx) error {
		rec, err := s.get(ctx, tx, userID)
		if err != nil {
			return err
		}
		rec[domainuser.FieldLastPage] = lastPage
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("set last page for %s: too much contention", userID)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *ProfileStore) get(ctx context.Context, c getter, userID string) (domainuser.Record, error) {
	data, err := c.Get(ctx, s.prefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFoundf("profile %s not found", userID)
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec domainuser.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return rec, nil
}
