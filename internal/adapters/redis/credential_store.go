package redis

// Package redis provides a Redis-backed credential store for shared client hosts.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
)

// Field names match the keys the browser client kept in localStorage.
const (
	fieldToken  = "authToken"
	fieldRole   = "userRole"
	fieldUserID = "userId"
)

// CredentialStore keeps one credential hash per API origin.
type CredentialStore struct {
	client redis.UniversalClient
	key    string
}

// NewCredentialStore creates a store for origin with the default "credential:" prefix.
func NewCredentialStore(client redis.UniversalClient, origin string) *CredentialStore {
	return NewCredentialStoreWithPrefix(client, "credential:", origin)
}

// NewCredentialStoreWithPrefix creates a store with a custom key prefix.
func NewCredentialStoreWithPrefix(client redis.UniversalClient, prefix, origin string) *CredentialStore {
	return &CredentialStore{
		client: client,
		key:    prefix + origin,
	}
}

func (s *CredentialStore) Save(ctx context.Context, cred domainauth.Credential) error {
	if cred.Token == "" {
		return errors.New("credential token cannot be empty")
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.HSet(ctx, s.key,
			fieldToken, cred.Token,
			fieldRole, string(cred.Role),
			fieldUserID, cred.UserID,
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Load(ctx context.Context) (domainauth.CredentialFragment, error) {
	vals, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.CredentialFragment{}, nil
		}
		return domainauth.CredentialFragment{}, fmt.Errorf("redis load credential: %w", err)
	}

	return domainauth.CredentialFragment{
		Token:  vals[fieldToken],
		Role:   vals[fieldRole],
		UserID: vals[fieldUserID],
	}, nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis clear credential: %w", err)
	}
	return nil
}
