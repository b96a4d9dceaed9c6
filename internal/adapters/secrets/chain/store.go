package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/emergent-chefs/internal/adapters/secrets/file"
	passstore "github.com/bnema/emergent-chefs/internal/adapters/secrets/pass"
	"github.com/bnema/emergent-chefs/internal/ports"
)

// Store tries primary first and falls back on any failure that is not a
// context cancellation.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return s.both("put", func(store ports.SecretStore) error {
		return store.Put(ctx, key, value)
	})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.both("get", func(store ports.SecretStore) error {
		got, err := store.Get(ctx, key)
		if err != nil {
			return err
		}
		value = got
		return nil
	})

	return value, err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.both("delete", func(store ports.SecretStore) error {
		return store.Delete(ctx, key)
	})
}

func (s *Store) both(op string, call func(ports.SecretStore) error) error {
	err := call(s.primary)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := call(s.fallback)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, err, op, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
