package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "chefs/openrouter/api_key"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", testKey}, args)
			assert.Equal(t, "sk-or-test\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), testKey, "sk-or-test")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", testKey}, args)
			assert.Empty(t, input)
			return "sk-or-test\r\nurl: https://openrouter.ai\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-or-test", value)
}

func TestStoreGetMapsMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: chefs/openrouter/api_key is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), testKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", testKey}, args)
			return "", "", nil
		},
	}

	require.NoError(t, store.Delete(context.Background(), testKey))
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), testKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, testKey)
	assert.ErrorContains(t, err, "gpg: decryption failed")
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			t.Fatal("pass must not run with a canceled context")
			return "", "", nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, testKey)
	assert.ErrorIs(t, err, context.Canceled)
}
