package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
}

func newTestCredentials(t *testing.T, env map[string]string) (*Credentials, *mocks.MockSecretStore) {
	t.Helper()

	store := mocks.NewMockSecretStore(t)
	creds := NewCredentials(store, "", "")
	creds.getenv = func(key string) string { return env[key] }
	return creds, store
}

func TestCredentialsPreferEnvironment(t *testing.T) {
	creds, _ := newTestCredentials(t, map[string]string{DefaultAPIKeyEnv: " sk-env "})

	key, err := creds.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)
}

func TestCredentialsFallBackToSecretStore(t *testing.T) {
	creds, store := newTestCredentials(t, nil)
	store.EXPECT().Get(mockAnyContext(), DefaultAPIKeySecret).Return("sk-stored\n", nil)

	key, err := creds.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", key)
}

func TestCredentialsMissingSecret(t *testing.T) {
	creds, store := newTestCredentials(t, nil)
	store.EXPECT().Get(mockAnyContext(), DefaultAPIKeySecret).Return("", errors.New("pass show failed"))

	_, err := creds.APIKey(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass show failed")
}

func TestCredentialsSetAPIKey(t *testing.T) {
	creds, store := newTestCredentials(t, nil)
	store.EXPECT().Put(mockAnyContext(), DefaultAPIKeySecret, "sk-new").Return(nil)

	require.NoError(t, creds.SetAPIKey(context.Background(), SetAPIKeyCommand{Value: "  sk-new  "}))
}

func TestCredentialsSetAPIKeyRejectsEmpty(t *testing.T) {
	creds, _ := newTestCredentials(t, nil)

	err := creds.SetAPIKey(context.Background(), SetAPIKeyCommand{Value: "  "})
	assert.ErrorIs(t, err, errEmptyAPIKey)
}

func TestCredentialsRemoveAPIKeyWrapsStoreError(t *testing.T) {
	creds, store := newTestCredentials(t, nil)
	store.EXPECT().Delete(mockAnyContext(), DefaultAPIKeySecret).Return(errors.New("locked"))

	err := creds.RemoveAPIKey(context.Background())
	assert.ErrorContains(t, err, "delete api key: locked")
}

func TestRosterListsConfiguredAgents(t *testing.T) {
	entries := Roster(domain.DefaultRoster())

	require.Len(t, entries, 3)
	assert.Equal(t, domain.AgentID("pasta"), entries[0].ID)
	assert.Equal(t, "google/gemini-flash-1.5", entries[1].Model)
	assert.InDelta(t, 1.1, entries[2].Temperature, 1e-9)
	assert.Equal(t, "flour, sugar, butter, eggs, vanilla", entries[2].Ingredients)
}
