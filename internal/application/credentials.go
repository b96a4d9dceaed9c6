package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
)

const (
	DefaultAPIKeyEnv    = "OPENROUTER_API_KEY"
	DefaultAPIKeySecret = "chefs/openrouter/api_key"
)

var errEmptyAPIKey = errors.New("api key is empty")

// Credentials resolves the provider API key from the environment first and
// the secret store second.
type Credentials struct {
	store     ports.SecretStore
	envKey    string
	secretKey string
	getenv    func(string) string
}

func NewCredentials(store ports.SecretStore, envKey, secretKey string) *Credentials {
	if envKey == "" {
		envKey = DefaultAPIKeyEnv
	}
	if secretKey == "" {
		secretKey = DefaultAPIKeySecret
	}

	return &Credentials{store: store, envKey: envKey, secretKey: secretKey, getenv: os.Getenv}
}

func (c *Credentials) SecretKey() string {
	return c.secretKey
}

func (c *Credentials) APIKey(ctx context.Context) (string, error) {
	if value := strings.TrimSpace(c.getenv(c.envKey)); value != "" {
		return value, nil
	}

	if c.store == nil {
		return "", fmt.Errorf("resolve api key: %w", domain.ErrSecretNotFound)
	}

	value, err := c.store.Get(ctx, c.secretKey)
	if err != nil {
		return "", fmt.Errorf("resolve api key: %w", errors.Join(domain.ErrSecretNotFound, err))
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("resolve api key: %w", domain.ErrSecretNotFound)
	}

	return value, nil
}

func (c *Credentials) SetAPIKey(ctx context.Context, cmd SetAPIKeyCommand) error {
	value := strings.TrimSpace(cmd.Value)
	if value == "" {
		return errEmptyAPIKey
	}

	if err := c.store.Put(ctx, c.secretKey, value); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}

	return nil
}

func (c *Credentials) RemoveAPIKey(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.secretKey); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	return nil
}
