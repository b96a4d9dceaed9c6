package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	authadapter "github.com/bnema/emergent-chefs/internal/adapters/auth"
	chainstore "github.com/bnema/emergent-chefs/internal/adapters/secrets/chain"
	"github.com/bnema/emergent-chefs/internal/application"
	"github.com/bnema/emergent-chefs/internal/config"
	"github.com/bnema/emergent-chefs/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	configPath string
	logLevel   string

	cfg         *config.Config
	logger      *zap.Logger
	secretStore ports.SecretStore
	credentials *application.Credentials
	clock       ports.Clock
	keyLogin    keyLoginConfig
	httpClient  *http.Client
}

type keyLoginConfig struct {
	AuthURL    string
	KeysURL    string
	ListenAddr string
	Timeout    time.Duration
	// open is called with the authorization URL after it is printed.
	open func(string) error
}

func (a *app) wire(cmd *cobra.Command) error {
	cfg, err := config.Load(viper.New(), a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := newLogger(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	dir := config.Dir()
	if dir == "" {
		return errors.New("resolve home directory")
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(dir, "secrets"))
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.secretStore = secretStore
	a.credentials = application.NewCredentials(secretStore, cfg.Provider.APIKeyEnv, cfg.Provider.SecretKey)
	a.clock = ports.SystemClock{}
	a.httpClient = http.DefaultClient
	a.keyLogin = keyLoginConfig{
		AuthURL:    envOrDefault("CHEFS_AUTH_URL", authadapter.DefaultAuthURL),
		KeysURL:    envOrDefault("CHEFS_AUTH_KEYS_URL", authadapter.DefaultKeysURL),
		ListenAddr: envOrDefault("CHEFS_AUTH_LISTEN", "127.0.0.1:3000"),
		Timeout:    5 * time.Minute,
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// newLogger builds a production zap logger writing JSON lines to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapConfig.EncoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(parsed),
	)

	return zap.New(core), nil
}
