package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"gitlab.bluewillows.net/root/wedosapi/internal/config"
	"gitlab.bluewillows.net/root/wedosapi/internal/credstore"
	"gitlab.bluewillows.net/root/wedosapi/internal/metrics"
	"gitlab.bluewillows.net/root/wedosapi/pkg/httputil"
	"gitlab.bluewillows.net/root/wedosapi/pkg/wapi"
)

// Environment variables consulted before the keychain and config file.
const (
	envUser   = "WEDOS_USER"
	envSecret = "WEDOS_SECRET"
)

// credStoreFactory returns the credential store used by the CLI.
// Tests swap it for a mock.
var credStoreFactory = credstore.DefaultStore

// resolveCredentials finds the WAPI login pair. Resolution order:
// environment variables, OS keychain, config file user + secret_file.
func resolveCredentials(cfg *config.Config) (credstore.Credentials, error) {
	if user, secret := os.Getenv(envUser), os.Getenv(envSecret); user != "" && secret != "" {
		return credstore.Credentials{User: user, Secret: secret}, nil
	}

	creds, err := credStoreFactory().Load()
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, credstore.ErrNotFound) {
		return credstore.Credentials{}, fmt.Errorf("reading keychain: %w", err)
	}

	if cfg.User != "" && cfg.SecretFile != "" {
		secret, err := config.ReadSecretFile(cfg.SecretFile)
		if err != nil {
			return credstore.Credentials{}, err
		}
		return credstore.Credentials{User: cfg.User, Secret: secret}, nil
	}

	return credstore.Credentials{}, errors.New(
		`no credentials found: set WEDOS_USER and WEDOS_SECRET, run "wedosctl auth login", or configure user and secret_file`)
}

// newClient builds a WAPI client from the resolved settings.
func newClient(s *Settings) (*wapi.Client, error) {
	creds, err := resolveCredentials(s.Config)
	if err != nil {
		return nil, err
	}

	httpClient := httputil.New(httputil.Config{
		Timeout:   s.Config.Timeout,
		UserAgent: "wedosctl/" + s.Version,
		Logger:    s.Logger,
	})

	opts := []wapi.ClientOption{
		wapi.WithHTTPClient(httpClient),
		wapi.WithLogger(s.Logger),
		wapi.WithRateLimiter(rate.NewLimiter(rate.Limit(s.Config.RateRPS), s.Config.RateBurst)),
		wapi.WithObserver(metrics.ObserveRequest),
	}
	if s.Config.Endpoint != "" {
		opts = append(opts, wapi.WithEndpoint(s.Config.Endpoint))
	}
	if s.Config.Test {
		opts = append(opts, wapi.WithTestMode(true))
	}

	return wapi.NewClient(creds.User, creds.Secret, opts...)
}
