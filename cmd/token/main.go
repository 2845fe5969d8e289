// Command token issues and revokes service tokens for the sync API.
//
//	token issue --client ci --scopes sync:read,sync:write --ttl 720h
//	token revoke <token>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
)

func main() {
	opts, args, err := parseArgs(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if !cfg.Auth.Enabled() {
		log.Fatal("auth.secret is not configured")
	}
	tokens := auth.NewTokenService(cfg.Auth)

	switch args[0] {
	case "issue":
		issued, err := tokens.IssueToken(auth.IssueTokenInput{
			Client: opts.client,
			Scopes: opts.scopes,
			TTL:    opts.ttl,
		})
		if err != nil {
			log.Fatal("Failed to issue token", zap.Error(err))
		}
		log.Info("Token issued",
			zap.String("client", opts.client),
			zap.String("jti", issued.ID),
			zap.Time("expires_at", issued.ExpiresAt),
		)
		fmt.Println(issued.Token)
	case "revoke":
		if len(args) < 2 {
			log.Fatal("Token required. Usage: token revoke <token>")
		}
		if err := revoke(tokens, cfg, args[1], log); err != nil {
			log.Fatal("Failed to revoke token", zap.Error(err))
		}
	default:
		log.Error("Unknown command", zap.String("command", args[0]))
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

type options struct {
	configPath string
	client     string
	scopes     []string
	ttl        time.Duration
}

// parseArgs returns the options and the positional arguments. A missing
// command is an error.
func parseArgs(argv []string) (options, []string, error) {
	var o options
	flags := pflag.NewFlagSet("token", pflag.ContinueOnError)
	flags.StringVarP(&o.configPath, "config", "c", "", "config file (default: search ., /etc/catsync, /app)")
	flags.StringVar(&o.client, "client", "", "client name recorded in the token (issue)")
	flags.StringSliceVar(&o.scopes, "scopes", []string{auth.ScopeSyncRead}, "granted scopes (issue)")
	flags.DurationVar(&o.ttl, "ttl", 0, "token lifetime (issue, default: auth.token_ttl)")
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(argv); err != nil {
		return o, nil, err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return o, nil, errors.New("command required")
	}
	return o, flags.Args(), nil
}

// revoke records the token's ID in Redis until the token would expire.
// Revocation needs Redis because the in-memory list lives in the server.
func revoke(tokens *auth.TokenService, cfg *config.Config, token string, log *zap.Logger) error {
	claims, err := tokens.ValidateToken(token)
	if err != nil {
		return err
	}
	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis is not configured")
	}
	list, err := auth.NewRedisRevocationList(cfg.Redis, cfg.Auth.RevocationPrefix)
	if err != nil {
		return err
	}
	defer list.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := list.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}
	log.Info("Token revoked",
		zap.String("client", claims.Client),
		zap.String("jti", claims.ID),
		zap.Duration("remaining_ttl", claims.GetRemainingTTL()),
	)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

const usage = `Usage: token [flags] <command>

Commands:
  issue           print a new service token (--client required)
  revoke <token>  revoke a token until it expires (needs Redis)

Flags:
`
