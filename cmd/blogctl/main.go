package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/blog-frontend/app"
	"github.com/rpupo63/blog-frontend/client"
	"github.com/rpupo63/blog-frontend/config"
	"github.com/rpupo63/blog-frontend/database"
	"github.com/rpupo63/blog-frontend/endpoints"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/nav"
	"github.com/rpupo63/blog-frontend/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	c := config.Load(".env")
	setupLogging(config.GetString(c, "LOG_LEVEL", "warn"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "blogctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown LOG_LEVEL, using warn")
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func run(ctx context.Context, c map[string]string, args []string) error {
	origin := config.GetString(c, "BLOG_ORIGIN", "http://localhost:8080")

	backend, closeBackend, err := openBackend(ctx, c, origin)
	if err != nil {
		return err
	}
	defer closeBackend()
	sessions := session.New(backend)

	opts := []client.Option{
		client.WithBasePath(config.GetString(c, "BLOG_API_BASE", client.DefaultBasePath)),
		client.WithTimeout(config.GetMillis(c, "BLOG_TIMEOUT_MS", client.DefaultTimeout)),
		client.WithUserAgent("blogctl"),
	}
	if config.GetBool(c, "LOGOUT_ON_UNAUTHORIZED", false) {
		opts = append(opts, client.WithUnauthorizedHook(func(ctx context.Context) {
			if err := sessions.ClearSession(ctx); err != nil {
				log.Warn().Err(err).Msg("could not clear rejected session")
				return
			}
			log.Info().Msg("session rejected by the API, signed out")
		}))
	}
	cli, err := client.New(origin, sessions, opts...)
	if err != nil {
		return err
	}

	table := nav.DefaultTable()
	if path := config.GetString(c, "ROUTES_FILE", ""); path != "" {
		if table, err = nav.LoadTableFile(path); err != nil {
			return err
		}
	}
	var guardOpts []nav.Option
	if config.GetBool(c, "PRESERVE_REDIRECT", false) {
		guardOpts = append(guardOpts, nav.WithRedirectParam("redirect"))
	}
	guard, err := nav.NewGuard(table, sessions, guardOpts...)
	if err != nil {
		return err
	}

	log.Debug().
		Str("api", cli.BaseURL()).
		Dur("timeout", cli.Timeout()).
		Msg("client ready")

	a := app.New(endpoints.New(cli, sessions), sessions, guard, os.Stdin, os.Stdout, log.Logger)
	return a.Run(ctx, args)
}

// openBackend builds the session backend named by SESSION_BACKEND and returns
// a function releasing its resources
func openBackend(ctx context.Context, c map[string]string, origin string) (session.Backend, func(), error) {
	noop := func() {}
	scope := session.ScopeKey(origin)

	switch kind := config.GetString(c, "SESSION_BACKEND", "file"); kind {
	case "memory":
		return session.NewMemoryBackend(), noop, nil

	case "file":
		path := config.GetString(c, "SESSION_FILE", "")
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("locate session file: %w", err)
			}
			path = filepath.Join(home, ".blogctl", "session.json")
		}
		return session.NewFileBackend(path, scope), noop, nil

	case "sql":
		db, err := database.Open(
			config.GetString(c, "SESSION_SQL_DRIVER", "sqlite"),
			config.GetString(c, "SESSION_SQL_DSN", ""),
		)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("closing session database")
			}
		}
		return session.NewSQLBackend(db.SessionRepo(), scope), closeDB, nil

	case "redis":
		cli := redis.NewClient(&redis.Options{
			Addr: config.GetString(c, "REDIS_ADDR", "localhost:6379"),
			DB:   config.GetInt(c, "REDIS_DB", 0),
		})
		if err := cli.Ping(ctx).Err(); err != nil {
			_ = cli.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		closeRedis := func() {
			if err := cli.Close(); err != nil {
				log.Warn().Err(err).Msg("closing redis client")
			}
		}
		return session.NewRedisBackend(cli, scope), closeRedis, nil

	default:
		return nil, nil, errs.NewInvalidFieldError("SESSION_BACKEND", fmt.Sprintf("unknown backend %q", kind))
	}
}
