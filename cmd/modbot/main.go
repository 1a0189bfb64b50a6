package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subwatch/modbot/reddit"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "modbot",
		Usage:   "subreddit moderation daemon",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "reddit-host",
			Usage:   "base URL of the reddit API",
			Value:   "http://www.reddit.com",
			EnvVars: []string{"MODBOT_REDDIT_HOST"},
		},
		&cli.StringFlag{
			Name:     "username",
			Usage:    "moderator account to act as",
			Required: true,
			EnvVars:  []string{"MODBOT_USERNAME"},
		},
		&cli.StringFlag{
			Name:     "password",
			Required: true,
			EnvVars:  []string{"MODBOT_PASSWORD"},
		},
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the moderation loop",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "subreddit",
			Usage:   "community to moderate",
			Value:   "minecraft",
			EnvVars: []string{"MODBOT_SUBREDDIT"},
		},
		&cli.StringSliceFlag{
			Name:    "trusted-author",
			Usage:   "authors exempt from all rules (repeatable)",
			EnvVars: []string{"MODBOT_TRUSTED_AUTHORS"},
		},
		&cli.StringFlag{
			Name:    "server-blocklist-url",
			Usage:   "wiki page listing advertised server domains",
			EnvVars: []string{"MODBOT_SERVER_BLOCKLIST_URL"},
		},
		&cli.StringFlag{
			Name:    "imgur-client-id",
			Usage:   "imgur API client id, for scanning image metadata",
			EnvVars: []string{"MODBOT_IMGUR_CLIENT_ID"},
		},
		&cli.StringSliceFlag{
			Name:    "banned-subreddit",
			Usage:   "override the stock banned-community list (repeatable)",
			EnvVars: []string{"MODBOT_BANNED_SUBREDDITS"},
		},
		&cli.StringFlag{
			Name:    "sqlite-path",
			Usage:   "path of the sqlite file holding bot state",
			Value:   "data/modbot/state.sqlite",
			EnvVars: []string{"MODBOT_SQLITE_PATH"},
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis instance for the lookup cache; in-process cache when empty",
			EnvVars: []string{"MODBOT_REDIS_URL"},
		},
		&cli.DurationFlag{
			Name:    "poll-interval",
			Usage:   "delay between sweeps of the listings",
			Value:   3 * time.Minute,
			EnvVars: []string{"MODBOT_POLL_INTERVAL"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":3989",
			EnvVars: []string{"MODBOT_METRICS_LISTEN"},
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, err := reddit.NewClient(
			cctx.String("reddit-host"),
			cctx.String("username"),
			cctx.String("password"),
			logger,
		)
		if err != nil {
			return err
		}

		srv, err := NewServer(client, Config{
			Logger:           logger,
			Subreddit:        cctx.String("subreddit"),
			TrustedAuthors:   cctx.StringSlice("trusted-author"),
			BlocklistURL:     cctx.String("server-blocklist-url"),
			ImgurClientID:    cctx.String("imgur-client-id"),
			BannedSubreddits: cctx.StringSlice("banned-subreddit"),
			SQLitePath:       cctx.String("sqlite-path"),
			RedisURL:         cctx.String("redis-url"),
			PollInterval:     cctx.Duration("poll-interval"),
		})
		if err != nil {
			return err
		}

		go func() {
			if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
				slog.Error("failed to start metrics endpoint", "error", err)
				panic(fmt.Errorf("failed to start metrics endpoint: %w", err))
			}
		}()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("failed to run moderation loop: %w", err)
		}
		return nil
	},
}
