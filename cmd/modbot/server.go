package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/subwatch/modbot/automod/cachestore"
	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/automod/rules"
	"github.com/subwatch/modbot/automod/seenstore"
	"github.com/subwatch/modbot/automod/userstore"
	"github.com/subwatch/modbot/media"
	"github.com/subwatch/modbot/reddit"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Server struct {
	logger       *slog.Logger
	client       *reddit.Client
	engine       *engine.Engine
	subreddit    string
	pollInterval time.Duration
}

type Config struct {
	Logger           *slog.Logger
	Subreddit        string
	TrustedAuthors   []string
	BlocklistURL     string
	ImgurClientID    string
	BannedSubreddits []string
	SQLitePath       string
	RedisURL         string
	PollInterval     time.Duration
}

func NewServer(client *reddit.Client, config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if err := os.MkdirAll(filepath.Dir(config.SQLitePath), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(config.SQLitePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	users, err := userstore.NewGormUserStore(db)
	if err != nil {
		return nil, fmt.Errorf("initializing user store: %w", err)
	}
	seen, err := seenstore.NewGormSeenStore(db)
	if err != nil {
		return nil, fmt.Errorf("initializing processed-item store: %w", err)
	}

	var cache cachestore.CacheStore
	if config.RedisURL != "" {
		csh, err := cachestore.NewRedisCacheStore(config.RedisURL, media.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis cachestore: %w", err)
		}
		cache = csh
	} else {
		cache = cachestore.NewMemCacheStore(5_000, media.CacheTTL)
	}

	imgur := media.NewImgur(config.ImgurClientID, cache, logger)
	youtube := media.NewYouTube(cache, logger)

	ruleset := rules.DefaultRules(rules.Deps{
		Wiki:             client,
		Imgur:            imgur,
		YouTube:          youtube,
		Profiles:         client,
		Videos:           youtube,
		Users:            users,
		BlocklistURL:     config.BlocklistURL,
		BannedSubreddits: config.BannedSubreddits,
	})

	trusted := make(map[string]bool, len(config.TrustedAuthors))
	for _, author := range config.TrustedAuthors {
		trusted[author] = true
	}

	eng := &engine.Engine{
		Logger:         logger,
		Rules:          ruleset,
		Client:         client,
		Seen:           seen,
		BotUser:        client.Username,
		TrustedAuthors: trusted,
	}

	return &Server{
		logger:       logger,
		client:       client,
		engine:       eng,
		subreddit:    config.Subreddit,
		pollInterval: config.PollInterval,
	}, nil
}

// Run sweeps the subreddit's listings on a fixed interval until the context
// is cancelled. One sweep evaluates new submissions, the moderation queue,
// and recent comments, in that order.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting moderation loop",
		"subreddit", s.subreddit, "interval", s.pollInterval)
	s.sweep(ctx)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Server) sweep(ctx context.Context) {
	listings := []struct {
		name  string
		fetch func(ctx context.Context, subreddit string) ([]reddit.Item, error)
	}{
		{"new", s.client.NewSubmissions},
		{"modqueue", s.client.ModQueue},
		{"comments", s.client.RecentComments},
	}
	for _, listing := range listings {
		items, err := listing.fetch(ctx, s.subreddit)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error("failed to fetch listing", "listing", listing.name, "err", err)
			continue
		}
		for i := range items {
			if ctx.Err() != nil {
				return
			}
			if err := s.engine.ProcessItem(ctx, &items[i]); err != nil {
				s.logger.Error("failed to process item",
					"listing", listing.name, "name", items[i].Name, "err", err)
			}
		}
	}
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}
