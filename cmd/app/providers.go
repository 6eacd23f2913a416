package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/listing-insights/internal/domain/geo"
	"github.com/yanqian/listing-insights/internal/domain/listing"
	"github.com/yanqian/listing-insights/internal/infra/config"
	"github.com/yanqian/listing-insights/internal/infra/enumcache"
	"github.com/yanqian/listing-insights/internal/infra/predictor"
)

func provideListingConfig(cfg *config.Config) listing.Config {
	return listing.Config{
		DefaultAPIURL:   cfg.Predictor.DefaultAPIURL,
		AllowedAPIHosts: cfg.Predictor.AllowedHosts,
		EnumBaseURL:     cfg.Enums.BaseURL,
		EnumCacheTTL:    cfg.Enums.CacheTTL,
		EnumTimeout:     cfg.Enums.Timeout,
		Neighbourhoods:  geo.RioNeighbourhoods,
	}
}

func providePredictorClient(cfg *config.Config) *predictor.Client {
	return predictor.NewClient(cfg.Predictor.Timeout)
}

func provideEnumStore(cfg *config.Config, logger *slog.Logger) listing.EnumStore {
	if cfg.Enums.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return enumcache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return enumcache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("enum valkey cache enabled", "addr", cfg.Enums.Redis.Addr)
			return enumcache.NewValkeyStore(client, "enums")
		}
	}
	return enumcache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Enums.Redis.Addr, "://") {
		return valkey.ParseURL(cfg.Enums.Redis.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Enums.Redis.Addr}}, nil
}
