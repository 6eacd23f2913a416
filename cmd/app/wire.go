//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/listing-insights/internal/bootstrap"
	"github.com/yanqian/listing-insights/internal/domain/listing"
	"github.com/yanqian/listing-insights/internal/infra/config"
	"github.com/yanqian/listing-insights/internal/infra/predictor"
	httpiface "github.com/yanqian/listing-insights/internal/interface/http"
	"github.com/yanqian/listing-insights/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideListingConfig,
		providePredictorClient,
		provideEnumStore,
		listing.NewService,
		wire.Bind(new(listing.PredictionClient), new(*predictor.Client)),
		wire.Bind(new(listing.EnumClient), new(*predictor.Client)),
		httpiface.NewFormTokens,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
