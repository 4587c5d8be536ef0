package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	dynamodbsdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/paypal-settlement-engine/pkg/config"
	"github.com/chris/paypal-settlement-engine/pkg/connector"
	"github.com/chris/paypal-settlement-engine/pkg/engine"
	"github.com/chris/paypal-settlement-engine/pkg/handlers"
	"github.com/chris/paypal-settlement-engine/pkg/metrics"
	appmiddleware "github.com/chris/paypal-settlement-engine/pkg/middleware"
	"github.com/chris/paypal-settlement-engine/pkg/paypal"
	"github.com/chris/paypal-settlement-engine/pkg/protocol"
	"github.com/chris/paypal-settlement-engine/pkg/storage/dynamodb"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	// AWS session and the shared key-value store.
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("unable to load AWS SDK config", slog.Any("error", err))
		os.Exit(1)
	}
	store := dynamodb.New(dynamodbsdk.NewFromConfig(awsCfg), cfg.TableName, cfg.Prefix)

	// PayPal client; authenticates on construction.
	payouts, err := paypal.New(ctx, cfg.ClientID, cfg.Secret, cfg.Mode, cfg.PpEmail)
	if err != nil {
		logger.Error("failed to initialize PayPal", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("PayPal initialized", slog.String("mode", cfg.Mode))

	peer := connector.NewClient(cfg.ConnectorURL)

	eng := engine.New(peer, payouts, store, logger, engine.Config{
		PpEmail:        cfg.PpEmail,
		Currency:       cfg.Currency,
		AssetScale:     cfg.AssetScale,
		ProcessorScale: config.ProcessorScale,
		MinUnits:       cfg.MinUnits,
	})
	proto := protocol.NewHandler(store, cfg.PpEmail)

	metrics.Register(prometheus.DefaultRegisterer)

	router := chi.NewRouter()
	router.Use(appmiddleware.NewStructuredLogger(logger))
	handlers.New(store, proto, eng, logger).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	// Subscribe to payout completion events. A failure here is not fatal:
	// settlements can still be submitted, they just won't be confirmed until
	// the subscription is repaired.
	if err := payouts.EnsureWebhook(ctx, cfg.WebhookURL()); err != nil {
		logger.Error("failed to subscribe to payout webhooks", slog.String("url", cfg.WebhookURL()), slog.Any("error", err))
	} else {
		logger.Info("webhook subscription in place", slog.String("url", cfg.WebhookURL()))
	}

	logger.Info("starting settlement engine",
		slog.String("addr", cfg.ListenAddr()),
		slog.String("connector", cfg.ConnectorURL),
	)
	if err := http.ListenAndServe(cfg.ListenAddr(), router); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
