package main

import (
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cybermonitor-rd/sentinel/adapters/detector"
	"github.com/cybermonitor-rd/sentinel/adapters/events"
	"github.com/cybermonitor-rd/sentinel/adapters/incidents"
	"github.com/cybermonitor-rd/sentinel/adapters/stats"
	"github.com/cybermonitor-rd/sentinel/adapters/store"
	"github.com/cybermonitor-rd/sentinel/adapters/tokenizer"
	"github.com/cybermonitor-rd/sentinel/ports"
	"github.com/cybermonitor-rd/sentinel/realtime"
	"github.com/cybermonitor-rd/sentinel/service"
	transport "github.com/cybermonitor-rd/sentinel/transport/http"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	signKey := os.Getenv("JWT_SECRET_KEY")
	if signKey == "" {
		logger.Warn().Msg("JWT_SECRET_KEY not set, using an insecure development key")
		signKey = "fallback_secret_key_change_in_production"
	}

	// Redis backs both the challenge store and the alert stream when
	// configured; without it the service runs single-node on memory.
	var challengeStore ports.ChallengeStore
	var eventPub ports.EventPublisher

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse Redis URL")
		}
		redisClient := redis.NewClient(opts)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create Redis publisher")
		}

		challengeStore = store.NewRedisStore(redisClient)
		eventPub = events.NewWatermillPublisher(publisher)
	} else {
		challengeStore = store.NewMemoryStore()
		eventPub = events.NewNopPublisher()
	}

	var authOpts []service.AuthOption
	if os.Getenv("MFA_ECHO_CODE") == "true" {
		authOpts = append(authOpts, service.WithEchoCode())
	}

	jwtTokenizer := tokenizer.NewJWTTokenizer([]byte(signKey))
	authService := service.NewAuthService(jwtTokenizer, challengeStore, logger, authOpts...)

	registry := realtime.NewRegistry(logger)
	defer registry.Close()

	monitorService := service.NewMonitorService(
		incidents.NewMemoryStore(),
		detector.NewRandomDetector(),
		stats.NewRandomProvider(),
		eventPub,
		registry,
		logger,
	)

	router := transport.SetupRouter(authService, monitorService, registry, logger)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	logger.Info().Str("addr", addr).Msg("starting sentinel")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
