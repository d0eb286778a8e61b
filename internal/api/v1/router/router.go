package router

import (
	"context"
	"net/http"

	"lessonhub/internal/api/v1/handler"
	"lessonhub/internal/command"
	"lessonhub/internal/config"
	"lessonhub/internal/middleware"
	"lessonhub/internal/pubsub"
	"lessonhub/internal/service"
	"lessonhub/internal/supabase"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New builds every service from cfg and returns the bridge handler. The returned
// cleanup releases the Pub/Sub client, if any.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Msg("Router initialized")
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	cleanup := func() {}

	// 1. Resolve the anon key from Secret Manager when only its resource name is set
	if cfg.SupabaseAnonKey == "" && cfg.SupabaseAnonKeySecret != "" {
		secrets, err := service.NewSecretManagerService(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Secret Manager client")
		} else {
			if err := service.ResolveAnonKey(ctx, cfg, secrets); err != nil {
				logger.Error().Err(err).Msg("Failed to resolve Supabase anon key")
			}
			secrets.Close()
		}
	}

	// 2. Supabase client; a missing URL or key is reported per command
	svc := command.Services{
		Runner:    service.NewCodeRunner(cfg.PythonBin, cfg.NodeBin, logger),
		JWTSecret: cfg.JWTSecret,
	}
	url, anonKey, configErr := cfg.SupabaseCredentials()
	if configErr != nil {
		logger.Warn().Err(configErr).Msg("Supabase is not configured, remote commands will fail")
	} else {
		client := supabase.New(url, anonKey, supabase.WithLogger(logger))

		// 3. Avatar storage
		var store service.AvatarStore
		if cfg.StorageEnabled() {
			s, err := service.NewS3AvatarStore(ctx, cfg, logger)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to create avatar store")
			} else {
				store = s
			}
		}

		// 4. Progress events
		var publisher pubsub.Publisher = pubsub.NopPublisher{}
		if cfg.EventsEnabled() {
			p, err := pubsub.NewPublisher(ctx, cfg)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
			} else {
				publisher = p
				cleanup = func() {
					if err := p.Close(); err != nil {
						logger.Warn().Err(err).Msg("Failed to close Pub/Sub client")
					}
				}
			}
		}

		svc.Auth = service.NewAuthService(client, cfg.AuthRedirectURL, cfg.JWTSecret, logger)
		svc.Content = service.NewContentService(client, logger)
		svc.Search = service.NewSearchService(client, logger)
		svc.Progress = service.NewProgressService(client, publisher, cfg.PubSubProgressTopic, logger)
		svc.Profile = service.NewProfileService(client, store, logger)
		svc.Achievements = service.NewAchievementService(client)
	}

	// 5. Dispatcher
	dispatcher := command.NewDispatcher(svc, configErr, command.NewValidator(), logger)

	return Routes(cfg, dispatcher, logger), cleanup, nil
}

// Routes mounts the bridge endpoints for dispatcher.
func Routes(cfg *config.Config, dispatcher *command.Dispatcher, logger zerolog.Logger) http.Handler {
	commandHandler := handler.NewCommandHandler(dispatcher, logger)
	healthHandler := handler.NewHealthHandler(dispatcher.Configured)

	authMiddleware := middleware.BridgeTokenMiddleware(cfg.BridgeToken, logger)

	mux := http.NewServeMux()

	apiV1Mux := http.NewServeMux()
	commandHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.Handle("/healthz", healthHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Origins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.BridgeTokenHeader},
		Debug:          false,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux))
}
