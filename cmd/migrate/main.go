package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lessonhub/internal/catalog"
	"lessonhub/internal/config"
	"lessonhub/internal/logger"
	"lessonhub/internal/repository"
	"lessonhub/internal/service"
	"lessonhub/internal/supabase"

	"github.com/joho/godotenv"
)

func main() {
	sinkName := flag.String("sink", "rest", "where to write the catalog: rest or postgres")
	file := flag.String("file", "catalog.json", "catalog JSON file")
	token := flag.String("token", "", "admin access token for the rest sink (default $LESSONHUB_ACCESS_TOKEN)")
	flag.Parse()

	// 1. Load configuration; .env must be loaded before the logger reads ENV and LOG_LEVEL
	envErr := godotenv.Load()
	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Read the catalog
	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Msgf("Failed to open catalog: %v", err)
	}
	trees, err := catalog.Load(f)
	f.Close()
	if err != nil {
		logger.Fatal().Msgf("Failed to load catalog: %v", err)
	}
	logger.Info().Int("courses", len(trees)).Str("file", *file).Msg("Catalog loaded")

	// 3. Build the sink
	var sink catalog.Sink
	switch *sinkName {
	case "rest":
		accessToken := *token
		if accessToken == "" {
			accessToken = os.Getenv("LESSONHUB_ACCESS_TOKEN")
		}
		if accessToken == "" {
			logger.Fatal().Msg("An admin access token is required: pass -token or set LESSONHUB_ACCESS_TOKEN")
		}

		if cfg.SupabaseAnonKey == "" && cfg.SupabaseAnonKeySecret != "" {
			secrets, err := service.NewSecretManagerService(ctx, cfg)
			if err != nil {
				logger.Fatal().Msgf("Failed to create Secret Manager client: %v", err)
			}
			err = service.ResolveAnonKey(ctx, cfg, secrets)
			secrets.Close()
			if err != nil {
				logger.Fatal().Msgf("Failed to resolve anon key: %v", err)
			}
		}
		baseURL, anonKey, err := cfg.SupabaseCredentials()
		if err != nil {
			logger.Fatal().Msgf("Supabase is not configured: %v", err)
		}
		client := supabase.New(baseURL, anonKey, supabase.WithLogger(logger))
		sink = catalog.NewRESTSink(service.NewContentService(client, logger), accessToken, logger)

	case "postgres":
		db, err := repository.Open(ctx, cfg.DBConnectionString, cfg.Environment, logger)
		if err != nil {
			logger.Fatal().Msgf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		sink = catalog.NewPostgresSink(repository.NewCatalogRepository(db, logger))

	default:
		logger.Fatal().Msgf("Unknown sink %q, expected rest or postgres", *sinkName)
	}

	// 4. Migrate
	counts := catalog.Run(ctx, trees, sink, logger)

	fmt.Printf("Migrated %d courses, %d modules, %d lessons (%d errors)\n",
		counts.Courses, counts.Modules, counts.Lessons, counts.Errors)
	if counts.Errors > 0 {
		stop()
		os.Exit(1)
	}
}
