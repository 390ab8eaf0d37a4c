package cmd

import (
	"context"
	"fmt"

	"actividad-clase/api-service/config"
	"actividad-clase/api-service/events"
	"actividad-clase/api-service/handlers"
	"actividad-clase/api-service/logging"
	"actividad-clase/api-service/services"
	"actividad-clase/api-service/storage"

	"github.com/spf13/cobra"
)

type flags struct {
	envFile string
	port    string
	backend string
	dataDir string
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the CLI. Running it without a subcommand serves the API.
func NewRootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "actividad",
		Short:         "CRUD API for people, projects and tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), f)
		},
	}

	root.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&f.port, "port", "", "listen port (overrides SERVER_PORT)")
	root.PersistentFlags().StringVar(&f.backend, "backend", "", "storage backend: file, memory, sqlite or mongo (overrides STORAGE_BACKEND)")
	root.PersistentFlags().StringVar(&f.dataDir, "data-dir", "", "directory of the JSON files (overrides DATA_DIR)")

	root.AddCommand(newServeCommand(f), newSeedCommand(f))
	return root
}

func loadConfig(f *flags) (config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if f.port != "" {
		cfg.ServerPort = f.port
	}
	if f.backend != "" {
		cfg.SetBackend(f.backend)
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg       config.Config
	backend   *storage.Backend
	publisher events.Publisher
	services  handlers.Services
}

func newApp(ctx context.Context, f *flags) (*app, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, err
	}
	if err := logging.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, storage.Options{
		Kind:       cfg.StorageBackend,
		DataDir:    cfg.DataDir,
		SQLitePath: cfg.SQLitePath,
		MongoURI:   cfg.MongoURI,
		MongoDB:    cfg.MongoDBName,
		Breaker:    cfg.BreakerEnabled,
	})
	if err != nil {
		return nil, err
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logging.Logger.Infof("Event ID: EVENTS_ENABLED, Description: Publishing changes to topic %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}

	return &app{
		cfg:       cfg,
		backend:   backend,
		publisher: publisher,
		services: handlers.Services{
			People:   services.NewPersonService(backend, publisher),
			Projects: services.NewProjectService(backend, publisher),
			Tasks:    services.NewTaskService(backend, publisher),
		},
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.publisher.Close(); err != nil {
		logging.Logger.Errorf("Event ID: EVENTS_CLOSE_FAILED, Description: %v", err)
	}
	if err := a.backend.Close(ctx); err != nil {
		logging.Logger.Errorf("Event ID: STORAGE_CLOSE_FAILED, Description: %v", err)
	}
}
