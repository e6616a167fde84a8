// Gray Logic Strings - Integration Localisation Service
//
// This is the main entry point for the Gray Logic Strings service.
// It loads the shipped string tables, validates them, compiles them into
// the SQLite catalog, and serves resolved display strings to the rest of
// the platform:
//   - REST API for wall panels and the web admin
//   - MQTT announcements of rendered deprecation notices
//
// The catalog is immutable at runtime: string tables change only through
// redeployment.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/gray-logic-strings/migrations"

	"github.com/nerrad567/gray-logic-strings/internal/api"
	"github.com/nerrad567/gray-logic-strings/internal/catalog"
	"github.com/nerrad567/gray-logic-strings/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-strings/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-strings/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-strings/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-strings/internal/issues"
	"github.com/nerrad567/gray-logic-strings/internal/strtab"
	"github.com/nerrad567/gray-logic-strings/resources"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	configFlag := flag.String("config", "", "path to configuration file")
	validateFlag := flag.Bool("validate", false, "validate shipped resource documents and exit")
	flag.Parse()

	// Lint mode for CI: parse and validate every shipped document, no services.
	if *validateFlag {
		if err := runValidate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - configFlag: Config path from the -config flag, empty to fall back
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, configFlag string) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Gray Logic Strings",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath(configFlag)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Parse and validate the shipped string tables
	set, err := resources.Load()
	if err != nil {
		return fmt.Errorf("loading string resources: %w", err)
	}
	log.Info("string resources validated", "tables", len(set.Tables))

	// Build the resolver from the shipped tables
	resolver, err := strtab.NewResolver(set.Common, cfg.Service.DefaultLocale)
	if err != nil {
		return fmt.Errorf("building resolver: %w", err)
	}
	for _, lt := range set.Tables {
		if addErr := resolver.AddTable(lt.Integration, lt.Locale, lt.Table); addErr != nil {
			return fmt.Errorf("registering table %s/%s: %w", lt.Integration, lt.Locale, addErr)
		}
	}

	// Compile the catalog
	registry := catalog.NewRegistry(catalog.NewSQLiteRepository(db.DB))
	registry.SetLogger(log)
	for _, lt := range set.Tables {
		if compileErr := registry.Compile(ctx, lt.Integration, lt.Locale, lt.Table); compileErr != nil {
			return fmt.Errorf("compiling table %s/%s: %w", lt.Integration, lt.Locale, compileErr)
		}
	}
	infos, err := registry.List(ctx)
	if err != nil {
		return fmt.Errorf("listing catalog: %w", err)
	}
	log.Info("string catalog compiled", "tables", len(infos))

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		// Publish the compiled catalog summary for other services
		if pubErr := publishCatalogSummary(mqttClient, infos); pubErr != nil {
			log.Warn("failed to publish catalog summary", "error", pubErr)
		}

		// Announce shipped deprecation notices
		if cfg.Resources.AnnounceIssues {
			announceShippedNotices(ctx, resolver, mqttClient, cfg.Resources.AnnounceLocale, log)
		}
	} else {
		log.Info("MQTT disabled")
	}

	// Start API server
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		Logger:   log,
		Registry: registry,
		Resolver: resolver,
		MQTT:     mqttClient,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. MQTT (if enabled)
	// 3. Database

	log.Info("Gray Logic Strings stopped")
	return nil
}

// runValidate parses and validates the shipped resource documents.
// Exits non-zero via main if any document fails, for use as a CI lint step.
func runValidate() error {
	set, err := resources.Load()
	if err != nil {
		return err
	}

	// Loading validates structure; also verify every reference resolves.
	resolver, err := strtab.NewResolver(set.Common, resources.DefaultLocale)
	if err != nil {
		return err
	}
	for _, lt := range set.Tables {
		if err := resolver.AddTable(lt.Integration, lt.Locale, lt.Table); err != nil {
			return fmt.Errorf("%s/%s: %w", lt.Integration, lt.Locale, err)
		}
		for _, entry := range lt.Table.Entries() {
			if entry.Kind != strtab.KindReference {
				continue
			}
			// Placeholder failures are fine here - the lint step checks
			// references resolve, not that placeholders have values.
			if _, err := resolver.Resolve(lt.Integration, lt.Locale, entry.Key, nil); err != nil &&
				!errors.Is(err, strtab.ErrMissingPlaceholder) {
				return fmt.Errorf("%s/%s: %s: %w", lt.Integration, lt.Locale, entry.Key, err)
			}
		}
	}

	fmt.Printf("ok: %d tables validated\n", len(set.Tables))
	return nil
}

// getConfigPath returns the configuration file path.
// Precedence: -config flag, GLSTRINGS_CONFIG environment variable, default.
func getConfigPath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}
	if path := os.Getenv("GLSTRINGS_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// publishCatalogSummary publishes the compiled table list as retained JSON.
func publishCatalogSummary(client *mqtt.Client, infos []catalog.TableInfo) error {
	payload, err := json.Marshal(map[string]any{
		"tables": infos,
		"count":  len(infos),
	})
	if err != nil {
		return fmt.Errorf("encoding catalog summary: %w", err)
	}
	return client.PublishRetained(mqtt.Topics{}.CatalogCompiled(), payload)
}

// announceShippedNotices renders and publishes the deprecation notices
// declared in the shipped tables.
//
// Issues whose entries require placeholder values are skipped: their values
// come from the raising side at runtime, not from this service's startup.
func announceShippedNotices(ctx context.Context, resolver *strtab.Resolver, client *mqtt.Client, locale string, log *logging.Logger) {
	renderer := issues.NewRenderer(resolver)
	announcer := issues.NewAnnouncer(client)
	announcer.SetLogger(log)

	for _, integration := range resolver.Integrations() {
		table, _, err := resolver.Table(integration, locale)
		if err != nil {
			log.Warn("skipping integration for notices", "integration", integration, "error", err)
			continue
		}

		for _, id := range issues.IssueIDs(table) {
			placeholders, err := strtab.IssuePlaceholders(table, id)
			if err != nil {
				log.Warn("skipping issue", "integration", integration, "issue_id", id, "error", err)
				continue
			}
			if len(placeholders) > 0 {
				log.Info("issue requires runtime placeholders, not announced at startup",
					"integration", integration,
					"issue_id", id,
					"placeholders", placeholders,
				)
				continue
			}

			rendered, err := renderer.Render(issues.Notice{
				IssueID:     id,
				IssueDomain: integration,
				Severity:    issues.SeverityWarning,
			}, locale)
			if err != nil {
				log.Warn("failed to render notice", "integration", integration, "issue_id", id, "error", err)
				continue
			}
			if err := announcer.Announce(ctx, rendered); err != nil {
				log.Warn("failed to announce notice", "integration", integration, "issue_id", id, "error", err)
			}
		}
	}
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client) error {
	// Check database
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	// Check MQTT (if enabled)
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	return nil
}
