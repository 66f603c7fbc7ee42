package commands

import (
	"fmt"
	"os"

	"github.com/mikepea/yatube/pkg/yatube/config"
	"github.com/mikepea/yatube/pkg/yatube/database"
	"github.com/mikepea/yatube/pkg/yatube/logging"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbDriver string
	dbDSN    string
	logLevel string
	debug    bool
)

// rootCmd represents the base command. Without a subcommand it serves HTTP.
var rootCmd = &cobra.Command{
	Use:   "yatube-server",
	Short: "Yatube - a blogging platform with groups, comments and subscriptions",
	Long: `Yatube is a blogging platform: users publish posts, file them under groups,
comment, and follow other authors.

Settings come from YATUBE_* environment variables; flags override them.

Examples:
  yatube-server                                   # Serve on :8080 with ./yatube.db
  yatube-server serve --port 9000
  yatube-server migrate --db-driver postgres --db postgres://localhost/yatube
  yatube-server group create --title "Cats" --slug cats
  yatube-server user create --username leo --email leo@example.com --password secret123`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite or postgres (default $YATUBE_DB_DRIVER or sqlite)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "SQLite path or PostgreSQL URL (default $YATUBE_DB_PATH or $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Development logging and gin debug mode")
}

// loadConfig reads the environment and applies the global flags
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbDSN != "" {
		if cfg.DBDriver == database.DriverPostgres {
			cfg.DatabaseURL = dbDSN
		} else {
			cfg.DBPath = dbDSN
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	return cfg
}

// setup builds the logger and opens the migrated database
func setup(cfg config.Config) (*zap.Logger, *gorm.DB, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.DSN() == "" {
		return nil, nil, fmt.Errorf("no database configured for driver %q", cfg.DBDriver)
	}
	if err := database.Connect(cfg.DBDriver, cfg.DSN()); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := database.GetDB()
	if err := models.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("database ready", zap.String("driver", cfg.DBDriver))

	return logger, db, nil
}
