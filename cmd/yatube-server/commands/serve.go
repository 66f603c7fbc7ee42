package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/admin"
	"github.com/mikepea/yatube/pkg/yatube/cache"
	"github.com/mikepea/yatube/pkg/yatube/media"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/mikepea/yatube/pkg/yatube/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var (
	// Serve flags
	port     string
	mediaDir string
)

// serveCmd runs the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Migrate the database, make sure an administrator exists and serve the site.

A default administrator "admin" with password "changeme" is created when the
database has none.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringVar(&port, "port", "", "Port to listen on (default $PORT or 8080)")
	rootCmd.PersistentFlags().StringVar(&mediaDir, "media-dir", "", "Directory for uploaded images (default $YATUBE_MEDIA_DIR or ./media)")
}

func runServe(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)
	if port != "" {
		cfg.Port = port
	}
	if mediaDir != "" {
		cfg.MediaDir = mediaDir
	}

	logger, db, err := setup(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := ensureAdminExists(cmd.Context(), db, logger); err != nil {
		return fmt.Errorf("failed to ensure admin user exists: %w", err)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.New(server.Deps{
		DB:     db,
		Logger: logger,
		Pages:  cache.New(cfg.IndexCacheTTL),
		Media:  media.NewFileStore(cfg.MediaDir),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("base_url", cfg.BaseURL),
			zap.Duration("index_cache_ttl", cfg.IndexCacheTTL))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ensureAdminExists creates a default admin user if no admin exists in the database
func ensureAdminExists(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	service := admin.NewService(db, logger)

	count, err := service.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	_, err = service.CreateUser(ctx, admin.NewUser{
		Username: "admin",
		Email:    "admin@yatube.local",
		Password: "changeme",
		Name:     "Admin",
		Role:     models.SystemRoleAdmin,
	})
	if err != nil {
		return err
	}

	logger.Warn("created default admin user; change its password", zap.String("username", "admin"))
	return nil
}
