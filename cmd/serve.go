package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/learnhub/internal/db"
	"github.com/ziadkadry99/learnhub/internal/server"
	"github.com/ziadkadry99/learnhub/internal/storage"
	"github.com/ziadkadry99/learnhub/internal/views"
	"github.com/ziadkadry99/learnhub/internal/web"
)

var (
	servePort int
	allowAll  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LearnHub web server",
	Long:  `Starts the HTTP server that renders the landing, auth and dashboard pages and pushes live pane updates over WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("allow-all-origins") {
			cfg.AllowAll = allowAll
		}

		secret, err := cookieSecret(cfg)
		if err != nil {
			return err
		}

		// Open database.
		dbPath := filepath.Join(cfg.DataDir, "learnhub.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAll,
		}, database)

		pages, err := web.New(storage.NewSQLStore(database), newClient(cfg), web.Options{
			Secret: secret,
			Views: views.Options{
				Skeletons:   cfg.SkeletonCount,
				Courses:     cfg.Limits.Courses,
				Assignments: cfg.Limits.Assignments,
			},
			SignupAutoLogin: cfg.Auth.SignupAutoLogin,
		})
		if err != nil {
			return fmt.Errorf("building pages: %w", err)
		}
		pages.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "learnhub v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		if verbose {
			fmt.Fprintf(os.Stderr, "  Auth: %s\n", cfg.Auth.BaseURL)
			fmt.Fprintf(os.Stderr, "  Catalog: %s\n", cfg.Upstreams.CatalogURL)
			fmt.Fprintf(os.Stderr, "  Todos: %s\n", cfg.Upstreams.TodosURL)
			fmt.Fprintf(os.Stderr, "  Profile: %s\n", cfg.Upstreams.ProfileURL)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&allowAll, "allow-all-origins", false, "Allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
