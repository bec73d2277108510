package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weldyapp/weldy/internal/api"
	"github.com/weldyapp/weldy/internal/server"
	"github.com/weldyapp/weldy/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the weldy HTTP server with the knowledge base, recommendation and session APIs plus a WebSocket endpoint for live sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := validConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			c.Server.Port = servePort
		}

		a, err := buildApp(c)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		index, err := buildIndex(ctx, c, a.kb)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     c.Server.Port,
			AllowAll: c.Server.AllowAllOrigins,
		}, logger)
		api.New(a.engine, session.NewMemoryStore(), index, logger).RegisterRoutes(srv.Router())

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "weldy server v%s starting on port %d\n", Version, c.Server.Port)
		fmt.Fprintf(os.Stderr, "  Mode: %s\n", c.Mode)
		fmt.Fprintf(os.Stderr, "  Causes: %d\n", len(a.kb.Causes))

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
