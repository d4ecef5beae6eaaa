package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pet-adoption-shelter/internal/app"
	"pet-adoption-shelter/internal/platform/logger"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LoggerOptions())

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := &http.Server{
				Addr:         cfg.HTTP.Addr,
				Handler:      a.Handler,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					log.Error("shutdown", map[string]any{"err": err.Error()})
				}
			}()

			log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "swagger": "/swagger/index.html"})
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			log.Info("server stopped", nil)
			return nil
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
