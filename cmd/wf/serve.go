package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/npatel/wayfinder/internal/config"
	"github.com/npatel/wayfinder/internal/db"
	"github.com/npatel/wayfinder/internal/geo"
	"github.com/npatel/wayfinder/internal/insights"
	"github.com/npatel/wayfinder/internal/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Wayfinder API server",
		Long:  "Runs the REST API: signup, login, distance calculation, route history, and the history-insights assistant. Requires server.jwt_secret in the config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Wayfinder config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is required to serve")
	}
	initLogging(cfg.Log)

	gormDB, err := db.Connect(cfg.Database.Path)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	var geocoder geo.Geocoder
	if cfg.Server.Debug {
		logrus.Warn("debug mode: geocoding is mocked")
		geocoder = geo.DebugMock()
	} else {
		geocoder = geo.NewNominatim(geo.NominatimOpts{
			BaseURL:  cfg.Nominatim.BaseURL,
			Timeout:  cfg.Nominatim.Timeout,
			CacheTTL: cfg.Nominatim.CacheTTL,
		})
	}

	completer := insights.NewOpenAICompleter(insights.OpenAIOpts{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	assistant := insights.NewAssistant(gormDB, completer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return server.Start(ctx, server.Opts{
		DB:               gormDB,
		Geocoder:         geocoder,
		Assistant:        assistant,
		JWTSecret:        cfg.Server.JWTSecret,
		TokenTTL:         cfg.Server.TokenTTL,
		Port:             cfg.Server.Port,
		CORSAllowOrigins: cfg.Server.CORSAllowOrigins,
		Out:              cmd.OutOrStdout(),
	})
}

// initLogging applies the log section: level and text/json format.
func initLogging(cfg config.LogConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		logrus.SetLevel(lvl)
	}
}
