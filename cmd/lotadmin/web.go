package main

import (
	"fmt"
	"net/http"

	"lotadmin/internal/admin/client"
	"lotadmin/internal/admin/config"
	"lotadmin/internal/admin/web"
	"lotadmin/internal/util"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func webCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Run the browser admin UI",
		RunE:  runWeb,
	}
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	util.InitLogger(util.LogOptions{Level: logLevel(cfg.LogLevel), File: cfg.LogFile})

	registry := client.NewRegistryClient(cfg.APIBaseURL, cfg.APITimeout)
	server, err := web.NewServer(registry)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + listenPort(cfg.Port),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info().Str("version", version).Str("api", cfg.APIBaseURL).Msg("Admin UI starting")
	if err := serve(srv); err != nil {
		return err
	}
	log.Info().Msg("Server exited properly")
	return nil
}
