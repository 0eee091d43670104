package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/tripcompare/internal/scoring"
	"github.com/spboyer/tripcompare/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		port           int
		maxItineraries int
		seedDir        string
		noBrowser      bool
		corsOrigins    []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the comparison HTTP API",
		Long: `Start an HTTP server that holds one comparison session in memory.

Endpoints:
  GET    /api/health
  GET    /api/itineraries               list uploads with selection state
  POST   /api/itineraries               upload one itinerary (JSON or YAML body)
  DELETE /api/itineraries               clear the session
  GET    /api/itineraries/{id}
  PUT    /api/itineraries/{id}
  DELETE /api/itineraries/{id}
  POST   /api/itineraries/{id}/select   toggle selection
  GET    /api/scores                    score the session (filter via query)
  POST   /api/score                     score a body without storing it
  GET    /                              HTML report of the session

The server binds to 127.0.0.1 only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			if !cmd.Flags().Changed("max-itineraries") {
				maxItineraries = cfg.Server.MaxItineraries
			}
			engine, err := scoring.NewEngineWithWeights(cfg.EffectiveWeights())
			if err != nil {
				return err
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				MaxItineraries: maxItineraries,
				SeedDir:        seedDir,
				Engine:         engine,
				AllowedOrigins: corsOrigins,
				NoBrowser:      noBrowser,
				Logger:         slog.Default(),
			})
			if err != nil {
				return err
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().IntVar(&maxItineraries, "max-itineraries", 0, "Itineraries a session accepts (default from config)")
	cmd.Flags().StringVar(&seedDir, "dir", "", "Load the itinerary files in this directory at startup")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the report in a browser")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Origin allowed to call the API from a browser (repeatable)")

	return cmd
}
