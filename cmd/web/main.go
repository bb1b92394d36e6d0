package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/de-tools/deal-atlas/pkg/server"
	"github.com/de-tools/deal-atlas/pkg/services/deal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profilesPath string
	debug        bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Deal Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profilesPath, "profiles-file", "p", "",
		"Path to the assumption profiles file (default is $HOME/.dealatlascfg)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	deals, err := deal.NewControllerFromFile(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create deal controller: %w", err)
	}

	profiles, err := deals.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	logger.Info().Msgf("Found %d assumption profiles:", len(profiles))
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`", profile)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Deals:  deals,
			Logger: logger,
		},
	})

	return api.Start()
}
