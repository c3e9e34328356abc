package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/peerlink/matchmaker/internal/config"
	"github.com/peerlink/matchmaker/internal/logger"
	"github.com/peerlink/matchmaker/matchservice"
)

func main() {
	// Optional build-target flag override (local | cloud-dev | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud-dev, cloud)")
	flag.Parse()

	if *buildTarget == "" {
		if err := matchservice.Run(); err != nil {
			log.Error().Err(err).Msg("match-service exited with error")
			os.Exit(1)
		}
		return
	}

	l := logger.New("match-service")
	cfg, err := config.New()
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.BuildTarget = *buildTarget
	cfg.DBDriver = "auto"
	if err := cfg.ResolveDefaults(); err != nil {
		l.Fatal().Err(err).Msg("Invalid build-target override")
	}
	if err := matchservice.RunWithConfig(cfg, l); err != nil {
		l.Error().Err(err).Msg("match-service exited with error")
		os.Exit(1)
	}
}
