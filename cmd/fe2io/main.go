package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/fe2io-go/internal/audio"
	"github.com/MKhiriev/fe2io-go/internal/config"
	"github.com/MKhiriev/fe2io-go/internal/conn"
	"github.com/MKhiriev/fe2io-go/internal/dispatch"
	"github.com/MKhiriev/fe2io-go/internal/logger"
	"github.com/MKhiriev/fe2io-go/internal/runner"
	"github.com/MKhiriev/fe2io-go/internal/transport"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.New("fe2io")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	engine := audio.New(log)
	source := conn.New(cfg, &transport.WebsocketDialer{}, log)
	dispatcher := dispatch.New(engine, cfg.Volume, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = runner.New(source, dispatcher, engine, log).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
