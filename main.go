package main

import (
	"context"
	"crypto/tls"
	"flag"
	"github.com/litetable/litetable-sql/internal/app"
	"github.com/litetable/litetable-sql/internal/cdc"
	"github.com/litetable/litetable-sql/internal/config"
	"github.com/litetable/litetable-sql/internal/engine"
	"github.com/litetable/litetable-sql/internal/operations"
	"github.com/litetable/litetable-sql/internal/row"
	"github.com/litetable/litetable-sql/internal/server"
	"github.com/litetable/litetable-sql/internal/storage"
	"github.com/litetable/litetable-sql/internal/value"
	"github.com/litetable/litetable-sql/internal/wal"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"os"
	"time"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	application, err := initialize(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	if err = application.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("application stopped with errors")
	}
}

func initialize(cfg *config.Config) (*app.App, error) {
	var deps []app.Dependency

	// the WAL is replayed by storage, so it is started first and closed last
	walManager, err := wal.New(&wal.Config{
		Path: cfg.DataDir,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, walManager)

	tableStorage, err := storage.New(&storage.Config{
		WAL:              walManager,
		DataDir:          cfg.DataDir,
		SnapshotInterval: time.Duration(cfg.SnapshotTimer) * time.Second,
		MaxSnapshotLimit: cfg.MaxSnapshotLimit,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, tableStorage)

	rowBuilder, err := row.New(&row.Config{
		Coercer: row.CoercerFunc(value.Coerce),
	})
	if err != nil {
		return nil, err
	}

	cdcServer, err := cdc.New(&cdc.Config{
		Address: cfg.CDCAddress,
		Port:    cfg.CDCPort,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, cdcServer)

	opsManager, err := operations.New(&operations.Config{
		Storage: tableStorage,
		Builder: rowBuilder,
		CDC:     cdcServer,
	})
	if err != nil {
		return nil, err
	}

	engineHandler, err := engine.New(&engine.Config{
		Operations:    opsManager,
		MaxBufferSize: cfg.MaxBufferSize,
	})
	if err != nil {
		return nil, err
	}

	var cert *tls.Certificate
	if cfg.EnableTLS {
		pair, loadErr := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if loadErr != nil {
			return nil, loadErr
		}
		cert = &pair
	}

	srv, err := server.New(&server.Config{
		Certificate:    cert,
		Address:        cfg.ServerAddress,
		Port:           cfg.ServerPort,
		Handler:        engineHandler,
		MaxConnections: cfg.MaxConnections,
		EnableTLS:      cfg.EnableTLS,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, srv)

	return app.CreateApp(&app.Config{
		ServiceName: "LiteTable SQL",
		StopTimeout: 30 * time.Second,
	}, deps...)
}
