package main

import (
	"log"

	"github.com/aussiebroadwan/taskhub/internal/todo/app"
	"github.com/spf13/pflag"
)

func main() {
	cfg := app.LoadConfig()

	// Flags override the environment.
	host := pflag.String("host", cfg.Host, "listen host")
	port := pflag.Int("port", cfg.Port, "listen port")
	driver := pflag.String("driver", cfg.StoreDriver, "snapshot driver (file, sqlite)")
	snapshotFile := pflag.String("snapshot-file", cfg.SnapshotFile, "path to the JSON snapshot (file driver)")
	databaseFile := pflag.String("database-file", cfg.DatabaseFile, "path to the SQLite database (sqlite driver)")
	pflag.Parse()

	cfg.Host = *host
	cfg.Port = *port
	cfg.StoreDriver = *driver
	cfg.SnapshotFile = *snapshotFile
	cfg.DatabaseFile = *databaseFile

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
