// inflation-import loads a year,rate CSV file into the SQLite store and
// publishes a reload event so running servers pick up the new table.
package main

import (
	"context"
	"flag"
	"os"

	"inflation/internal/amqp"
	"inflation/internal/cli"
	applog "inflation/internal/log"
	"inflation/internal/rates"
	"inflation/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(applog.ComponentImport)
	cfg := cli.LoadAndValidateConfig(logger)

	file := flag.String("file", cfg.CSVPath, "CSV file to import (year,rate with header)")
	flag.Parse()

	ctx := context.Background()

	// Reuse the CSV store so the importer applies exactly the same row
	// validation as the csv backend.
	source := rates.NewCSVStore(*file)
	if err := source.Load(ctx); err != nil {
		logger.Error("Failed to read CSV file", "file", *file, applog.FieldError, err)
		os.Exit(1)
	}
	table, err := source.Snapshot(ctx)
	if err != nil {
		logger.Error("Failed to snapshot CSV data", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store", "path", cfg.SQLiteDBPath, applog.FieldError, err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.ReplaceAll(ctx, table.All()); err != nil {
		logger.Error("Failed to import rates", applog.FieldError, err)
		os.Exit(1)
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Import succeeded but reload event not published",
				applog.FieldError, err)
		} else {
			defer client.Close()
			if err := client.PublishRatesReload(ctx, *file); err != nil {
				logger.Warn("Import succeeded but reload event not published",
					applog.FieldError, err)
			}
		}
	}

	logger.Info("Import complete",
		"file", *file,
		applog.FieldRecords, table.Len(),
		"db_path", cfg.SQLiteDBPath)
}
