package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gurbos/gcd/cmsapi"
	"github.com/gurbos/gcd/config"
	ds "github.com/gurbos/gcd/datastore"
	"github.com/gurbos/gcd/gogapi"
	"github.com/gurbos/gcd/importer"
	"github.com/gurbos/gcd/logger"
	"github.com/joho/godotenv"
)

func main() {

	cmdFlags := initCmdFlags()

	// Load environment variables from .env file when there is one
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := applyFlags(cfg, cmdFlags); err != nil {
		log.Fatal(err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "gcd",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storefront := gogapi.NewClient(gogapi.Options{
		BaseURL:     cfg.Storefront.BaseURL,
		ImageSuffix: cfg.Storefront.ImageSuffix,
		Timeout:     cfg.Storefront.Timeout,
	})
	cms := cmsapi.NewClient(cmsapi.Options{
		BaseURL: cfg.CMS.BaseURL(),
		Token:   cfg.CMS.Token,
		Timeout: cfg.CMS.Timeout,
	})

	services := apiServices(cms)
	if cfg.CMS.Backend == config.BackendPostgres {
		poolConfig, err := ds.Config(cfg.DB.ConnectString())
		if err != nil {
			log.Fatal(err)
		}
		pool, err := ds.NewDBPool(ctx, poolConfig)
		if err != nil {
			log.Fatalf("Error creating DB connection pool: %v", err)
		}
		defer pool.Close()

		if cmdFlags.migrate {
			if err := ds.Migrate(ctx, pool); err != nil {
				logg.Error(ctx, "migration failed", err)
				os.Exit(1)
			}
			logg.Info(ctx, "migrations applied")
		}
		services = postgresServices(ds.NewPostgresDataStore(pool))
	}

	imp := importer.New(storefront, services, cms, logg, importer.Options{
		GalleryLimit: cfg.Import.GalleryLimit,
		Concurrency:  cfg.Import.Concurrency,
		Pages:        cfg.Import.Pages,
		Throttle:     importer.NewThrottle(cfg.Import.ThrottleInterval, cfg.Import.ThrottleShared),
	})

	ctx = logg.WithFields(ctx, map[string]any{"backend": cfg.CMS.Backend, "pages": cfg.Import.Pages})
	logg.Info(ctx, "import started")
	report, err := imp.Populate(ctx, cmdFlags.params)
	printSummary(os.Stdout, report)
	if err != nil {
		logg.Error(ctx, "import aborted", err)
		os.Exit(1)
	}
	if report.Err() != nil {
		os.Exit(2)
	}
}
