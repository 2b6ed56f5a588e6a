package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackdash/src/binding"
	"trackdash/src/config"
	"trackdash/src/dataset"
	"trackdash/src/debug"
	"trackdash/src/view"
	"trackdash/src/web"
)

func setup() config.Config { // reads flags and config, inits logging
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(flags.CfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	cfg.MergeFlags(flags)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	debug.Init(cfg.LogLevel)
	return cfg
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func main() {
	cfg := setup()

	ds, err := dataset.Load(cfg.DataCfg.Path, dataset.Schema{
		CategoryColumn: cfg.DataCfg.CategoryColumn,
		NumericColumns: cfg.DataCfg.NumericColumns,
	})
	if err != nil {
		log.Fatal(err) // never serve without data
	}
	categories := dataset.Categories(ds)
	slog.Info("dataset loaded", "path", cfg.DataCfg.Path, "tracks", ds.Len(), "genres", len(categories))

	previewer := view.NewPreviewer(ds, newRand(cfg.ViewCfg.RandomSeed), cfg.ViewCfg.PreviewRows, cfg.ViewCfg.PreviewColumns)
	dispatcher := binding.NewDispatcher(binding.Rules(ds, previewer))

	srv, err := web.NewServer(&cfg, ds, categories, dispatcher)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
