package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Adaptare-Software/workshop-registration/config"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/Adaptare-Software/workshop-registration/store"
)

const displayTimeZone = "America/Sao_Paulo"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	loc, err := time.LoadLocation(displayTimeZone)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	open := func(ctx context.Context) (registration.Repository, func() error, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		db, err := store.Open(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}

	cmd := newRootCmd(open, logger, loc)
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
