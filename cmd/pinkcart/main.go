package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pinkcart/go-backend/internal/cart"
	"github.com/pinkcart/go-backend/internal/checkout"
	"github.com/pinkcart/go-backend/internal/handoff"
	"github.com/pinkcart/go-backend/internal/notify"
	"github.com/pinkcart/go-backend/internal/session"
	"github.com/pinkcart/go-backend/internal/storefront"
	"github.com/pinkcart/go-backend/pkg/localstore"
	"github.com/pinkcart/go-backend/pkg/logger"
)

const (
	defaultAPI      = "http://localhost:8080"
	defaultOperator = "254794269051"
	defaultCurrency = "KSh"
	storageFile     = ".pinkcart.json"
)

func main() {
	var (
		api      string
		storage  string
		operator string
		currency string
		verbose  bool
	)

	flag.StringVar(&api, "api", envOr("PINKCART_API", defaultAPI), "Storefront API base URL (env PINKCART_API)")
	flag.StringVar(&storage, "storage", envOr("PINKCART_STORAGE", defaultStoragePath()), "Cart and session file (env PINKCART_STORAGE)")
	flag.StringVar(&operator, "operator", envOr("PINKCART_OPERATOR", defaultOperator), "Operator phone for order hand-off (env PINKCART_OPERATOR)")
	flag.StringVar(&currency, "currency", defaultCurrency, "Currency label")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := logger.NewSlogLoggerTo(os.Stderr, level)

	store, err := localstore.OpenFile(storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage %s: %v\n", storage, err)
		os.Exit(1)
	}

	client := storefront.NewClient(api, log)
	formatter := handoff.NewFormatter(operator, currency)
	shell := storefront.NewShell(
		client,
		cart.New(store, cart.WithLogger(log)),
		session.New(store, log),
		checkout.NewComposer(client, formatter, log),
		formatter,
		notify.RealScheduler{},
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// одиночная команда из аргументов, иначе интерактивный режим
	if args := flag.Args(); len(args) > 0 {
		if err := shell.RunOnce(ctx, os.Stdout, args[0], args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := shell.Run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return storageFile
	}
	return filepath.Join(home, storageFile)
}
