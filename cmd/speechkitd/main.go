package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tmm22/speechkit/config"
	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/server"
	"github.com/tmm22/speechkit/transcription"
	"github.com/tmm22/speechkit/transcription/backends"
	"github.com/tmm22/speechkit/vocabulary"
)

const serviceName = "speechkitd"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "path to config.yml")
	envFile := flag.String("env-file", "", "path to .env file")
	flag.Parse()

	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		loadOpts = append(loadOpts, config.WithEnvFile(*envFile))
	}

	var cfg config.Config
	if err := config.Load(serviceName, &cfg, loadOpts...); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	creds := credentials.NewEnvStore(cfg.CredentialEnvOverrides())

	routerOpts := []transcription.RouterOption{
		transcription.WithLanguagePreference(func() string { return cfg.Language }),
	}
	if cfg.DictionaryPath != "" {
		routerOpts = append(routerOpts,
			transcription.WithVocabulary(vocabulary.NewFileSource(cfg.DictionaryPath)))
	}

	router := backends.NewRouter(backends.Options{
		Credentials: creds,
		Endpoints:   cfg.Endpoints(),
		Timeouts:    cfg.Timeouts(),
	}, routerOpts...)

	srv := server.New(cfg.Server, log)
	server.NewAPI(cfg.Name, router, cfg.Server.MaxBodyBytes()).Register(srv.GinEngine())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("service ready", map[string]interface{}{
		"addr":      srv.Addr(),
		"providers": router.Providers(),
	})

	<-ctx.Done()
	stop()
	return srv.Stop(context.Background())
}
