package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/internal/config"
	"github.com/jrsteele09/graphene-portal/server"
	"github.com/jrsteele09/graphene-portal/sessions"
	"github.com/jrsteele09/graphene-portal/sessions/filestore"
	"github.com/jrsteele09/graphene-portal/sessions/memstore"
	"github.com/jrsteele09/graphene-portal/token/jwt"
	fakeuserrepo "github.com/jrsteele09/graphene-portal/users/repofake"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const deviceIdleTimeout = 30 * time.Minute

func main() {
	c, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	setupLogging(c)

	for {
		if err := run(c); err != nil {
			log.Err(err).Msg("Error running server, restarting")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())

	handler, err := newPortal(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handler.RunJanitor(ctx, deviceIdleTimeout)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func newPortal(c config.Config) (*server.Server, error) {
	directory := fakeuserrepo.NewFakeUserRepo()

	creator, err := jwt.NewCreator(c.GetTokenSecret())
	if err != nil {
		return nil, fmt.Errorf("jwt.NewCreator: %w", err)
	}

	authenticator, err := auth.NewAuthenticationService(directory, creator, auth.WithDelay(c.GetLoginDelay()))
	if err != nil {
		return nil, fmt.Errorf("auth.NewAuthenticationService: %w", err)
	}

	storage, err := newStorage(c)
	if err != nil {
		return nil, err
	}

	return server.New(c, authenticator, storage, directory,
		server.WithDemoSecretHint(fakeuserrepo.DemoSecret),
		server.WithTokenVerifier(creator))
}

func newStorage(c config.Config) (sessions.Storage, error) {
	if c.GetStorage() == config.StorageMemory {
		log.Warn().Msg("Sessions are kept in memory and will not survive a restart")
		return memstore.New(), nil
	}
	dir := filepath.Join(c.GetDataFolder(), "sessions")
	storage, err := filestore.New(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore.New: %w", err)
	}
	log.Info().Str("folder", dir).Msg("Sessions are persisted to disk")
	return storage, nil
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
