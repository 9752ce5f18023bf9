package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

//go:generate mockgen -destination=./app_mock.go -package=app -source=app.go

// Dependency is the interface that wraps the basic methods of a dependency required for the application.
type Dependency interface {
	// Start is anything a dependency needs to do before it's ready to be used. It must not
	// block: long-running work belongs in a goroutine owned by the dependency.
	Start() error
	// Stop is anything a dependency needs to do before it's ready to be stopped
	Stop() error
	// Name is the name of the dependency. It is used for logging and identification purposes, only.
	Name() string
}

type App struct {
	serviceName string
	// deps are started in order and stopped in reverse order.
	deps []Dependency
	// started counts the deps whose Start returned successfully.
	started int
	// osSignalChan is a channel that will be used to signal when the OS has sent a signal to the application.
	osSignalChan chan os.Signal
	// stopCalled is an atomic bool. It allows stop to be called once
	stopCalled *atomic.Bool
	// runCalled allows Run to be called once
	runCalled *atomic.Bool
	// stopTimeout is the amount of time the application will wait for dependencies to stop before exiting.
	stopTimeout time.Duration
}

type Config struct {
	ServiceName string
	StopTimeout time.Duration
}

func (c *Config) validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.StopTimeout <= 0 {
		errs = append(errs, errors.New("stop timeout is required"))
	}
	return errors.Join(errs...)
}

// CreateApp creates a new application with the provided dependencies.
func CreateApp(cfg *Config, deps ...Dependency) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &App{
		serviceName:  cfg.ServiceName,
		deps:         deps,
		stopTimeout:  cfg.StopTimeout,
		stopCalled:   &atomic.Bool{},
		runCalled:    &atomic.Bool{},
		osSignalChan: make(chan os.Signal, 1), // first signal we get shuts down the app
	}, nil
}

// Run starts every dependency in order, then blocks until the context is cancelled or the OS
// asks the process to stop. A dependency failing to start stops the ones already started and
// is returned.
func (a *App) Run(ctx context.Context) error {
	if !a.runCalled.CompareAndSwap(false, true) {
		return errors.New("run has already been called")
	}

	log.Info().Str("service", a.serviceName).Int("dependencies", len(a.deps)).Msg("starting")
	if err := a.start(); err != nil {
		log.Error().Err(err).Msg("dependency failed to start")
		return errors.Join(err, a.stop())
	}

	signal.Notify(a.osSignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(a.osSignalChan)

	select {
	case <-ctx.Done():
		log.Info().Msg("app context cancelled: shutting down")
	case sig := <-a.osSignalChan:
		log.Info().Str("signal", sig.String()).Msg("OS signal received: shutdown beginning")
	}

	if err := a.stop(); err != nil {
		log.Error().Err(err).Msg("error stopping application")
		return err
	}

	log.Info().Str("service", a.serviceName).Msg("stopped")
	return nil
}

func (a *App) start() error {
	for _, dep := range a.deps {
		log.Info().Str("dependency", dep.Name()).Msg("starting dependency")
		if err := a.startOne(dep); err != nil {
			return err
		}
		a.started++
	}
	return nil
}

func (a *App) startOne(dep Dependency) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in Start() for dependency %s: %v", dep.Name(), r)
		}
	}()

	if startErr := dep.Start(); startErr != nil {
		return fmt.Errorf("failure in Start() for dependency %s: %w", dep.Name(), startErr)
	}
	return nil
}

// stop attempts a graceful shutdown of every started dependency, newest first.
func (a *App) stop() error {
	if a.stopCalled.Swap(true) {
		return errors.New("stop has already been called")
	}

	ctxTo, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()

	done := make(chan []error, 1)
	go func() {
		var errs []error
		for i := a.started - 1; i >= 0; i-- {
			dep := a.deps[i]
			log.Info().Str("dependency", dep.Name()).Msg("stopping dependency")
			if err := dep.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failure in Stop() for dependency %s: %w", dep.Name(), err))
			}
		}
		done <- errs
	}()

	select {
	case errs := <-done:
		return errors.Join(errs...)
	case <-ctxTo.Done():
		return fmt.Errorf("dependencies did not stop within %s: %w", a.stopTimeout, ctxTo.Err())
	}
}
