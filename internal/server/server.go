package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/errors"
	l "github.com/sirupsen/logrus"
	"gitlab.com/mipimipi/ohplaylistd/internal/catalog"
	"gitlab.com/mipimipi/ohplaylistd/internal/config"
	"gitlab.com/mipimipi/ohplaylistd/internal/upnp"
)

var log *l.Entry = l.WithFields(l.Fields{"srv": "server"})

// Run implements the main control loop of the server: it loads and
// validates the configuration, opens the playlist catalog, starts the
// UPnP service around it, and blocks until an OS termination signal or
// an error from the UPnP server arrives. version is the
// ohplaylistd version used to build the server string.
func Run(version string) (err error) {
	var cfg config.Cfg
	if cfg, err = config.Load(); err != nil {
		return errors.Wrap(err, "cannot run ohplaylistd")
	}
	if err = cfg.Validate(); err != nil {
		return errors.Wrap(err, "cannot run ohplaylistd")
	}

	// set up logging: no log entries possible before this statement!
	if err = setupLogging(cfg.LogDir, cfg.LogLevel); err != nil {
		return errors.Wrap(err, "cannot run ohplaylistd")
	}

	log.Trace("running ...")

	// create root context
	ctx := context.WithValue(context.Background(), config.KeyCfg, cfg)
	ctx = context.WithValue(ctx, config.KeyVersion, version)

	// open the playlist catalog before the UPnP server, since the
	// server's initial state variables are seeded from it
	cat, err := catalog.New(
		cfg.PlaylistDir,
		catalog.WithMaxPlaylists(cfg.MaxPlaylists),
		catalog.WithCacheCapacity(cfg.CacheCapacity),
	)
	if err != nil {
		return errors.Wrap(err, "cannot open playlist catalog")
	}

	srv, err := upnp.New(ctx, cat)
	if err != nil {
		return errors.Wrap(err, "cannot run ohplaylistd")
	}

	// create context with cancel
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup

	// start UPnP server
	wg.Add(1)
	go srv.Run(ctx, &wg)

	// preparation to receive OS signals (e.g. from 'systemctl stop ...').
	// This must be done before the main control loop is started
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	// connect UPnP server
	if err = srv.Connect(ctx); err != nil {
		err = errors.Wrap(err, "cannot run ohplaylistd")
		cancel()
		return
	}

	// main control loop
	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()

		for {
			select {
			case sig := <-interrupt:
				// termination signal from OS received: stop processing
				log.Tracef("signal received: %v", sig)
				log.Trace("stopping ...")
				cancel()
				log.Trace("stopped")
				return

			case err := <-srv.Errors():
				// error received from UPnP server: stop processing
				log.Tracef("UPnP error received: %v", err)
				log.Trace("stopping ...")
				cancel()
				log.Trace("stopped")
				return
			}
		}
	}(&wg)

	wg.Wait()

	return
}
