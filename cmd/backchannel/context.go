package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/backchannel/internal/config"
	"github.com/dshills/backchannel/internal/config/loader"
	"github.com/dshills/backchannel/internal/config/notify"
	"github.com/dshills/backchannel/internal/config/registry"
	"github.com/dshills/backchannel/internal/logging"
)

// commandContext lazily builds the session shared by subcommands.
type commandContext struct {
	flags *rootFlags

	once     sync.Once
	app      config.App
	log      logging.Logger
	reg      *registry.Registry
	sessions *loader.SessionStore
	dirty    bool
	err      error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// registry returns the session registry: declared defaults, then the saved
// session, then environment overrides.
func (c *commandContext) registry(ctx context.Context) (*registry.Registry, error) {
	c.once.Do(func() {
		c.err = c.open(ctx)
	})
	return c.reg, c.err
}

func (c *commandContext) open(ctx context.Context) error {
	var opts []config.Option
	if dir := strings.TrimSpace(c.flags.configDir); dir != "" {
		opts = append(opts, config.WithConfigDir(dir))
	}
	cfg, err := config.Load(ctx, opts...)
	if err != nil {
		return err
	}
	app, err := cfg.App()
	if err != nil {
		return err
	}
	c.applyFlags(&app)
	c.app = app
	c.log = logging.Logger{Verbose: app.Verbose, Debug: app.Debug}

	notifier := notify.New()
	notifier.Subscribe(func(ch notify.Change) {
		c.dirty = true
	})

	reg, err := registry.New(
		registry.WithDataDir(app.DataDir),
		registry.WithLogger(c.log),
		registry.WithNotifier(notifier),
	)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	c.sessions = loader.NewSessionStore(app.SessionFile)
	saved, err := c.sessions.Load()
	if err != nil {
		return err
	}
	if saved != nil {
		c.log.Infof("restoring session from %s", c.sessions.Path())
		if err := reg.Restore(saved); err != nil {
			c.log.Warnf("session %s: %v", c.sessions.Path(), err)
		}
	}

	if overrides := cfg.Overrides(); len(overrides) > 0 {
		if err := reg.Restore(overrides); err != nil {
			return fmt.Errorf("environment overrides: %w", err)
		}
	}

	c.reg = reg
	c.dirty = false
	return nil
}

func (c *commandContext) applyFlags(app *config.App) {
	if v := strings.TrimSpace(c.flags.dataDir); v != "" {
		app.DataDir = v
	}
	if v := strings.TrimSpace(c.flags.session); v != "" {
		app.SessionFile = v
	}
	if c.flags.verbose {
		app.Verbose = true
	}
	if c.flags.debug {
		app.Debug = true
	}
}

// save persists the registry when a command changed it.
func (c *commandContext) save() error {
	if c.reg == nil || !c.dirty {
		return nil
	}
	if err := c.sessions.Save(c.reg.Snapshot()); err != nil {
		return err
	}
	c.log.Infof("session saved to %s", c.sessions.Path())
	c.dirty = false
	return nil
}
