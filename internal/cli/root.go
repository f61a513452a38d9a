package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"alcyxob/fitlocal/internal/api"
	"alcyxob/fitlocal/internal/app"
	"alcyxob/fitlocal/internal/config"
	"alcyxob/fitlocal/internal/service"
)

// Context is what every command runs against.
type Context struct {
	Config config.Config
	Out    io.Writer
	// Clock defaults to the configured timezone's wall clock.
	Clock service.Clock

	backend *app.Backend
}

func NewContext(cfg config.Config) *Context {
	return &Context{
		Config: cfg,
		Out:    os.Stdout,
		Clock:  service.SystemClock(cfg.App.Location()),
	}
}

// Backend opens the configured database once.
func (c *Context) Backend() (*app.Backend, error) {
	if c.backend != nil {
		return c.backend, nil
	}
	backend, err := app.OpenBackend(c.Config.Database)
	if err != nil {
		return nil, err
	}
	c.backend = backend
	return backend, nil
}

// Services builds the services the commands read through. No generator is
// wired; none of the commands generate.
func (c *Context) Services(ctx context.Context) (api.Services, error) {
	backend, err := c.Backend()
	if err != nil {
		return api.Services{}, err
	}
	fileStorage, err := app.NewFileStorage(ctx, c.Config.S3)
	if err != nil {
		return api.Services{}, err
	}
	return app.NewServices(app.Dependencies{
		Repositories: backend.Repositories,
		FileStorage:  fileStorage,
		Clock:        c.Clock,
	}), nil
}

func (c *Context) Close() error {
	if c.backend == nil {
		return nil
	}
	err := c.backend.Close()
	c.backend = nil
	return err
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}
