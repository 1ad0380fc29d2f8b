// Package app provides the application context for forage-ui.
// It allows dependency injection for testing.
package app

import (
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/style"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// App holds the application dependencies
type App struct {
	// Streams are the input file and both output pipelines
	Streams terminal.Streams

	// Config is the loaded configuration
	Config *config.Config

	// Lookup reads environment variables
	Lookup terminal.LookupEnv

	// Driver owns raw mode and the cursor; nil when not interactive
	Driver *terminal.Driver

	// Theme styles all widget output
	Theme *style.Theme

	// Input overrides the driver as the key source
	Input keys.Source

	interactive *bool
}

// Option is a function that configures the App
type Option func(*App)

// WithStreams sets custom streams
func WithStreams(s terminal.Streams) Option {
	return func(a *App) {
		a.Streams = s
	}
}

// WithConfig sets a custom config
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithLookup sets the environment lookup
func WithLookup(lookup terminal.LookupEnv) Option {
	return func(a *App) {
		a.Lookup = lookup
	}
}

// WithDriver sets a custom terminal driver
func WithDriver(d *terminal.Driver) Option {
	return func(a *App) {
		a.Driver = d
	}
}

// WithInteractive forces interactivity on or off, skipping detection
func WithInteractive(interactive bool) Option {
	return func(a *App) {
		a.interactive = &interactive
	}
}

// WithInput sets a custom key source
func WithInput(src keys.Source) Option {
	return func(a *App) {
		a.Input = src
	}
}

// WithTheme sets a custom theme
func WithTheme(t *style.Theme) Option {
	return func(a *App) {
		a.Theme = t
	}
}

// New creates a new App with the given options.
// Interactivity, the driver and the theme are detected unless provided.
func New(opts ...Option) *App {
	app := &App{
		Streams: terminal.Std(),
		Lookup:  terminal.OSEnv,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		app.Config = config.Default()
	}

	if app.interactive == nil {
		detected := !app.Config.NonInteractive &&
			app.Streams.In != nil &&
			terminal.IsTerminal(app.Streams.In) &&
			terminal.IsInteractive(app.Streams.Out, app.Lookup)
		app.interactive = &detected
	}

	if app.Driver == nil && *app.interactive && app.Streams.In != nil {
		app.Driver = terminal.NewDriver(app.Streams.In, app.Streams.Out)
	}

	if app.Theme == nil {
		out := app.Streams.Writer(terminal.Primary)
		app.Theme = style.New(out, app.Config.ShouldColor(out, app.Lookup))
	}

	return app
}

// Interactive reports whether live widgets may run
func (a *App) Interactive() bool {
	return a.interactive != nil && *a.interactive
}

// Env returns the widget environment for this app
func (a *App) Env() *component.Env {
	return &component.Env{
		Streams:     a.Streams,
		Interactive: a.Interactive(),
		Theme:       a.Theme,
		Driver:      a.Driver,
		Input:       a.Input,
		Config:      a.Config,
	}
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
