// Package app provides the application context for forage-ui.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Streams terminal.Streams  // Input file and output pipelines
//	    Config  *config.Config    // Loaded configuration
//	    Lookup  terminal.LookupEnv // Environment variables
//	    Driver  *terminal.Driver  // Raw mode and cursor, when interactive
//	    Theme   *style.Theme      // Output styling
//	    Input   keys.Source       // Key source override, for tests
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New(app.WithConfig(cfg))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithStreams(env.Streams),
//	    app.WithInteractive(false),
//	)
//
// Widgets take the environment built by Env:
//
//	sel, err := component.Select(ctx, a.Env(), data, component.SelectOptions{})
//
// # Available Options
//
//	WithStreams(streams)       // Custom streams
//	WithConfig(config)         // Custom configuration
//	WithLookup(lookup)         // Custom environment lookup
//	WithDriver(driver)         // Custom terminal driver
//	WithInteractive(bool)      // Skip interactivity detection
//	WithInput(source)          // Custom key source
//	WithTheme(theme)           // Custom theme
package app
