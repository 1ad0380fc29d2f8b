// Package testutil provides test fixtures and utilities.
//
// # Environments
//
// NewTestEnv gives a test recording output pipelines and a scratch
// directory, and routes user-facing log lines into the same buffers:
//
//	env := testutil.NewTestEnv(t)
//	err := component.Table(env.Streams, data, opts)
//	if !strings.Contains(env.Out.String(), "Alice") { ... }
//
// # Input and Screens
//
// Script stands in for a terminal driver. Each burst of input is available
// at once, so "\x1b[A" in one burst decodes as an arrow while "\x1b" alone
// decodes as Escape:
//
//	src := testutil.NewScript("\x1b[B", "\r")
//
// Screen is an io.Writer that interprets the renderer's escapes and
// reports which lines would remain visible.
//
// # Fixtures
//
// Table files in every supported format are embedded:
//
//	fixtures/users.json
//	fixtures/services.toml
//	fixtures/hosts.yaml
//	fixtures/invalid.json
//	fixtures/config.toml
//
// Users returns the same table as users.json, built in Go, and Numbered
// builds tables of any size.
package testutil
