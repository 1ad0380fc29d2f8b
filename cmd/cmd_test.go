package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/testutil"
)

// setupTestEnv isolates the config lookup and captures log output.
func setupTestEnv(t *testing.T) *testutil.TestEnv {
	t.Helper()

	env := testutil.NewTestEnv(t)
	t.Setenv(config.EnvConfig, filepath.Join(env.TmpDir, "missing.toml"))
	t.Setenv("FORAGE_UI_NON_INTERACTIVE", "")

	origApp := app.Default
	t.Cleanup(func() {
		app.SetDefault(origApp)
		newApp = app.New
	})
	return env
}

// withKeys makes every command interactive, reading keys from bursts.
func withKeys(t *testing.T, bursts ...string) {
	t.Helper()

	script := testutil.NewScript(bursts...)
	script.EOF = true
	newApp = func(opts ...app.Option) *app.App {
		return app.New(append(opts, app.WithInteractive(true), app.WithInput(script))...)
	}
}

// resetFlags puts every flag of c and its children back to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !strings.HasSuffix(f.Value.Type(), "Slice") {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(args ...string) (string, string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(stdin string, args ...string) (string, string, error) {
	// Reset flag values before each test
	resetFlags(rootCmd)
	chooseChecked = nil

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)
	cmd.SetIn(nil)

	return stdout.String(), stderr.String(), err
}

func wantCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with exit code %d", code)
	}
	if got := errors.GetExitCode(err); got != code {
		t.Errorf("exit code = %d, want %d (err: %v)", got, code, err)
	}
}

func TestRootCommand_Help(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help failed: %v", err)
	}

	for _, want := range []string{"table", "select", "page", "step", "progress", "confirm", "input", "choose", "alert", "config"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Help should list %s", want)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help failed: %v", err)
	}

	for _, flag := range []string{"--verbose", "--json", "--config", "--non-interactive"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("Should have %s flag", flag)
		}
	}
}

func TestCommandRequiresArgs(t *testing.T) {
	setupTestEnv(t)

	for _, name := range []string{"step", "progress", "confirm", "alert"} {
		t.Run(name, func(t *testing.T) {
			if _, _, err := executeCommand(name); err == nil {
				t.Errorf("%s without arguments should fail", name)
			}
		})
	}
}

func TestTableCommand(t *testing.T) {
	env := setupTestEnv(t)

	for _, fixture := range []string{"users.json", "services.toml", "hosts.yaml"} {
		t.Run(fixture, func(t *testing.T) {
			path := env.CopyFixture(fixture)

			stdout, _, err := executeCommand("table", path)
			if err != nil {
				t.Fatalf("table failed: %v", err)
			}
			if !strings.Contains(stdout, "╭") {
				t.Errorf("expected a rounded table:\n%s", stdout)
			}
		})
	}
}

func TestTableCommand_Stdin(t *testing.T) {
	setupTestEnv(t)
	data, err := testutil.LoadFixture("users.json")
	if err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeWithInput(string(data), "table", "--title", "Users", "--border", "ascii")
	if err != nil {
		t.Fatalf("table failed: %v", err)
	}
	for _, want := range []string{"Users", "+", "Alice", "Carol"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestTableCommand_Convert(t *testing.T) {
	env := setupTestEnv(t)
	path := env.CopyFixture("users.json")

	stdout, _, err := executeCommand("table", "--to", "yaml", path)
	if err != nil {
		t.Fatalf("table --to failed: %v", err)
	}
	if !strings.Contains(stdout, "title: Name") || !strings.Contains(stdout, "id: u2") {
		t.Errorf("expected YAML output:\n%s", stdout)
	}
}

func TestTableCommand_Errors(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("invalid data", func(t *testing.T) {
		_, _, err := executeCommand("table", env.CopyFixture("invalid.json"))
		wantCode(t, err, errors.ExitInvalidTableData)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := executeCommand("table", env.WriteFile("table.csv", "a,b"))
		wantCode(t, err, errors.ExitGeneralError)
	})

	t.Run("unknown border", func(t *testing.T) {
		_, _, err := executeCommand("table", "--border", "wavy", env.CopyFixture("users.json"))
		wantCode(t, err, errors.ExitGeneralError)
	})

	t.Run("missing config", func(t *testing.T) {
		_, _, err := executeCommand("--config", filepath.Join(env.TmpDir, "nope.toml"), "table", env.CopyFixture("users.json"))
		wantCode(t, err, errors.ExitConfigError)
	})
}

func TestTableCommand_NamedDataSet(t *testing.T) {
	env := setupTestEnv(t)
	cfgPath := env.WriteFile("config.toml", `data_dir = "sets"`)
	data, err := testutil.LoadFixture("hosts.yaml")
	if err != nil {
		t.Fatal(err)
	}
	env.WriteFile("sets/hosts.yaml", string(data))

	stdout, _, err := executeCommand("--config", cfgPath, "table", "--data", "hosts.yaml")
	if err != nil {
		t.Fatalf("table --data failed: %v", err)
	}
	if !strings.Contains(stdout, "gamma") {
		t.Errorf("expected the hosts table:\n%s", stdout)
	}

	_, _, err = executeCommand("--config", cfgPath, "table", "--data", "hosts.yaml", "other.json")
	wantCode(t, err, errors.ExitGeneralError)

	_, _, err = executeCommand("--config", cfgPath, "table", "--data", "missing.yaml")
	wantCode(t, err, errors.ExitConfigError)
}

func TestTableCommand_Exec(t *testing.T) {
	setupTestEnv(t)
	data, err := testutil.LoadFixture("users.json")
	if err != nil {
		t.Fatal(err)
	}
	exec := system.NewMockExecutor()
	exec.AddResponse("users list", data, nil)
	exec.AddResponse("broken", nil, fmt.Errorf("exit status 2"))
	system.SetDefaultExecutor(exec)
	t.Cleanup(system.ResetDefaults)

	stdout, _, err := executeCommand("table", "--exec", "users list --all")
	if err != nil {
		t.Fatalf("table --exec failed: %v", err)
	}
	if !strings.Contains(stdout, "Alice") {
		t.Errorf("expected the users table:\n%s", stdout)
	}
	if cmd, _ := exec.LastCommand(); cmd.Name != "users" || len(cmd.Args) != 2 || cmd.Args[1] != "--all" {
		t.Errorf("last command = %+v", cmd)
	}

	_, _, err = executeCommand("table", "--exec", "broken")
	wantCode(t, err, errors.ExitDataSource)

	_, _, err = executeCommand("table", "--exec", "users list", "other.json")
	wantCode(t, err, errors.ExitGeneralError)

	_, _, err = executeCommand("table", "--exec", "'unterminated")
	wantCode(t, err, errors.ExitGeneralError)
}

func TestUnknownConfigKey(t *testing.T) {
	env := setupTestEnv(t)
	cfgPath := env.WriteFile("config.toml", "colour = \"never\"\n")

	_, stderr, err := executeCommand("--config", cfgPath, "alert", "info", "hello")
	if err != nil {
		t.Fatalf("alert failed: %v", err)
	}
	if !strings.Contains(stderr, "unknown config key") {
		t.Errorf("expected a warning for the unknown key, stderr:\n%s", stderr)
	}
}

func TestSelectCommand_NonInteractive(t *testing.T) {
	env := setupTestEnv(t)
	path := env.CopyFixture("users.json")

	_, _, err := executeCommand("select", path)
	wantCode(t, err, errors.ExitNonInteractive)

	_, _, err = executeCommand("select", "--fullscreen", path)
	wantCode(t, err, errors.ExitNonInteractive)
}

func TestSelectCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		keys  []string
		want  string
		code  int
		isErr bool
	}{
		{"row", nil, []string{"\x1b[B", "\r"}, "2\tBob\tdev\n", 0, false},
		{"index", []string{"--print", "index"}, []string{"\x1b[B", "\x1b[B", "\r"}, "2\n", 0, false},
		{"key", []string{"--print", "key", "--selected", "2"}, []string{"\r"}, "u3\n", 0, false},
		{"cancel", nil, []string{"\x1b"}, "", errors.ExitUserCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			path := env.CopyFixture("users.json")
			withKeys(t, tt.keys...)

			stdout, _, err := executeCommand(append(append([]string{"select"}, tt.args...), path)...)
			if tt.isErr {
				wantCode(t, err, tt.code)
				return
			}
			if err != nil {
				t.Fatalf("select failed: %v", err)
			}
			if !strings.HasSuffix(stdout, tt.want) {
				t.Errorf("output should end with %q, got %q", tt.want, stdout)
			}
		})
	}
}

func TestSelectCommand_FlagErrors(t *testing.T) {
	env := setupTestEnv(t)
	path := env.CopyFixture("users.json")

	tests := []struct {
		name string
		args []string
	}{
		{"watch and poll", []string{"select", "--watch", "--poll", "1s", path}},
		{"watch stdin", []string{"select", "--watch"}},
		{"watch exec", []string{"select", "--watch", "--exec", "users list"}},
		{"unknown tracking", []string{"select", "--track", "sideways", path}},
		{"unknown print", []string{"select", "--print", "all", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withKeys(t, "\r")
			data, _ := testutil.LoadFixture("users.json")
			if _, _, err := executeWithInput(string(data), tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPageCommand_FallsBackToTable(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := executeCommand("page", env.CopyFixture("users.json"))
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if !strings.Contains(stdout, "Alice") || !strings.Contains(stdout, "Carol") {
		t.Errorf("expected the whole table:\n%s", stdout)
	}
}

func TestStepCommand(t *testing.T) {
	setupTestEnv(t)
	mock := system.NewMockExecutor()
	mock.AddResponse("make build", []byte("compiling\nlinking\n"), nil)
	system.SetDefaultExecutor(mock)
	t.Cleanup(system.ResetDefaults)

	stdout, _, err := executeCommand("step", "make build")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	for _, want := range []string{"ℹ make build", "  compiling", "  linking", "✓ make build"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	cmd, ok := mock.LastCommand()
	if !ok || cmd.Name != "make" || len(cmd.Args) != 1 || cmd.Args[0] != "build" {
		t.Errorf("ran %+v, want make build", cmd)
	}
}

func TestStepCommand_Failure(t *testing.T) {
	setupTestEnv(t)
	mock := system.NewMockExecutor()
	mock.AddResponse("false", nil, fmt.Errorf("exit status 1"))
	system.SetDefaultExecutor(mock)
	t.Cleanup(system.ResetDefaults)

	_, stderr, err := executeCommand("step", "--title", "Checking", "--", "false", "--quiet")
	if err == nil || err.Error() != "exit status 1" {
		t.Fatalf("step error = %v, want the command's error", err)
	}
	if !strings.Contains(stderr, "✗ Checking") {
		t.Errorf("expected a failure line, stderr:\n%s", stderr)
	}
}

func TestProgressCommand(t *testing.T) {
	setupTestEnv(t)
	mock := system.NewMockExecutor()
	mock.AddResponse("fetch", []byte("10% start\n50% half\nretrying\n100% done\n"), nil)
	system.SetDefaultExecutor(mock)
	t.Cleanup(system.ResetDefaults)

	stdout, _, err := executeCommand("progress", "fetch")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	for _, want := range []string{" 10% start", " 50% half", " 50% retrying", "100% done", "✓ fetch"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfirmCommand(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		args []string
		code int
	}{
		{"yes", []string{"y"}, nil, 0},
		{"no", []string{"n"}, nil, errors.ExitGeneralError},
		{"default yes", []string{"\r"}, []string{"--default"}, 0},
		{"default no", []string{"\r"}, nil, errors.ExitGeneralError},
		{"cancel", []string{"\x1b"}, nil, errors.ExitUserCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnv(t)
			withKeys(t, tt.keys...)

			_, _, err := executeCommand(append([]string{"confirm", "Proceed?"}, tt.args...)...)
			if tt.code == 0 {
				if err != nil {
					t.Fatalf("confirm failed: %v", err)
				}
				return
			}
			wantCode(t, err, tt.code)
		})
	}
}

func TestConfirmCommand_NonInteractive(t *testing.T) {
	setupTestEnv(t)

	_, _, err := executeCommand("confirm", "Proceed?")
	wantCode(t, err, errors.ExitNonInteractive)
}

func TestInputCommand(t *testing.T) {
	setupTestEnv(t)
	withKeys(t, "abc", "\r")

	stdout, _, err := executeCommand("input", "Name")
	if err != nil {
		t.Fatalf("input failed: %v", err)
	}
	if !strings.HasSuffix(stdout, "abc\n") {
		t.Errorf("output should end with the value, got %q", stdout)
	}
}

func TestInputCommand_Default(t *testing.T) {
	setupTestEnv(t)
	withKeys(t, "\r")

	stdout, _, err := executeCommand("input", "--default", "anon", "Name")
	if err != nil {
		t.Fatalf("input failed: %v", err)
	}
	if !strings.HasSuffix(stdout, "anon\n") {
		t.Errorf("output should end with the default, got %q", stdout)
	}
}

func TestChooseCommand(t *testing.T) {
	env := setupTestEnv(t)
	path := env.CopyFixture("users.json")
	withKeys(t, " ", "\x1b[B", "\x1b[B", " ", "\r")

	stdout, _, err := executeCommand("choose", "--print", "key", path)
	if err != nil {
		t.Fatalf("choose failed: %v", err)
	}
	if !strings.HasSuffix(stdout, "u1\nu3\n") {
		t.Errorf("output should end with the checked keys, got %q", stdout)
	}
}

func TestChooseCommand_BadLimits(t *testing.T) {
	env := setupTestEnv(t)
	path := env.CopyFixture("users.json")
	withKeys(t, "\r")

	_, _, err := executeCommand("choose", "--min", "3", "--max", "1", path)
	wantCode(t, err, errors.ExitConfigError)
}

func TestAlertCommand(t *testing.T) {
	setupTestEnv(t)

	stdout, stderr, err := executeCommand("alert", "warning", "--group", "Preflight", "disk full", "swap off")
	if err != nil {
		t.Fatalf("alert failed: %v", err)
	}
	if !strings.Contains(stdout, "Preflight") {
		t.Errorf("heading should go to stdout:\n%s", stdout)
	}
	for _, want := range []string{"  ⚠ disk full", "  ⚠ swap off"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestAlertCommand_Strict(t *testing.T) {
	setupTestEnv(t)

	_, _, err := executeCommand("alert", "--strict", "error", "broken")
	wantCode(t, err, errors.ExitGeneralError)

	if _, _, err := executeCommand("alert", "--strict", "info", "fine"); err != nil {
		t.Errorf("info alert should succeed: %v", err)
	}

	_, _, err = executeCommand("alert", "loud", "text")
	wantCode(t, err, errors.ExitGeneralError)
}

func TestConfigCommand(t *testing.T) {
	env := setupTestEnv(t)
	cfgPath := env.CopyFixture("config.toml")

	stdout, _, err := executeCommand("--config", cfgPath, "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	for _, want := range []string{`interrupt = "continue"`, `border = "double"`, "[spinner]"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = executeCommand("--config", cfgPath, "config", "--path")
	if err != nil {
		t.Fatalf("config --path failed: %v", err)
	}
	if strings.TrimSpace(stdout) != cfgPath {
		t.Errorf("config --path = %q, want %q", stdout, cfgPath)
	}
}

func TestConfigCommand_Defaults(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(stdout, "showing defaults") || !strings.Contains(stdout, `border = "rounded"`) {
		t.Errorf("expected the defaults:\n%s", stdout)
	}
}
