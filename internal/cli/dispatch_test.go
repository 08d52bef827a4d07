package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"
)

func run(t *testing.T, d *Dispatcher, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = d.Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func fakeFactory(fake *testutil.Fake) ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return fake, nil
	}
}

// configDir gives each test its own config dir so no real session leaks in.
func configDir(t *testing.T, loggedIn bool) string {
	t.Helper()
	dir := t.TempDir()
	if loggedIn {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{}"), 0600))
	}
	return dir
}

func TestUnknownCommand(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, nil)
	code, _, errOut := run(t, d, "frobnicate")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: frobnicate\n", errOut)
}

func TestLeadingFlagIsAnError(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, nil)
	code, _, errOut := run(t, d, "--quiet")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: --quiet\n", errOut)
}

func TestUnknownFlag(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, fakeFactory(testutil.NewFake()))
	code, _, errOut := run(t, d, "version", "--bogus")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown flag: -bogus\n", errOut)
}

func TestListThroughDispatcher(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, fakeFactory(testutil.NewFake()))
	code, out, _ := run(t, d, "list", "--config", configDir(t, true))
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", out)
}

func TestNotLoggedInPreflight(t *testing.T) {
	factoryCalled := false
	d := NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		factoryCalled = true
		return testutil.NewFake(), nil
	})

	code, _, errOut := run(t, d, "list", "--config", configDir(t, false))
	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: not logged in (run: taskdeck login)\n", errOut)
	assert.False(t, factoryCalled, "backend must not be contacted without a session")
}

func TestVersionNeedsNoSession(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, fakeFactory(testutil.NewFake()))
	code, out, _ := run(t, d, "version", "--config", configDir(t, false))
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "taskdeck "+commands.Version+"\n", out)
}

func TestQuietFlag(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, fakeFactory(testutil.NewFake()))
	code, out, _ := run(t, d, "list", "--quiet", "--config", configDir(t, true))
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, out)
}

func TestFlagNeedsArgument(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, nil)
	code, _, errOut := run(t, d, "list", "--status")
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut, "flag needs an argument")
}
