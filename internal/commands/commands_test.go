package commands

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"
)

func TestMain(m *testing.M) {
	color.NoColor = true // deterministic output
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:8000/api"}
}

// runCmd parses args through the command's own flag set and runs it, the same
// way the dispatcher does.
func runCmd(t *testing.T, cfg *config.Config, cmd Command, svc service.Service, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	var out, errOut bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, fs.Args(), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &VersionCmd{}, nil)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "taskdeck "+Version+"\n", out)
}

func TestHelp(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &HelpCmd{}, nil)
	assert.Equal(t, exitcode.Success, code)
	testutil.GoldenString(t, "help", out)
}

func TestListEmpty(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &ListCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", out)
}

func TestListEmptyQuiet(t *testing.T) {
	cfg := testConfig(t)
	cfg.Quiet = true
	code, out, _ := runCmd(t, cfg, &ListCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, out)
}

func TestListFormatting(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddTask(service.Task{ID: "1", Title: "write report", Status: "completed", Priority: "high", DueDate: "2026-09-01"})
	fake.AddTask(service.Task{ID: "2", Title: "line\nbreak"})

	code, out, _ := runCmd(t, testConfig(t), &ListCmd{}, fake)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t,
		"✓    1  high    2026-09-01  write report\n"+
			"     2  medium  -           line break\n", out)
}

func TestListStatusFilter(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddTask(service.Task{ID: "1", Title: "a", Status: "completed"})
	fake.AddTask(service.Task{ID: "2", Title: "b", Status: "todo"})

	code, out, _ := runCmd(t, testConfig(t), &ListCmd{}, fake, "--status", "todo")
	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, out, "b")
	assert.NotContains(t, out, "a\n")
}

func TestListInvalidStatus(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &ListCmd{}, testutil.NewFake(), "--status", "bogus")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: invalid status: bogus\n", errOut)
}

func TestListUnexpectedArg(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &ListCmd{}, testutil.NewFake(), "stray")
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut, "unexpected argument: stray")
}

func TestAdd(t *testing.T) {
	fake := testutil.NewFake()
	code, out, _ := runCmd(t, testConfig(t), &AddCmd{}, fake, "--due", "2026-09-01", "-p", "high", "buy", "milk")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", out)

	tasks, err := fake.ListTasks(context.Background(), service.Filter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Title)
	assert.Equal(t, "high", tasks[0].Priority)
	assert.Equal(t, "2026-09-01", tasks[0].DueDate)
	assert.Equal(t, "todo", tasks[0].Status)
}

func TestAddMissingTitle(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &AddCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: title required\n", errOut)
}

func TestAddInvalidPriority(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &AddCmd{}, testutil.NewFake(), "--priority", "urgent", "x")
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut, "invalid priority: urgent")
}

func TestDoneAndStart(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddTask(service.Task{ID: "9", Title: "t"})

	code, out, _ := runCmd(t, testConfig(t), &StartCmd{}, fake, "9")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", out)

	code, _, _ = runCmd(t, testConfig(t), &DoneCmd{}, fake, "9")
	assert.Equal(t, exitcode.Success, code)

	tasks, err := fake.ListTasks(context.Background(), service.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "completed", tasks[0].Status)
}

func TestDoneNotFound(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &DoneCmd{}, testutil.NewFake(), "404")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task not found: 404\n", errOut)
}

func TestDoneMissingID(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &DoneCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task id required\n", errOut)
}

func TestRm(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddTask(service.Task{ID: "9", Title: "t"})

	code, out, _ := runCmd(t, testConfig(t), &RmCmd{}, fake, "9")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", out)

	tasks, err := fake.ListTasks(context.Background(), service.Filter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestEdit(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddTask(service.Task{ID: "9", Title: "old", DueDate: "2026-09-01"})

	code, _, _ := runCmd(t, testConfig(t), &EditCmd{}, fake, "--title", "new", "--due", "none", "9")
	assert.Equal(t, exitcode.Success, code)

	tasks, err := fake.ListTasks(context.Background(), service.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "new", tasks[0].Title)
	assert.Equal(t, "", tasks[0].DueDate, "--due none clears the due date")
}

func TestEditNothingToUpdate(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddTask(service.Task{ID: "9", Title: "t"})

	code, _, errOut := runCmd(t, testConfig(t), &EditCmd{}, fake, "9")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: nothing to update\n", errOut)
}

func TestLogin(t *testing.T) {
	fake := testutil.NewFake()
	cmd := &LoginCmd{}
	code, out, _ := runCmd(t, testConfig(t), cmd, fake, "--password", "pw", "a@b.com")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "logged in as a@b.com\n", out)
	assert.NotNil(t, fake.Session())
}

func TestLoginBadPassword(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &LoginCmd{}, testutil.NewFake(), "--password", "wrong", "a@b.com")
	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, errOut, "login failed")
}

func TestRegister(t *testing.T) {
	fake := testutil.NewFake()
	code, out, _ := runCmd(t, testConfig(t), &RegisterCmd{}, fake,
		"--name", "Bea", "--password", "pw2", "new@b.com")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "registered as new@b.com\n", out)
}

func TestLogoutWithoutSession(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &LogoutCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "not logged in\n", out)
}

func TestLogout(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Dir, "session.json"), []byte("{}"), 0600))

	fake := testutil.NewFake()
	_, err := fake.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	code, out, _ := runCmd(t, cfg, &LogoutCmd{}, fake)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", out)
	assert.Nil(t, fake.Session())
}

func TestWhoami(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &WhoamiCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Ada <a@b.com> (id 1)\n", out)
}

func TestProfileShow(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &ProfileCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "name:    Ada\navatar:  \n", out)
}

func TestProfileUpdate(t *testing.T) {
	fake := testutil.NewFake()
	code, out, _ := runCmd(t, testConfig(t), &ProfileCmd{}, fake, "--name", "Bea")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", out)

	p, err := fake.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bea", p.Name)
}

func TestSettingsShow(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &SettingsCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "theme:     light\nai style:  balanced\nlanguage:  en\n", out)
}

func TestSettingsUpdate(t *testing.T) {
	fake := testutil.NewFake()
	code, _, _ := runCmd(t, testConfig(t), &SettingsCmd{}, fake, "--theme", "dark", "--lang", "de")
	assert.Equal(t, exitcode.Success, code)

	s, err := fake.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, "de", s.Language)
	assert.Equal(t, "balanced", s.AIResponseStyle, "untouched fields keep their value")
}

func TestAskBackend(t *testing.T) {
	fake := testutil.NewFake()
	code, out, _ := runCmd(t, testConfig(t), &AskCmd{}, fake, "what", "is", "next")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Assistant: what is next\n", out)

	history, err := fake.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "what is next", history[0].Title)
}

func TestAskLocal(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddTask(service.Task{ID: "1", Title: "write report"})

	code, out, _ := runCmd(t, testConfig(t), &AskCmd{}, fake, "--local", "what", "next")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Based on your open tasks, start with \"write report\".\n", out)

	history, err := fake.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history, "local answers are not stored")
}

func TestAskLocalToleratesListFailure(t *testing.T) {
	fake := testutil.NewFake()
	fake.ListTasksErr = &api.Error{Message: "down", Status: 502}

	code, out, _ := runCmd(t, testConfig(t), &AskCmd{}, fake, "--local", "hello")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Assistant: hello\n", out)
}

func TestAskMissingMessage(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &AskCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: message required\n", errOut)
}

func TestHistoryList(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddHistory(service.HistoryItem{ID: "5", Title: "what next", CreatedAt: "2026-08-29T10:00:00Z"})

	code, out, _ := runCmd(t, testConfig(t), &HistoryCmd{}, fake)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "   5  2026-08-29T10:00:00Z  what next\n", out)
}

func TestHistoryEmpty(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), &HistoryCmd{}, testutil.NewFake())
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no history\n", out)
}

func TestHistoryRm(t *testing.T) {
	fake := testutil.NewFake()
	fake.AddHistory(service.HistoryItem{ID: "5", Title: "x"})

	code, out, _ := runCmd(t, testConfig(t), &HistoryCmd{}, fake, "rm", "5")
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", out)

	history, err := fake.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistoryRmNotFound(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), &HistoryCmd{}, testutil.NewFake(), "rm", "404")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: history entry not found: 404\n", errOut)
}

func TestBackendFailMapsAuthError(t *testing.T) {
	fake := testutil.NewFake()
	fake.ListTasksErr = &api.Error{Message: "token expired", Status: 401}

	code, _, errOut := runCmd(t, testConfig(t), &ListCmd{}, fake)
	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: session expired (run: taskdeck login)\n", errOut)
}

func TestBackendFailMapsBackendError(t *testing.T) {
	fake := testutil.NewFake()
	fake.ListTasksErr = &api.Error{Message: "boom", Status: 500}

	code, _, errOut := runCmd(t, testConfig(t), &ListCmd{}, fake)
	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: backend error: boom\n", errOut)
}

func TestRegistryAliases(t *testing.T) {
	for alias, name := range map[string]string{"ls": "list", "create": "add", "delete": "rm"} {
		cmd, ok := DefaultRegistry.Find(alias)
		require.True(t, ok, alias)
		assert.Equal(t, name, cmd.Name())
	}
}
