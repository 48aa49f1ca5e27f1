package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emlai/zenith-sub000/internal/engine"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Log.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	output, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"serve", "view", "render", "save", "inspect", "saves"} {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_NoArgs(t *testing.T) {
	_, err := execute(t)
	require.NoError(t, err)
}

func TestServeCommand_Help(t *testing.T) {
	output, err := execute(t, "serve", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "--port")
	assert.Contains(t, output, "--seed", "persistent flags should be listed")
}

func TestServeCommand_PortFromEnv(t *testing.T) {
	t.Setenv("ZN_PORT", "9191")
	cmd := newServeCmd(&rootOptions{})
	assert.Equal(t, "9191", cmd.Flag("port").DefValue)
}

func TestRenderCommand_CentersOnPlayer(t *testing.T) {
	output, err := execute(t, "render", "--seed", "42", "--width", "21", "--height", "9")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, '@', []rune(lines[4])[10], "player must be in the middle of the frame")
	assert.Contains(t, lines[9], "level 0")
}

func TestRenderCommand_SameSeedSameFrame(t *testing.T) {
	a, err := execute(t, "render", "--seed", "7", "--x", "-40", "--y", "-40", "--width", "80", "--height", "80")
	require.NoError(t, err)
	b, err := execute(t, "render", "--seed", "7", "--x", "-40", "--y", "-40", "--width", "80", "--height", "80")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderCommand_BadSize(t *testing.T) {
	_, err := execute(t, "render", "--seed", "1", "--width", "0")
	require.Error(t, err)
}

func TestRootCommand_BadSeedMode(t *testing.T) {
	_, err := execute(t, "render", "--seed-mode", "sideways")
	require.Error(t, err)
}

func TestSaveInspectSaves(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "world.znws")

	output, err := execute(t, "save", "--seed", "99", "--save-dir", dir, "--out", out, "--explore", "1", "--turns", "2")
	require.NoError(t, err)
	assert.Contains(t, output, "saved "+out)
	assert.FileExists(t, out)

	output, err = execute(t, "inspect", out)
	require.NoError(t, err)
	assert.Contains(t, output, "seed:       99")
	assert.Contains(t, output, "seed mode:  per_area")
	assert.NotContains(t, output, "creatures:")

	output, err = execute(t, "inspect", "--full", out)
	require.NoError(t, err)
	assert.Contains(t, output, "creatures:")
	assert.Contains(t, output, "level   0:")

	output, err = execute(t, "saves", "--save-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "CREATED")
	assert.Contains(t, output, out)

	// Загруженный мир рисуется вокруг того же игрока.
	output, err = execute(t, "render", "--load", out, "--width", "5", "--height", "5")
	require.NoError(t, err)
	assert.Equal(t, '@', []rune(strings.Split(output, "\n")[2])[2])
}

func TestSavesCommand_Empty(t *testing.T) {
	output, err := execute(t, "saves", "--save-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, output, "no saves recorded")
}

func TestInspectCommand_RequiresFile(t *testing.T) {
	_, err := execute(t, "inspect")
	require.Error(t, err)

	_, err = execute(t, "inspect", filepath.Join(t.TempDir(), "missing.znws"))
	require.Error(t, err)
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want engine.Command
		ok   bool
	}{
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), engine.Command{Action: engine.ActionMove, Dx: -1}, true},
		{"vi diagonal", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), engine.Command{Action: engine.ActionMove, Dx: 1, Dy: 1}, true},
		{"wait", tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone), engine.Command{Action: engine.ActionWait}, true},
		{"descend", tcell.NewEventKey(tcell.KeyRune, '>', tcell.ModNone), engine.Command{Action: engine.ActionDescend}, true},
		{"ascend", tcell.NewEventKey(tcell.KeyRune, '<', tcell.ModNone), engine.Command{Action: engine.ActionAscend}, true},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), engine.Command{}, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), engine.Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyCommand(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunView_WaitThenQuit(t *testing.T) {
	opts := &rootOptions{seed: "5", seedMode: "per_area", saveDir: t.TempDir()}
	game, err := opts.newGame("")
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(30, 10)

	screen.InjectKey(tcell.KeyRune, '.', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- runView(context.Background(), game, screen) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("view did not quit")
	}
	assert.Equal(t, uint64(1), game.Turn())

	// Игрок в центре области карты (последняя строка - статус).
	ch, _, _, _ := screen.GetContent(15, 4)
	assert.Equal(t, '@', ch)
}

func TestParseSeed(t *testing.T) {
	assert.Equal(t, int64(99), parseSeed("99"))
	assert.Equal(t, int64(-5), parseSeed("-5"))
	assert.Equal(t, parseSeed("dragon"), parseSeed("dragon"))
	assert.NotEqual(t, parseSeed("dragon"), parseSeed("wyrm"))
}
