package tui

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-connect4/internal/core"
	_ "github.com/vovakirdan/tui-connect4/internal/games/connect4"
)

func TestNewSSHServer_GeneratesHostKey(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, nil, log.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	_, err = os.Stat(cfg.HostKeyPath)
	assert.NoError(t, err, "host key should be written on first start")
}

func TestNewSSHServer_UnknownGame(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.GameID = "checkers"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	_, err := NewSSHServer(cfg, nil, log.New(io.Discard))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown game "checkers"`)
}

func TestResolveHostKeyPath(t *testing.T) {
	got, err := resolveHostKeyPath("/etc/connect4/key")
	require.NoError(t, err)
	assert.Equal(t, "/etc/connect4/key", got)

	t.Setenv("HOME", "/home/ada")
	got, err = resolveHostKeyPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/ada", ".connect4", "host_key"), got)
}

func TestSessionRuntimeConfig(t *testing.T) {
	assert.Equal(t, core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 20}, sessionRuntimeConfig(120, 40, 20))

	// A PTY without a size falls back to the defaults.
	assert.Equal(t, core.DefaultConfig(), sessionRuntimeConfig(0, 0, 0))
}

func TestSSHServer_SessionOptions(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	cfg.ShowHelp = false

	srv, err := NewSSHServer(cfg, nil, log.New(io.Discard))
	require.NoError(t, err)

	opts := srv.sessionOptions("ada", nil)
	assert.False(t, opts.ShowHelp)
	assert.True(t, opts.Mouse)
	assert.Nil(t, opts.Store)
	require.NotNil(t, opts.Logger)
}

// fakeSession is an SSH session that only knows its user and terminal.
// Calling any other method panics.
type fakeSession struct {
	ssh.Session

	user   string
	pty    ssh.Pty
	hasPty bool
}

func (s fakeSession) User() string { return s.user }

func (s fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return s.pty, nil, s.hasPty
}

func (s fakeSession) Context() ssh.Context { return fakeContext{} }

// fakeContext carries no values.
type fakeContext struct {
	ssh.Context
}

func (fakeContext) Value(any) any { return nil }

func newTestSSHServer(t *testing.T, logger *log.Logger) *SSHServer {
	t.Helper()

	cfg := DefaultSSHServerConfig()
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	srv, err := NewSSHServer(cfg, nil, logger)
	require.NoError(t, err)
	return srv
}

func TestSSHServer_TeaHandlerBuildsModelPerSession(t *testing.T) {
	srv := newTestSSHServer(t, log.New(io.Discard))
	sess := fakeSession{
		user:   "ada",
		pty:    ssh.Pty{Window: ssh.Window{Width: 100, Height: 30}},
		hasPty: true,
	}

	model, opts := srv.teaHandler(sess)
	require.NotNil(t, model)
	m, ok := model.(Model)
	require.True(t, ok)
	assert.Equal(t, 100, m.config.ScreenW)
	assert.Equal(t, 30, m.height)
	assert.Equal(t, core.DefaultConfig().TickRate, m.config.TickRate)
	assert.Equal(t, "connect4", m.game.ID())
	// Alt screen and mouse.
	assert.Len(t, opts, 2)

	other, _ := srv.teaHandler(sess)
	assert.NotSame(t, m.game, other.(Model).game, "sessions must not share a game")
}

func TestSSHServer_TeaHandlerWithoutMouse(t *testing.T) {
	srv := newTestSSHServer(t, log.New(io.Discard))
	srv.config.Mouse = false

	model, opts := srv.teaHandler(fakeSession{user: "ada", hasPty: true})
	require.NotNil(t, model)
	assert.Len(t, opts, 1)
}

func TestSSHServer_TeaHandlerRefusesSessionWithoutPTY(t *testing.T) {
	var buf bytes.Buffer
	srv := newTestSSHServer(t, log.New(&buf))

	model, opts := srv.teaHandler(fakeSession{user: "ada"})
	assert.Nil(t, model)
	assert.Nil(t, opts)
	assert.Contains(t, buf.String(), "no PTY requested")
	assert.Contains(t, buf.String(), "ada")
}
