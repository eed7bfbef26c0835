package termsess

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

// startedShell is a running shell behind a PTY.
type startedShell struct {
	io     io.ReadWriteCloser
	resize func(rows, cols int) error
	kill   func() error
}

type starter func(shell string, args []string, env []string) (startedShell, error)

type session struct {
	id             schema.SessionID
	shell          startedShell
	tempKubeconfig string
	closeOnce      sync.Once
}

// Manager owns interactive shell sessions, each pinned to one kubeconfig
// context through a private KUBECONFIG copy.
type Manager struct {
	mu       sync.Mutex
	cfg      schema.ServiceConfig
	sessions map[schema.SessionID]*session
	start    starter
	onOutput func(schema.TerminalOutputEvent)
	onClosed func(schema.TerminalClosedEvent)
	log      pslog.Logger
}

// NewManager constructs a terminal session manager. Output and close
// callbacks may be nil.
func NewManager(cfg schema.ServiceConfig, onOutput func(schema.TerminalOutputEvent), onClosed func(schema.TerminalClosedEvent), logger pslog.Logger) *Manager {
	if onOutput == nil {
		onOutput = func(schema.TerminalOutputEvent) {}
	}
	if onClosed == nil {
		onClosed = func(schema.TerminalClosedEvent) {}
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Manager{
		cfg:      cfg,
		sessions: make(map[schema.SessionID]*session),
		start:    startPTY,
		onOutput: onOutput,
		onClosed: onClosed,
		log:      logger,
	}
}

func startPTY(shell string, args []string, env []string) (startedShell, error) {
	cmd := exec.Command(shell, args...)
	cmd.Env = append(os.Environ(), env...)
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		return startedShell{}, err
	}
	return startedShell{
		io: f,
		resize: func(rows, cols int) error {
			return pty.Setsize(f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
		},
		kill: func() error {
			return cmd.Process.Kill()
		},
	}, nil
}

// Create starts a shell session. When contextName is set the session gets a
// temp kubeconfig copy with current-context overridden, so kubectl inside
// the shell targets the tab's cluster without touching the shared file.
func (m *Manager) Create(contextName schema.ContextName, shell string) (schema.SessionID, error) {
	if shell == "" {
		shell = m.cfg.Shell
	}
	if _, err := os.Stat(shell); err != nil {
		return "", fmt.Errorf("%w: %s", schema.ErrShellNotFound, shell)
	}

	tempKubeconfig := ""
	if contextName != "" {
		path, err := m.writeTempKubeconfig(contextName)
		if err != nil {
			return "", err
		}
		tempKubeconfig = path
	}

	var args []string
	switch filepath.Base(shell) {
	case "bash", "zsh":
		args = []string{"-o", "emacs"}
	}
	var env []string
	if tempKubeconfig != "" {
		env = append(env, "KUBECONFIG="+tempKubeconfig)
	}

	started, err := m.start(shell, args, env)
	if err != nil {
		if tempKubeconfig != "" {
			_ = os.Remove(tempKubeconfig)
		}
		return "", fmt.Errorf("spawn shell: %w", err)
	}

	id := schema.SessionID(uuid.NewString())
	sess := &session{id: id, shell: started, tempKubeconfig: tempKubeconfig}
	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()
	m.log.Debug("terminal session created", "session", id, "context", contextName, "shell", shell)

	go m.readLoop(sess)
	return id, nil
}

func (m *Manager) readLoop(sess *session) {
	buf := make([]byte, 4096)
	for {
		n, err := sess.shell.io.Read(buf)
		if n > 0 {
			m.onOutput(schema.TerminalOutputEvent{SessionID: sess.id, Data: string(buf[:n])})
		}
		if err != nil {
			m.teardown(sess)
			return
		}
	}
}

// Write sends user input to the session's shell.
func (m *Manager) Write(id schema.SessionID, data string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return schema.ErrSessionNotFound
	}
	if _, err := io.WriteString(sess.shell.io, data); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}

// Resize adjusts the session's PTY dimensions.
func (m *Manager) Resize(id schema.SessionID, rows, cols int) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return schema.ErrSessionNotFound
	}
	if sess.shell.resize == nil {
		return nil
	}
	return sess.shell.resize(rows, cols)
}

// Close ends a session, killing the shell and removing its temp kubeconfig.
func (m *Manager) Close(id schema.SessionID) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return schema.ErrSessionNotFound
	}
	m.teardown(sess)
	return nil
}

// CloseAll ends every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.Unlock()
	for _, sess := range sessions {
		m.teardown(sess)
	}
}

func (m *Manager) teardown(sess *session) {
	sess.closeOnce.Do(func() {
		m.mu.Lock()
		delete(m.sessions, sess.id)
		m.mu.Unlock()
		if sess.shell.kill != nil {
			_ = sess.shell.kill()
		}
		_ = sess.shell.io.Close()
		if sess.tempKubeconfig != "" {
			_ = os.Remove(sess.tempKubeconfig)
		}
		m.onClosed(schema.TerminalClosedEvent{SessionID: sess.id})
		m.log.Debug("terminal session closed", "session", sess.id)
	})
}

// writeTempKubeconfig copies the configured kubeconfig with current-context
// replaced. The file is private to the session and deleted on close.
func (m *Manager) writeTempKubeconfig(contextName schema.ContextName) (string, error) {
	data, err := os.ReadFile(m.cfg.KubeconfigPath)
	if err != nil {
		return "", fmt.Errorf("read kubeconfig: %w", err)
	}
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return "", fmt.Errorf("parse kubeconfig: %w", err)
	}
	if config == nil {
		config = map[string]any{}
	}
	config["current-context"] = string(contextName)
	modified, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("serialize kubeconfig: %w", err)
	}
	path := filepath.Join(os.TempDir(), "kubedeck-kubeconfig-"+uuid.NewString())
	if err := os.WriteFile(path, modified, 0o600); err != nil {
		return "", fmt.Errorf("write temp kubeconfig: %w", err)
	}
	return path, nil
}
