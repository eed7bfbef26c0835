package schema

import "errors"

var (
	// ErrInvalidRequest indicates a malformed request payload.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTabNotFound indicates a requested tab could not be found.
	ErrTabNotFound = errors.New("tab not found")
	// ErrPanelNotFound indicates a requested panel could not be found.
	ErrPanelNotFound = errors.New("panel not found")
	// ErrContextNotFound indicates a kubeconfig context could not be found.
	ErrContextNotFound = errors.New("context not found")
	// ErrNodeNotFound indicates a connection-tree node could not be found.
	ErrNodeNotFound = errors.New("node not found")
	// ErrSessionNotFound indicates a terminal session could not be found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrWatchNotFound indicates a resource watch could not be found.
	ErrWatchNotFound = errors.New("watch not found")
	// ErrUnsupportedKind indicates a resource kind the client cannot serve.
	ErrUnsupportedKind = errors.New("unsupported resource kind")
	// ErrNamespaceRequired indicates a namespaced operation without a namespace.
	ErrNamespaceRequired = errors.New("namespace required")
	// ErrClientUnavailable indicates no cluster client is configured.
	ErrClientUnavailable = errors.New("cluster client not configured")
	// ErrShellNotFound indicates the configured shell binary does not exist.
	ErrShellNotFound = errors.New("shell not found")
)
