package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath resolves name the way Execute would, returning the binary path.
	LookPath(name string) (string, error)
}
