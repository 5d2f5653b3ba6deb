// Located in pkg/runtime/runtime.go
package runtime

import (
	"context"
	"io"
)

// RunOptions defines the parameters for running a container.
type RunOptions struct {
	Image string
	Cmd   []string

	// Env holds KEY=VALUE lines passed through to the container process
	// verbatim, the way the docker CLI forwards an --env-file.
	Env []string

	// Mounts maps absolute host paths to their in-container destinations.
	Mounts map[string]string

	// AutoRemove removes the container filesystem once it exits.
	AutoRemove bool

	WorkingDir string
}

// ContainerRuntime defines the contract for container operations.
type ContainerRuntime interface {
	PullImage(ctx context.Context, image string) error

	// RunContainer creates and starts a container, streams its output to
	// stdout and stderr, waits for it to exit in the foreground, and
	// returns the container's exit status.
	RunContainer(ctx context.Context, opts RunOptions, stdout, stderr io.Writer) (int64, error)
}
