package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"protexai/pkg/runtime"
)

// DockerRuntime implements the ContainerRuntime interface using Docker client.
type DockerRuntime struct {
	client *client.Client
}

// NewDockerRuntime creates a new DockerRuntime instance using client.FromEnv.
func NewDockerRuntime() (*DockerRuntime, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	// Check if Docker daemon is accessible
	ctx := context.Background()
	_, err = dockerClient.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &DockerRuntime{
		client: dockerClient,
	}, nil
}

// PullImage pulls a Docker image.
func (d *DockerRuntime) PullImage(ctx context.Context, imageName string) error {
	slog.Info("Pulling Docker image", "image", imageName)

	reader, err := d.client.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}
	defer reader.Close()

	// Drain the pull progress stream without printing it
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to stream image pull output: %w", err)
	}

	slog.Info("Successfully pulled Docker image", "image", imageName)
	return nil
}

// RunContainer creates and starts a container in the foreground, streams its
// output, and returns the exit status once the container stops.
func (d *DockerRuntime) RunContainer(ctx context.Context, opts runtime.RunOptions, stdout, stderr io.Writer) (int64, error) {
	slog.Info("Running container", "image", opts.Image, "autoRemove", opts.AutoRemove)

	var mounts []mount.Mount
	for hostPath, containerPath := range opts.Mounts {
		mounts = append(mounts, mount.Mount{
			Type:   mount.TypeBind,
			Source: hostPath,
			Target: containerPath,
		})
	}

	containerConfig := &container.Config{
		Image:      opts.Image,
		Cmd:        opts.Cmd,
		Env:        opts.Env,
		WorkingDir: opts.WorkingDir,
	}

	hostConfig := &container.HostConfig{
		Mounts:     mounts,
		AutoRemove: opts.AutoRemove,
	}

	resp, err := d.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return -1, fmt.Errorf("failed to create container: %w", err)
	}

	containerID := resp.ID

	// Subscribe to the wait event before starting. With AutoRemove the
	// container can vanish as soon as it exits, so waiting after the fact
	// races against the daemon's cleanup.
	statusCh, waitErrCh := d.client.ContainerWait(ctx, containerID, container.WaitConditionNextExit)

	if err := d.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		if !opts.AutoRemove {
			if removeErr := d.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); removeErr != nil {
				slog.Error("Failed to remove container after start failure", "containerID", containerID, "error", removeErr)
			}
		}
		return -1, fmt.Errorf("failed to start container: %w", err)
	}

	if err := d.streamLogs(ctx, containerID, stdout, stderr); err != nil {
		slog.Warn("Failed to stream container output", "containerID", containerID, "error", err)
	}

	select {
	case err := <-waitErrCh:
		return -1, fmt.Errorf("failed to wait for container: %w", err)
	case status := <-statusCh:
		if status.Error != nil {
			return status.StatusCode, fmt.Errorf("container wait error: %s", status.Error.Message)
		}
		slog.Info("Container exited", "containerID", containerID, "status", status.StatusCode)
		return status.StatusCode, nil
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}

// streamLogs follows the container's output and demuxes the daemon's
// multiplexed stream onto the provided writers.
func (d *DockerRuntime) streamLogs(ctx context.Context, containerID string, stdout, stderr io.Writer) error {
	logs, err := d.client.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to get container logs: %w", err)
	}
	defer logs.Close()

	if _, err := stdcopy.StdCopy(stdout, stderr, logs); err != nil && err != io.EOF {
		return fmt.Errorf("error reading container output: %w", err)
	}
	return nil
}
