package launcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	perrors "protexai/internal/errors"
	"protexai/pkg/runtime"
)

const (
	// EnvFileName is the environment file the analytics container is fed.
	// Its contents are opaque to the launcher.
	EnvFileName = ".env1"

	// EnvExampleFileName is the template users copy when the env file is missing.
	EnvExampleFileName = ".env1.example"

	// OutDirName is the host directory bind-mounted into the container.
	OutDirName = "out"

	// ContainerImage is the analytics image reference.
	ContainerImage = "kryptoblack/protexai:latest"

	// ContainerOutDir is the mount destination inside the container.
	ContainerOutDir = "/app/out"
)

// Launcher validates the filesystem preconditions and runs the analytics
// container in the foreground, propagating its exit status.
type Launcher struct {
	baseDir          string
	containerRuntime runtime.ContainerRuntime

	// Container output destinations; default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Launcher rooted at baseDir. The directory is resolved to an
// absolute path up front because bind-mount sources must be absolute.
func New(baseDir string, containerRuntime runtime.ContainerRuntime) (*Launcher, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", baseDir, err)
	}

	return &Launcher{
		baseDir:          absBase,
		containerRuntime: containerRuntime,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
	}, nil
}

// Launch checks the preconditions, then runs the container and returns its
// exit status. The container runtime is never invoked when a precondition
// fails.
func (l *Launcher) Launch(ctx context.Context) (int64, error) {
	envPath := filepath.Join(l.baseDir, EnvFileName)
	if err := checkEnvFile(envPath); err != nil {
		return -1, err
	}

	outDir := filepath.Join(l.baseDir, OutDirName)
	if err := ensureOutDir(outDir); err != nil {
		return -1, err
	}

	envLines, err := readEnvFile(envPath)
	if err != nil {
		return -1, perrors.NewFileSystemError(
			"Failed to read environment file",
			fmt.Sprintf("Could not read %s", envPath),
			"Check the file's permissions",
			err,
		)
	}

	// docker run pulls implicitly when the image is missing locally; a pull
	// failure is not fatal here so an already-present image still runs offline.
	if err := l.containerRuntime.PullImage(ctx, ContainerImage); err != nil {
		slog.Warn("Image pull failed, attempting to run local image", "image", ContainerImage, "error", err)
	}

	opts := runtime.RunOptions{
		Image:      ContainerImage,
		Env:        envLines,
		Mounts:     map[string]string{outDir: ContainerOutDir},
		AutoRemove: true,
	}

	status, err := l.containerRuntime.RunContainer(ctx, opts, l.Stdout, l.Stderr)
	if err != nil {
		return status, perrors.NewRuntimeError(
			"Failed to run analytics container",
			err.Error(),
			"Make sure the Docker daemon is running and the image is reachable",
			err,
		)
	}

	slog.Info("Analytics container finished", "image", ContainerImage, "status", status)
	return status, nil
}

// checkEnvFile verifies that the environment file exists and is a regular file.
func checkEnvFile(envPath string) error {
	info, err := os.Stat(envPath)
	if os.IsNotExist(err) {
		return perrors.NewEnvFileError(
			"Failed to locate environment file",
			fmt.Sprintf("No %s file found at %s", EnvFileName, envPath),
			fmt.Sprintf("Copy %s to %s and fill in the values", EnvExampleFileName, EnvFileName),
			err,
		)
	}
	if err != nil {
		return perrors.NewFileSystemError(
			"Failed to inspect environment file",
			fmt.Sprintf("Could not stat %s", envPath),
			"Check the file's permissions",
			err,
		)
	}
	if info.IsDir() {
		return perrors.NewEnvFileError(
			"Failed to locate environment file",
			fmt.Sprintf("%s is a directory, expected a file", envPath),
			fmt.Sprintf("Copy %s to %s and fill in the values", EnvExampleFileName, EnvFileName),
			fmt.Errorf("%s is a directory", envPath),
		)
	}
	return nil
}

// ensureOutDir creates the output directory when absent. The path has a
// single segment under the base directory, so a non-recursive Mkdir suffices.
func ensureOutDir(outDir string) error {
	info, err := os.Stat(outDir)
	if err == nil {
		if !info.IsDir() {
			return perrors.NewFileSystemError(
				"Failed to prepare output directory",
				fmt.Sprintf("%s exists but is not a directory", outDir),
				"Remove or rename the conflicting file",
				fmt.Errorf("%s is not a directory", outDir),
			)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return perrors.NewFileSystemError(
			"Failed to inspect output directory",
			fmt.Sprintf("Could not stat %s", outDir),
			"Check the directory's permissions",
			err,
		)
	}

	if err := os.Mkdir(outDir, 0750); err != nil {
		return perrors.NewFileSystemError(
			"Failed to create output directory",
			fmt.Sprintf("Could not create %s", outDir),
			"Check write permissions on the working directory",
			err,
		)
	}
	slog.Info("Created output directory", "path", outDir)
	return nil
}

// readEnvFile reads the env file's KEY=VALUE lines the way the docker CLI
// handles --env-file: blank lines and comments are skipped, everything else
// passes through verbatim.
func readEnvFile(envPath string) ([]string, error) {
	f, err := os.Open(envPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
