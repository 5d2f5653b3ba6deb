package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"

	perrors "protexai/internal/errors"
	"protexai/internal/launcher"
	"protexai/internal/parser"
	"protexai/internal/render"
	"protexai/internal/rules"
	"protexai/internal/runtime"
	"protexai/internal/ui"
)

// DefaultROIs are the two monitored zones of the reference camera deployment,
// in 1920x1080 pixel coordinates.
var DefaultROIs = [][]orb.Point{
	{{885, 85}, {834, 246}, {1228, 260}, {1139, 77}},
	{{181, 288}, {165, 522}, {612, 510}, {544, 246}},
}

const (
	DefaultFrameWidth  = 1920
	DefaultFrameHeight = 1080
)

// Launch validates the filesystem preconditions in baseDir, then runs the
// analytics container in the foreground. Returns the container's exit status.
func Launch(ctx context.Context, baseDir string) (int64, error) {
	console := ui.NewConsole()
	slog.Info("Starting launch workflow", "baseDir", baseDir)

	console.PrintStep("🚧 Checking prerequisites")

	dockerRuntime, err := runtime.NewDockerRuntime()
	if err != nil {
		return -1, perrors.NewLaunchError(
			"Failed to initialize the container runtime",
			err.Error(),
			"Make sure the Docker daemon is running and DOCKER_HOST is reachable",
			err,
		)
	}

	l, err := launcher.New(baseDir, dockerRuntime)
	if err != nil {
		return -1, fmt.Errorf("launcher initialization failed: %w", err)
	}

	console.PrintStep(fmt.Sprintf("🐳 Launching %s", launcher.ContainerImage))

	status, err := l.Launch(ctx)
	if err != nil {
		return status, err
	}

	if status == 0 {
		console.PrintSuccess(fmt.Sprintf("✅ Container exited cleanly, results in %s/", launcher.OutDirName))
	} else {
		console.PrintWarning(fmt.Sprintf("Container exited with status %d", status))
	}
	slog.Info("Launch workflow completed", "status", status)
	return status, nil
}

// Render runs the analytics pipeline locally: parses an exported annotations
// file, evaluates the Car-and-Person rule per frame, and writes annotated
// frames into the out directory under baseDir.
func Render(ctx context.Context, baseDir, annotationsPath, roisPath string) error {
	console := ui.NewConsole()
	slog.Info("Starting render workflow", "annotations", annotationsPath, "baseDir", baseDir)

	// The render path consumes the same env file the container receives;
	// absent file just means notifications stay disabled.
	loadEnvFile(filepath.Join(baseDir, launcher.EnvFileName))

	console.PrintStep("📋 Stage 1: Parsing annotations")
	ann, err := parser.Parse(annotationsPath)
	if err != nil {
		return perrors.NewParseError(
			"Failed to parse annotations file",
			err.Error(),
			"Check the annotations export for missing or malformed fields",
			err,
		)
	}
	console.PrintInfo(fmt.Sprintf("Camera %q, %d frames", ann.CamName, len(ann.Frames)))

	rois := DefaultROIs
	if roisPath != "" {
		rois, err = parser.ParseROIs(roisPath)
		if err != nil {
			return perrors.NewConfigError(
				"Failed to load regions of interest",
				err.Error(),
				"Check the ROI override file's structure",
				err,
			)
		}
	}

	notifier, err := NewNotifierFactory().FromEnv()
	if err != nil {
		return perrors.NewConfigError(
			"Failed to configure notifications",
			err.Error(),
			"Set SLACK_CHANNEL alongside SLACK_TOKEN in "+launcher.EnvFileName,
			err,
		)
	}

	console.PrintStep("🎞️  Stage 2: Evaluating rules and rendering frames")
	rule := rules.NewCarAndPerson(rois, notifier)
	outDir := filepath.Join(baseDir, launcher.OutDirName)
	renderer := render.New(rule, outDir, DefaultFrameWidth, DefaultFrameHeight)

	if err := renderer.Render(ctx, ann); err != nil {
		return perrors.NewRenderError(
			"Failed to render annotated frames",
			err.Error(),
			"Check write permissions on the output directory",
			err,
		)
	}

	console.PrintSuccess(fmt.Sprintf("✅ Rendered %d frames to %s (%d rule violations)",
		len(ann.Frames), outDir, rule.Violations()))
	slog.Info("Render workflow completed", "frames", len(ann.Frames), "violations", rule.Violations())
	return nil
}

// loadEnvFile loads KEY=VALUE pairs into the process environment when the
// file exists. Existing environment variables win.
func loadEnvFile(envPath string) {
	if _, err := os.Stat(envPath); err != nil {
		return
	}
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Failed to load environment file", "path", envPath, "error", err)
	}
}
