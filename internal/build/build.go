package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bakehq/bakerd/internal/manifest"
	"github.com/bakehq/bakerd/internal/paths"
	"github.com/bakehq/bakerd/internal/runtime"
)

// Controls plan execution.
type Options struct {
	Plan     *manifest.Plan // Plan to execute.
	Resource string         // Resource name, used as a prefix for container IDs.
	Output   string         // Directory for the exported image.
	Root     string         // Build context, for resolving copy sources and the dependency manifest.
	Platform string         // Target platform (e.g., "linux/amd64"). Defaults to host.
}

// Returned after successful plan execution.
type Result struct {
	Output    string   // Path of the exported image archive.
	Installed []string // Verified installed-dependency set, one "name==version" per declared dependency.
	Warnings  []string // Non-fatal problems surfaced during the build.
}

// Executes a bake plan against the container runtime.
//
// The pipeline is strictly linear: resolve the base runtime, start a build
// container, establish the working directory, refresh the package index
// (best-effort), copy the dependency manifest and sources, install and
// verify dependencies, and export the result with its advisory metadata.
// Any fatal step failure aborts the build; no artifact is published.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	if opts.Platform == "" {
		opts.Platform = runtime.DefaultPlatform()
	}

	slog.Info("executing plan",
		"resource", opts.Resource,
		"output", opts.Output,
		"platform", opts.Platform,
	)

	if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	return newBake(rt, opts).run(ctx)
}
