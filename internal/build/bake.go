package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bakehq/bakerd/internal/manifest"
	"github.com/bakehq/bakerd/internal/runtime"
)

// Holds shared state for executing one plan.
type bake struct {
	rt       *runtime.Runtime // Container runtime for image and container operations.
	plan     *manifest.Plan   // Plan under execution.
	resource string           // Resource name, used as a prefix for the container ID.
	output   string           // Output directory for the final build artifact.
	root     string           // Build context, root for resolving copy sources.
	platform string           // Target platform.
	state    *execState       // Shell, workdir, and env for step commands.
	warnings []string         // Non-fatal problems collected along the way.
}

// Creates a new [bake] from the given options.
func newBake(rt *runtime.Runtime, opts Options) *bake {
	return &bake{
		rt:       rt,
		plan:     opts.Plan,
		resource: opts.Resource,
		output:   opts.Output,
		root:     opts.Root,
		platform: opts.Platform,
		state:    newExecState(opts.Plan),
	}
}

// Executes the plan end-to-end against the container runtime.
//
// Each step must complete before the next starts. The build container is
// destroyed when the build completes, whether or not it succeeded.
func (b *bake) run(ctx context.Context) (*Result, error) {
	deps, err := b.loadDependencies()
	if err != nil {
		return nil, err
	}

	if !b.plan.Pinned() {
		b.warn(fmt.Sprintf("base %q does not pin an exact version; the build is not reproducible", b.plan.Base))
	}

	tag, err := b.resolveBase(ctx)
	if err != nil {
		return nil, err
	}

	ctr, err := b.rt.StartContainer(ctx, tag, b.containerID(), b.platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	defer ctr.Destroy(ctx)

	if err := ctr.MkdirAll(ctx, b.plan.Workdir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	b.refreshIndex(ctx, ctr)

	if err := b.copySources(ctx, ctr); err != nil {
		return nil, err
	}

	installed, err := b.installDependencies(ctx, ctr, deps)
	if err != nil {
		return nil, err
	}

	if err := ctr.Stop(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	if err := ctr.Export(ctx, b.output, runtime.ExportConfig{
		Entrypoint: b.plan.Entrypoint,
		Port:       b.plan.Port,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	return &Result{
		Output:    filepath.Join(b.output, runtime.ExportFilename),
		Installed: installed,
		Warnings:  b.warnings,
	}, nil
}

// Reads the dependency manifest from the build context.
//
// A missing manifest file is a copy failure: the path is part of the build
// context and required to exist at build time. An empty manifest yields an
// empty list and the install step is skipped.
func (b *bake) loadDependencies() ([]manifest.Dependency, error) {
	if b.plan.Requirements == "" {
		return nil, nil
	}

	path := filepath.Join(b.root, b.plan.Requirements)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCopy, err)
	}

	return manifest.LoadRequirements(path)
}

// Resolves the plan's base runtime and returns the image tag to start the
// build container from.
//
// Registry references are pulled; local OCI archives are imported under a
// deterministic tag. Both paths unpack the layers for the target platform.
func (b *bake) resolveBase(ctx context.Context) (string, error) {
	if b.plan.BaseArchive != "" {
		path := b.plan.BaseArchive
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.root, path)
		}

		tag := runtime.ArchiveTag(path)
		if err := b.rt.ImportImage(ctx, path, tag, b.platform); err != nil {
			return "", err
		}
		return tag, nil
	}

	ref, err := b.plan.BaseReference()
	if err != nil {
		return "", err
	}

	if err := b.rt.PullImage(ctx, ref, b.platform); err != nil {
		return "", err
	}
	return ref, nil
}

// Refreshes the base runtime's package index, when the plan declares a
// refresh command.
//
// The refresh is best-effort: a failure is surfaced as an explicit warning
// on the result and never aborts the build. It also never masks a later
// dependency-resolution failure; the install step runs and reports its own
// outcome regardless.
func (b *bake) refreshIndex(ctx context.Context, ctr *runtime.Container) {
	if b.plan.Refresh == "" {
		return
	}

	slog.Debug("refreshing package index", "command", b.plan.Refresh)

	result, err := ctr.Exec(ctx, b.state.shell, b.plan.Refresh, b.state.environ(), b.state.workdir)
	if err != nil {
		b.warn(fmt.Sprintf("package index refresh failed: %v", err))
		return
	}
	if result.ExitCode != 0 {
		b.warn(fmt.Sprintf("package index refresh exited with code %d: %s", result.ExitCode, result.Stderr))
	}
}

// Copies the dependency manifest and every plan source into the working
// directory, preserving relative paths.
//
// The manifest is copied first so that the install step mirrors the staging
// order of the plan. A missing source path fails the build.
func (b *bake) copySources(ctx context.Context, ctr *runtime.Container) error {
	if b.plan.Requirements != "" {
		if err := b.copyIntoContainer(ctx, ctr, b.plan.Requirements); err != nil {
			return err
		}
	}

	for _, src := range b.plan.Copy {
		if err := b.copyIntoContainer(ctx, ctr, src); err != nil {
			return err
		}
	}

	return nil
}

// Installs the declared dependencies inside the container and verifies them.
//
// The installer's exit code alone is not trusted: after a successful install
// the container's package listing is checked against the declared set, and
// any missing name fails the build. Partial installs are never success.
// Returns the verified installed set, one "name==version" entry per declared
// dependency, in declaration order.
func (b *bake) installDependencies(ctx context.Context, ctr *runtime.Container, deps []manifest.Dependency) ([]string, error) {
	if len(deps) == 0 {
		slog.Debug("no dependencies declared, skipping install")
		return nil, nil
	}

	command := installCommand(b.plan.Installer, b.manifestPath())
	slog.Info("installing dependencies", "count", len(deps), "command", command)

	result, err := ctr.Exec(ctx, b.state.shell, command, b.state.environ(), b.state.workdir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDependencyResolution, err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("%w: installer exited with code %d: %s", ErrDependencyResolution, result.ExitCode, result.Stderr)
	}

	return b.verifyInstalled(ctx, ctr, deps)
}

// Lists the container's installed packages and checks the declared set
// against it.
func (b *bake) verifyInstalled(ctx context.Context, ctr *runtime.Container, deps []manifest.Dependency) ([]string, error) {
	result, err := ctr.Exec(ctx, b.state.shell, b.plan.Lister, b.state.environ(), b.state.workdir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDependencyResolution, err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("%w: package listing exited with code %d: %s", ErrDependencyResolution, result.ExitCode, result.Stderr)
	}

	installed := parseInstalled(result.Stdout)

	if missing := missingDependencies(deps, installed); len(missing) > 0 {
		return nil, fmt.Errorf("%w: declared but not installed: %v", ErrDependencyResolution, missing)
	}

	return installedSet(deps, installed), nil
}

// Returns the dependency manifest's path inside the container.
func (b *bake) manifestPath() string {
	return containerPath(b.plan.Requirements, b.plan.Workdir)
}

// Returns a unique container ID for this build, scoped to the resource.
//
// The random suffix isolates concurrent builds of the same resource: each
// build gets an independent container and snapshot.
func (b *bake) containerID() string {
	return fmt.Sprintf("%s-bake-%s", b.resource, uuid.NewString()[:8])
}

// Records a non-fatal problem on the result and in the log.
func (b *bake) warn(msg string) {
	slog.Warn(msg)
	b.warnings = append(b.warnings, msg)
}
