package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bakehq/bakerd/internal/build"
	"github.com/bakehq/bakerd/internal/manifest"
	"github.com/bakehq/bakerd/internal/paths"
	"github.com/bakehq/bakerd/internal/runtime"
	"github.com/bakehq/bakerd/internal/server"
)

// Represents the 'bakerd build' command.
//
// Runs a single bake directly against containerd without starting the
// daemon. The plan's copy and requirements paths are resolved relative to
// the plan file's directory unless --root is given.
type BuildCmd struct {
	Plan     string `arg:"" help:"Path to the bake plan." type:"existingfile"`
	Root     string `help:"Build context directory. Defaults to the plan's directory." placeholder:"DIR" type:"existingdir"`
	Output   string `short:"o" env:"BAKERD_OUTPUT" help:"Directory to write the image archive into." placeholder:"DIR"`
	Platform string `help:"Target platform, e.g. linux/amd64. Defaults to the host platform."`
}

// Executes the build command.
func (c *BuildCmd) Run(ctx context.Context) error {
	plan, err := manifest.Load(c.Plan)
	if err != nil {
		return err
	}

	root := c.Root
	if root == "" {
		root = filepath.Dir(c.Plan)
	}

	output := c.Output
	if output == "" {
		output = filepath.Join(paths.Images(), resourceName(c.Plan))
	}

	address := RootCmd.Containerd
	if address == "" {
		address = server.DefaultContainerdAddress
	}

	namespace := RootCmd.Namespace
	if namespace == "" {
		namespace = server.DefaultContainerdNamespace
	}

	rt, err := runtime.New(address, namespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := build.Run(ctx, rt, build.Options{
		Plan:     plan,
		Resource: resourceName(c.Plan),
		Output:   output,
		Root:     root,
		Platform: c.Platform,
	})
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		slog.Warn(warning)
	}

	slog.Info("bake complete", "installed", len(result.Installed))
	fmt.Println(result.Output)

	return nil
}

// Derives a resource name from the plan file path, used to name the build
// container and the default output directory.
func resourceName(planPath string) string {
	base := filepath.Base(filepath.Dir(planPath))
	if base == "." || base == string(filepath.Separator) {
		base = strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
	}
	return base
}
