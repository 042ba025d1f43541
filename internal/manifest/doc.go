// Package manifest defines the bake plan and dependency manifest models.
//
// A [Plan] is the declarative input of a build: the base runtime image,
// the working directory, the files to stage, the dependency manifest to
// install, and the advisory metadata (port, entrypoint) recorded on the
// output image. Plans are authored in YAML and validated on load.
//
// The dependency manifest is a flat, ordered list of package names with
// optional version constraints, one per line, in the style of a pip
// requirements file. The parser produces the declared set that the build
// pipeline later verifies against the container's installed packages.
//
// Example usage:
//
//	plan, err := manifest.Load("bake.yaml")
//	if err != nil {
//	    return err
//	}
//
//	deps, err := manifest.LoadRequirements(filepath.Join(root, plan.Requirements))
//	if err != nil {
//	    return err
//	}
package manifest
