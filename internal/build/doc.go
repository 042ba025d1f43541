// Package build executes bake plans against the container runtime.
//
// A plan describes a single image: its base runtime, working directory,
// staged files, dependency manifest, and advisory metadata. The pipeline
// is strictly feed-forward: resolve the base, start a build container,
// establish the working directory, refresh the package index
// (best-effort), copy the manifest and sources, install and verify
// dependencies, and export the committed filesystem as an OCI archive.
// There is one terminal outcome: a published artifact, or a failure that
// publishes nothing.
//
// Container operations are delegated to the runtime package. The index
// refresh is the only non-fatal step; its failures are collected as
// warnings on the [Result] rather than silently dropped.
//
// Example usage:
//
//	result, err := build.Run(ctx, rt, build.Options{
//	    Plan:     plan,
//	    Resource: "my-service",
//	    Output:   "dist",
//	    Root:     ".",
//	})
//	if err != nil {
//	    return err
//	}
package build
