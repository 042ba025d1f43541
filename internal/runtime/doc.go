// Package runtime manages containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon and provides base image
// resolution and container creation. Base images are either pulled from a
// registry by normalized reference or imported from a local OCI archive
// tagged with a deterministic content hash, then unpacked for the target
// platform.
//
// Each [Container] wraps a running containerd task. Commands can be
// executed inside the container, files can be copied in and out as tar
// streams, and the final filesystem state can be committed and exported
// as a new OCI archive carrying advisory metadata (exposed port,
// entrypoint). When the container is no longer needed it should be
// destroyed to release its snapshot and task resources.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "bakerd")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	if err := rt.PullImage(ctx, "docker.io/library/python:3.9", "linux/amd64"); err != nil {
//	    return err
//	}
//
//	ctr, err := rt.StartContainer(ctx, "docker.io/library/python:3.9", "bake-1", "linux/amd64")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "/bin/sh", "echo hello", nil, "")
//	if err != nil {
//	    return err
//	}
//
//	if err := ctr.Export(ctx, "dist", runtime.ExportConfig{Port: 8000}); err != nil {
//	    return err
//	}
package runtime
