package protocol

import "github.com/bakehq/bakerd/internal/manifest"

// Asks the daemon to execute a bake plan.
type BuildRequest struct {
	Plan     *manifest.Plan `json:"plan"`               // Plan to execute.
	Resource string         `json:"resource"`           // Resource name, used as a prefix for container IDs.
	Root     string         `json:"root"`               // Build context directory for resolving copy sources.
	Output   string         `json:"output"`             // Directory for the exported image.
	Platform string         `json:"platform,omitempty"` // Target platform (e.g., "linux/amd64"). Empty uses the host.
}

// Returned after a successful build.
type BuildResult struct {
	Output    string   `json:"output"`              // Path of the exported image archive.
	Installed []string `json:"installed,omitempty"` // Verified installed-dependency set ("name==version").
	Warnings  []string `json:"warnings,omitempty"`  // Non-fatal problems surfaced during the build.
}

// Asks the daemon to import an OCI archive under a tag.
type ImageImportRequest struct {
	Path string `json:"path"` // Path to the OCI archive.
	Tag  string `json:"tag"`  // Tag for the imported image.
}

// Asks the daemon to remove an image and its containers.
type ImageDestroyRequest struct {
	Tag string `json:"tag"`
}

// Asks the daemon for the state of a build container.
type ContainerStatusRequest struct {
	ID string `json:"id"` // Containerd container ID, as logged when the build starts.
}

// Reports a build container's state.
type ContainerStatusResult struct {
	ID    string         `json:"id"`
	State ContainerState `json:"state"`
}

// Describes the daemon's state.
type StatusResult struct {
	Running bool   `json:"running"`
	Version string `json:"version"`
	Pid     int    `json:"pid"`
	Uptime  string `json:"uptime"`
	Builds  int    `json:"builds"`
}

// Carries a failure message back to the client.
type ErrorResult struct {
	Message string `json:"message"`
}
