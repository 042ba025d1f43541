// Package server implements the bakerd daemon.
//
// The daemon listens on a Unix domain socket and accepts newline-delimited
// JSON commands as defined by the protocol package. Each connection carries
// a single request and receives a single response. Build commands are
// executed against the containerd-backed runtime and produce OCI image
// archives on disk.
package server
