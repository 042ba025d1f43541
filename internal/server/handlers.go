package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/bakehq/bakerd/internal"
	"github.com/bakehq/bakerd/internal/build"
	"github.com/bakehq/bakerd/internal/protocol"
	"github.com/bakehq/bakerd/internal/runtime"
)

// Runs a bake and responds with the artifact location, the installed
// dependency set, and any warnings raised along the way.
func (s *Server) handleBuild(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.BuildRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	if req.Plan == nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: "build request has no plan"})
		return
	}

	result, err := build.Run(ctx, s.runtime, build.Options{
		Plan:     req.Plan,
		Resource: req.Resource,
		Output:   req.Output,
		Root:     req.Root,
		Platform: req.Platform,
	})
	if err != nil {
		slog.Error("build failed", "resource", req.Resource, "error", err)
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.builds++
	s.mu.Unlock()

	s.respond(conn, protocol.CmdOK, &protocol.BuildResult{
		Output:    result.Output,
		Installed: result.Installed,
		Warnings:  result.Warnings,
	})
}

// Imports an OCI image archive into the containerd image store under the
// requested tag.
func (s *Server) handleImageImport(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ImageImportRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	tag := req.Tag
	if tag == "" {
		tag = runtime.ArchiveTag(req.Path)
	}

	if err := s.runtime.ImportImage(ctx, req.Path, tag, runtime.DefaultPlatform()); err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.respond(conn, protocol.CmdOK, &protocol.ImageImportRequest{Path: req.Path, Tag: tag})
}

// Removes an image from the containerd image store.
func (s *Server) handleImageDestroy(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ImageDestroyRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	if err := s.runtime.DestroyImage(ctx, req.Tag); err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.respond(conn, protocol.CmdOK, nil)
}

// Reports the state of a build container, so clients can poll a build in
// flight by the container ID logged when it started.
func (s *Server) handleContainerStatus(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ContainerStatusRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	if req.ID == "" {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: "container status request has no id"})
		return
	}

	state, err := s.runtime.Container(req.ID).Status(ctx)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.respond(conn, protocol.CmdOK, &protocol.ContainerStatusResult{ID: req.ID, State: state})
}

// Reports daemon status.
func (s *Server) handleStatus(conn net.Conn) {
	s.mu.Lock()
	builds := s.builds
	s.mu.Unlock()

	s.respond(conn, protocol.CmdOK, &protocol.StatusResult{
		Running: true,
		Version: internal.VersionString(),
		Pid:     os.Getpid(),
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
		Builds:  builds,
	})
}

// Acknowledges the shutdown request, then stops the server.
func (s *Server) handleShutdown(conn net.Conn) {
	s.respond(conn, protocol.CmdOK, nil)

	go func() {
		if err := s.Stop(); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()
}
