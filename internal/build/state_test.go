package build

import (
	"testing"

	"github.com/bakehq/bakerd/internal/manifest"
)

func TestNewExecState(t *testing.T) {
	p := &manifest.Plan{
		Shell:   "/bin/bash",
		Workdir: "/srv",
		Env:     map[string]string{"A": "1"},
	}

	s := newExecState(p)
	if s.shell != "/bin/bash" {
		t.Errorf("shell = %q, want /bin/bash", s.shell)
	}
	if s.workdir != "/srv" {
		t.Errorf("workdir = %q, want /srv", s.workdir)
	}
	if s.env["A"] != "1" {
		t.Errorf("env = %v", s.env)
	}

	// The plan's env map must not alias the state's.
	p.Env["A"] = "mutated"
	if s.env["A"] != "1" {
		t.Error("plan env mutation leaked into state")
	}
}

func TestEnviron(t *testing.T) {
	s := newExecState(&manifest.Plan{})
	if len(s.environ()) != 0 {
		t.Fatal("empty state should produce no environ entries")
	}

	s = newExecState(&manifest.Plan{
		Env: map[string]string{"PATH": "/usr/bin", "HOME": "/root"},
	})
	env := s.environ()
	if len(env) != 2 {
		t.Fatalf("len(environ) = %d, want 2", len(env))
	}

	m := make(map[string]bool)
	for _, e := range env {
		m[e] = true
	}
	if !m["PATH=/usr/bin"] || !m["HOME=/root"] {
		t.Fatalf("environ = %v, want PATH=/usr/bin and HOME=/root", env)
	}
}
