package build

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bakehq/bakerd/internal/manifest"
)

func testBake(plan *manifest.Plan, root string) *bake {
	return newBake(nil, Options{
		Plan:     plan,
		Resource: "svc",
		Root:     root,
	})
}

func TestLoadDependenciesMissingManifest(t *testing.T) {
	b := testBake(&manifest.Plan{Requirements: "requirements.txt"}, t.TempDir())

	_, err := b.loadDependencies()
	if !errors.Is(err, ErrCopy) {
		t.Fatalf("err = %v, want ErrCopy", err)
	}
}

func TestLoadDependenciesEmptyManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "requirements.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	b := testBake(&manifest.Plan{Requirements: "requirements.txt"}, root)

	deps, err := b.loadDependencies()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deps) != 0 {
		t.Errorf("deps = %v, want empty", deps)
	}
}

func TestLoadDependenciesNoneDeclared(t *testing.T) {
	b := testBake(&manifest.Plan{}, t.TempDir())

	deps, err := b.loadDependencies()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deps != nil {
		t.Errorf("deps = %v, want nil", deps)
	}
}

func TestContainerID(t *testing.T) {
	b := testBake(&manifest.Plan{}, t.TempDir())

	first := b.containerID()
	second := b.containerID()

	if !strings.HasPrefix(first, "svc-bake-") {
		t.Errorf("id = %q, want svc-bake- prefix", first)
	}
	if first == second {
		t.Error("consecutive builds must get distinct container IDs")
	}
}

func TestWarnAccumulates(t *testing.T) {
	b := testBake(&manifest.Plan{}, t.TempDir())

	b.warn("first")
	b.warn("second")

	if len(b.warnings) != 2 || b.warnings[0] != "first" || b.warnings[1] != "second" {
		t.Errorf("warnings = %v", b.warnings)
	}
}
