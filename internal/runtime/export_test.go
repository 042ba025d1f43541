package runtime

import (
	"testing"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

func TestApplyExportConfig(t *testing.T) {
	layer := ocispec.Descriptor{Digest: digest.FromString("layer")}
	diffID := digest.FromString("diff")

	manifest := ocispec.Manifest{}
	config := ocispec.Image{}
	config.Config.Cmd = []string{"python3"}

	applyExportConfig(&manifest, &config, layer, diffID, ExportConfig{
		Entrypoint: []string{"python", "main.py"},
		Port:       8000,
	})

	if len(manifest.Layers) != 1 || manifest.Layers[0].Digest != layer.Digest {
		t.Fatalf("layers = %v, want appended layer", manifest.Layers)
	}
	if len(config.RootFS.DiffIDs) != 1 || config.RootFS.DiffIDs[0] != diffID {
		t.Fatalf("diffIDs = %v, want appended diff ID", config.RootFS.DiffIDs)
	}
	if len(config.Config.Entrypoint) != 2 || config.Config.Entrypoint[0] != "python" {
		t.Fatalf("entrypoint = %v", config.Config.Entrypoint)
	}
	if config.Config.Cmd != nil {
		t.Fatalf("cmd = %v, want nil after entrypoint override", config.Config.Cmd)
	}
	if _, ok := config.Config.ExposedPorts["8000/tcp"]; !ok {
		t.Fatalf("exposed ports = %v, want 8000/tcp", config.Config.ExposedPorts)
	}
	if len(config.Config.ExposedPorts) != 1 {
		t.Fatalf("exposed ports = %v, want exactly one entry", config.Config.ExposedPorts)
	}
}

func TestApplyExportConfigNoMetadata(t *testing.T) {
	layer := ocispec.Descriptor{Digest: digest.FromString("layer")}
	diffID := digest.FromString("diff")

	manifest := ocispec.Manifest{}
	config := ocispec.Image{}
	config.Config.Cmd = []string{"python3"}

	applyExportConfig(&manifest, &config, layer, diffID, ExportConfig{})

	if config.Config.ExposedPorts != nil {
		t.Fatalf("exposed ports = %v, want none for zero port", config.Config.ExposedPorts)
	}
	if len(config.Config.Cmd) != 1 {
		t.Fatalf("cmd = %v, want preserved without entrypoint override", config.Config.Cmd)
	}
	if len(manifest.Layers) != 1 {
		t.Fatalf("layers = %v, want appended layer", manifest.Layers)
	}
}

func TestApplyExportConfigPreservesExistingPorts(t *testing.T) {
	config := ocispec.Image{}
	config.Config.ExposedPorts = map[string]struct{}{"5432/tcp": {}}

	applyExportConfig(&ocispec.Manifest{}, &config, ocispec.Descriptor{}, digest.FromString("d"), ExportConfig{Port: 8000})

	if _, ok := config.Config.ExposedPorts["5432/tcp"]; !ok {
		t.Fatal("base image port dropped")
	}
	if _, ok := config.Config.ExposedPorts["8000/tcp"]; !ok {
		t.Fatal("advisory port not recorded")
	}
}

func TestPortKey(t *testing.T) {
	if got := portKey(8000); got != "8000/tcp" {
		t.Fatalf("portKey(8000) = %q, want 8000/tcp", got)
	}
}

func TestManifestGCLabels(t *testing.T) {
	m := ocispec.Manifest{
		Config: ocispec.Descriptor{
			Digest: digest.FromString("config"),
		},
		Layers: []ocispec.Descriptor{
			{Digest: digest.FromString("layer0")},
			{Digest: digest.FromString("layer1")},
		},
	}

	labels := manifestGCLabels(m)

	configLabel := labels["containerd.io/gc.ref.content.config"]
	if configLabel != m.Config.Digest.String() {
		t.Fatalf("config label = %q, want %q", configLabel, m.Config.Digest.String())
	}

	for i, layer := range m.Layers {
		key := "containerd.io/gc.ref.content.l." + string(rune('0'+i))
		got := labels[key]
		if got != layer.Digest.String() {
			t.Fatalf("labels[%q] = %q, want %q", key, got, layer.Digest.String())
		}
	}

	if len(labels) != 3 {
		t.Fatalf("len(labels) = %d, want 3", len(labels))
	}
}

func TestIndexGCLabels(t *testing.T) {
	idx := ocispec.Index{
		Manifests: []ocispec.Descriptor{
			{Digest: digest.FromString("m0")},
		},
	}

	labels := indexGCLabels(idx)
	if len(labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1", len(labels))
	}
	if labels["containerd.io/gc.ref.content.m.0"] != idx.Manifests[0].Digest.String() {
		t.Fatal("manifest label mismatch")
	}
}
