package build

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bakehq/bakerd/internal/manifest"
)

func TestCopyIntoContainerMissingSource(t *testing.T) {
	b := testBake(&manifest.Plan{Workdir: "/app"}, t.TempDir())

	// The source must be rejected before anything touches the container.
	err := b.copyIntoContainer(context.Background(), nil, "app")
	if !errors.Is(err, ErrCopy) {
		t.Fatalf("err = %v, want ErrCopy", err)
	}
}

func TestContainerPath(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		workdir string
		want    string
	}{
		{
			name:    "plain file",
			src:     "requirements.txt",
			workdir: "/app",
			want:    "/app/requirements.txt",
		},
		{
			name:    "directory with trailing slash",
			src:     "app/",
			workdir: "/app",
			want:    "/app/app",
		},
		{
			name:    "nested path preserved",
			src:     "conf/prod/settings.yaml",
			workdir: "/srv",
			want:    "/srv/conf/prod/settings.yaml",
		},
		{
			name:    "redundant segments cleaned",
			src:     "./app//model",
			workdir: "/app",
			want:    "/app/app/model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containerPath(tt.src, tt.workdir); got != tt.want {
				t.Errorf("containerPath(%q, %q) = %q, want %q", tt.src, tt.workdir, got, tt.want)
			}
		})
	}
}

func TestWriteDirToTar(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "model"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.py"), []byte("print('hi')\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "model", "types.py"), []byte("pass\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pr, pw := io.Pipe()
	go func() {
		tw := tar.NewWriter(pw)
		err := writeDirToTar(tw, dir, "app")
		tw.Close()
		pw.CloseWithError(err)
	}()

	entries := make(map[string]string)
	tr := tar.NewReader(pr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var body []byte
		if hdr.Typeflag == tar.TypeReg {
			body, err = io.ReadAll(tr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		entries[hdr.Name] = string(body)
	}

	if _, ok := entries["app"]; !ok {
		t.Error("missing root directory entry")
	}
	if entries["app/main.py"] != "print('hi')\n" {
		t.Errorf("app/main.py = %q", entries["app/main.py"])
	}
	if _, ok := entries["app/model/types.py"]; !ok {
		t.Error("missing nested file entry")
	}
}

func TestWriteFileToTar(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(src, []byte("fastapi==0.68.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pr, pw := io.Pipe()
	go func() {
		tw := tar.NewWriter(pw)
		err := writeFileToTar(tw, src, "requirements.txt")
		tw.Close()
		pw.CloseWithError(err)
	}()

	tr := tar.NewReader(pr)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hdr.Name != "requirements.txt" {
		t.Errorf("name = %q, want requirements.txt", hdr.Name)
	}
	body, err := io.ReadAll(tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "fastapi==0.68.0\n" {
		t.Errorf("body = %q", body)
	}
}
