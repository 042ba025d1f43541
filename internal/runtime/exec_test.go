package runtime

import (
	"strings"
	"testing"
)

func TestMergeEnv(t *testing.T) {
	tests := []struct {
		name      string
		base      []string
		overrides []string
		want      map[string]string
	}{
		{
			name:      "override wins over base",
			base:      []string{"PIP_INDEX_URL=https://pypi.org/simple", "HOME=/root"},
			overrides: []string{"PIP_INDEX_URL=https://mirror.internal/simple"},
			want: map[string]string{
				"PIP_INDEX_URL": "https://mirror.internal/simple",
				"HOME":          "/root",
			},
		},
		{
			name:      "override adds a new key",
			base:      []string{"HOME=/root"},
			overrides: []string{"PYTHONUNBUFFERED=1"},
			want: map[string]string{
				"HOME":             "/root",
				"PYTHONUNBUFFERED": "1",
			},
		},
		{
			name:      "no base env",
			overrides: []string{"HOME=/root"},
			want:      map[string]string{"HOME": "/root"},
		},
		{
			name: "no overrides",
			base: []string{"HOME=/root"},
			want: map[string]string{"HOME": "/root"},
		},
		{
			name: "both empty",
			want: map[string]string{},
		},
		{
			name: "value containing equals is kept whole",
			base: []string{"LISTER=pip list --format=freeze"},
			want: map[string]string{"LISTER": "pip list --format=freeze"},
		},
		{
			name:      "entries without equals are dropped",
			base:      []string{"BROKEN", "HOME=/root"},
			overrides: []string{"ALSO_BROKEN"},
			want:      map[string]string{"HOME": "/root"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := envMap(t, mergeEnv(tt.base, tt.overrides))

			if len(got) != len(tt.want) {
				t.Fatalf("merged = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

// Splits "K=V" entries into a map, failing the test on malformed output.
func envMap(t *testing.T, env []string) map[string]string {
	t.Helper()

	m := make(map[string]string, len(env))
	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			t.Fatalf("malformed env entry %q", entry)
		}
		m[k] = v
	}
	return m
}

func TestNextExecID(t *testing.T) {
	seen := make(map[string]bool)
	for range 10 {
		id := nextExecID()
		if id == "" {
			t.Fatal("nextExecID returned empty string")
		}
		if seen[id] {
			t.Fatalf("nextExecID returned duplicate: %q", id)
		}
		seen[id] = true
	}
}
