package manifest

import (
	"strings"
	"testing"
)

func TestParseRequirements(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Dependency
		wantErr bool
	}{
		{
			name:  "empty manifest",
			input: "",
			want:  nil,
		},
		{
			name:  "comments and blanks only",
			input: "# deps\n\n   \n# more\n",
			want:  nil,
		},
		{
			name:  "pinned package",
			input: "fastapi==0.68.0\n",
			want:  []Dependency{{Name: "fastapi", Constraint: "==0.68.0"}},
		},
		{
			name:  "unpinned package",
			input: "pika\n",
			want:  []Dependency{{Name: "pika", Constraint: ""}},
		},
		{
			name:  "range constraint",
			input: "pymongo>=3.12,<4\n",
			want:  []Dependency{{Name: "pymongo", Constraint: ">=3.12,<4"}},
		},
		{
			name:  "compatible release",
			input: "uvicorn~=0.15.0\n",
			want:  []Dependency{{Name: "uvicorn", Constraint: "~=0.15.0"}},
		},
		{
			name:  "inline comment stripped",
			input: "requests==2.26.0  # http client\n",
			want:  []Dependency{{Name: "requests", Constraint: "==2.26.0"}},
		},
		{
			name:  "environment marker stripped",
			input: "cbor==1.0.0; python_version < \"3.10\"\n",
			want:  []Dependency{{Name: "cbor", Constraint: "==1.0.0"}},
		},
		{
			name:  "extras stripped from name",
			input: "uvicorn[standard]==0.15.0\n",
			want:  []Dependency{{Name: "uvicorn", Constraint: "==0.15.0"}},
		},
		{
			name:  "name normalized",
			input: "Sawtooth_SDK==1.2.5\n",
			want:  []Dependency{{Name: "sawtooth-sdk", Constraint: "==1.2.5"}},
		},
		{
			name: "order preserved",
			input: "pika==1.2.0\nfastapi==0.68.0\npymongo==3.12.0\n",
			want: []Dependency{
				{Name: "pika", Constraint: "==1.2.0"},
				{Name: "fastapi", Constraint: "==0.68.0"},
				{Name: "pymongo", Constraint: "==3.12.0"},
			},
		},
		{
			name:    "option directive rejected",
			input:   "-r other.txt\n",
			wantErr: true,
		},
		{
			name:    "index url rejected",
			input:   "--index-url https://example.com/simple\n",
			wantErr: true,
		},
		{
			name:    "invalid name",
			input:   "not a package==1.0\n",
			wantErr: true,
		},
		{
			name:    "unterminated extras",
			input:   "uvicorn[standard==0.15.0\n",
			wantErr: true,
		},
		{
			name:    "bare constraint",
			input:   "==1.0\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequirements(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d\ngot: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("dep[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseRequirementsDeterministic(t *testing.T) {
	input := "pika==1.2.0\nfastapi==0.68.0\n# comment\npymongo>=3.12\n"

	a, err := ParseRequirements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ParseRequirements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("dep[%d] differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fastapi", "fastapi"},
		{"FastAPI", "fastapi"},
		{"sawtooth_sdk", "sawtooth-sdk"},
		{"sawtooth-sdk", "sawtooth-sdk"},
		{"zope.interface", "zope-interface"},
		{"weird__--..name", "weird-name"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.input); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
