package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	"gopkg.in/yaml.v3"
)

const (

	// Default working directory inside the build container.
	DefaultWorkdir = "/app"

	// Default shell used to run refresh and installer commands.
	DefaultShell = "/bin/sh"

	// Default command for installing the dependency manifest. The manifest
	// path is appended as the final argument.
	DefaultInstaller = "python -m pip install --no-cache-dir -r"

	// Default command for listing installed packages, used to verify the
	// install step. Output must be one "name==version" line per package.
	DefaultLister = "python -m pip list --format=freeze"
)

// Describes how to bake an image: the base runtime, the files staged into
// it, the dependency manifest to install, and the advisory metadata recorded
// on the result.
type Plan struct {
	Base         string            `yaml:"base"`         // Base image reference (e.g., "python:3.9").
	BaseArchive  string            `yaml:"baseArchive"`  // Path to a local OCI archive, alternative to Base.
	Workdir      string            `yaml:"workdir"`      // Absolute working directory inside the container.
	Refresh      string            `yaml:"refresh"`      // Optional package index refresh command, best-effort.
	Copy         []string          `yaml:"copy"`         // Sources copied into the workdir, relative to the build context.
	Requirements string            `yaml:"requirements"` // Dependency manifest path, relative to the build context.
	Installer    string            `yaml:"installer"`    // Install command; the manifest path is appended.
	Lister       string            `yaml:"lister"`       // Command listing installed packages for verification.
	Port         int               `yaml:"port"`         // Advisory network port recorded as image metadata.
	Entrypoint   []string          `yaml:"entrypoint"`   // OCI entrypoint for the output image.
	Env          map[string]string `yaml:"env"`          // Environment for refresh and installer commands.
	Shell        string            `yaml:"shell"`        // Shell used to run commands inside the container.
}

// Reads and parses a plan file.
//
// The plan's build context is the directory containing the file; callers
// resolve copy sources and the dependency manifest against it.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlan, err)
	}
	return Parse(data)
}

// Parses a plan from YAML, applies defaults, and validates it.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlan, err)
	}

	p.applyDefaults()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Fills unset fields with their defaults.
func (p *Plan) applyDefaults() {
	if p.Workdir == "" {
		p.Workdir = DefaultWorkdir
	}
	if p.Shell == "" {
		p.Shell = DefaultShell
	}
	if p.Installer == "" {
		p.Installer = DefaultInstaller
	}
	if p.Lister == "" {
		p.Lister = DefaultLister
	}
}

// Checks the plan for structural errors.
//
// Exactly one of Base and BaseArchive must be set. Base must parse as a
// normalized image reference. The workdir must be absolute so that copy
// destinations are unambiguous. Copy and requirements paths must stay
// inside the build context.
func (p *Plan) Validate() error {
	if p.Base == "" && p.BaseArchive == "" {
		return fmt.Errorf("%w: base or baseArchive is required", ErrPlan)
	}
	if p.Base != "" && p.BaseArchive != "" {
		return fmt.Errorf("%w: base and baseArchive are mutually exclusive", ErrPlan)
	}

	if p.Base != "" {
		if _, err := p.BaseReference(); err != nil {
			return err
		}
	}

	if !filepath.IsAbs(p.Workdir) {
		return fmt.Errorf("%w: workdir %q must be absolute", ErrPlan, p.Workdir)
	}

	if p.Port < 0 || p.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrPlan, p.Port)
	}

	for _, src := range p.Copy {
		if err := validateContextPath("copy source", src); err != nil {
			return err
		}
	}
	if p.Requirements != "" {
		if err := validateContextPath("requirements", p.Requirements); err != nil {
			return err
		}
	}

	return nil
}

// Returns the normalized base image reference, with a default tag applied
// when the plan does not pin one.
//
// Unpinned references build against whatever the registry currently serves;
// the pipeline surfaces a warning for them (see Pinned).
func (p *Plan) BaseReference() (string, error) {
	named, err := reference.ParseNormalizedNamed(p.Base)
	if err != nil {
		return "", fmt.Errorf("%w: base %q: %w", ErrPlan, p.Base, err)
	}
	return reference.TagNameOnly(named).String(), nil
}

// Reports whether the base reference pins an exact tag or digest.
//
// A bare repository name (implicit "latest") is not pinned; build
// reproducibility cannot be guaranteed beyond what the plan pins.
func (p *Plan) Pinned() bool {
	if p.BaseArchive != "" {
		return true
	}
	named, err := reference.ParseNormalizedNamed(p.Base)
	if err != nil {
		return false
	}
	if _, ok := named.(reference.Digested); ok {
		return true
	}
	if tagged, ok := named.(reference.Tagged); ok {
		return tagged.Tag() != "latest"
	}
	return false
}

// Rejects absolute paths and paths escaping the build context.
func validateContextPath(field, p string) error {
	if p == "" {
		return fmt.Errorf("%w: %s path is empty", ErrPlan, field)
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("%w: %s %q must be relative to the build context", ErrPlan, field, p)
	}
	clean := filepath.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s %q escapes the build context", ErrPlan, field, p)
	}
	return nil
}
