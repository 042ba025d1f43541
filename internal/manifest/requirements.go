package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// A single entry of the dependency manifest: a package name with an optional
// version constraint.
type Dependency struct {
	Name       string // Normalized package name (see NormalizeName).
	Constraint string // Version constraint including its operator (e.g., "==1.4.2"), empty when unpinned.
}

// Version comparison operators recognized in constraint clauses, longest
// first so that "==" is matched before "=".
var constraintOps = []string{"===", "==", "!=", "<=", ">=", "~=", "<", ">"}

// Matches a valid package name: alphanumeric with interior dots, dashes,
// and underscores.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// Reads and parses a dependency manifest file.
func LoadRequirements(path string) ([]Dependency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequirements, err)
	}
	defer f.Close()

	deps, err := ParseRequirements(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequirements, path, err)
	}
	return deps, nil
}

// Parses a flat dependency manifest into an ordered list of name/constraint
// pairs.
//
// Blank lines and comment lines are skipped, inline comments and environment
// markers are stripped, and extras brackets are removed from names. Option
// directives ("-r", "--index-url", ...) are rejected: the manifest must be
// flat so that the installed set can be verified against it. An empty
// manifest yields an empty list.
func ParseRequirements(r io.Reader) ([]Dependency, error) {
	var deps []Dependency

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "-") {
			return nil, fmt.Errorf("line %d: option directives are not supported: %q", lineNo, line)
		}

		dep, err := parseRequirementLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		deps = append(deps, dep)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return deps, nil
}

// Parses a single requirement line into a dependency.
func parseRequirementLine(line string) (Dependency, error) {

	// Inline comment: " #" terminates the requirement.
	if i := strings.Index(line, " #"); i >= 0 {
		line = line[:i]
	}

	// Environment marker: everything after ';' applies to the installer
	// host, not to the declared package set.
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return Dependency{}, fmt.Errorf("empty requirement")
	}

	name, constraint := splitConstraint(line)

	// Extras ("pkg[extra1,extra2]") select optional features of the same
	// distribution; the installed-set check goes by distribution name.
	if i := strings.IndexByte(name, '['); i >= 0 {
		if !strings.HasSuffix(name, "]") {
			return Dependency{}, fmt.Errorf("unterminated extras in %q", line)
		}
		name = name[:i]
	}

	name = strings.TrimSpace(name)
	if !namePattern.MatchString(name) {
		return Dependency{}, fmt.Errorf("invalid package name %q", name)
	}

	return Dependency{
		Name:       NormalizeName(name),
		Constraint: strings.ReplaceAll(constraint, " ", ""),
	}, nil
}

// Splits a requirement into the name part and the constraint clause,
// including the operator.
func splitConstraint(line string) (name, constraint string) {
	cut := len(line)
	for _, op := range constraintOps {
		if i := strings.Index(line, op); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(line[:cut]), strings.TrimSpace(line[cut:])
}

// Normalizes a package name: lowercase, with runs of dots, dashes, and
// underscores collapsed to a single dash. Two names that normalize equally
// refer to the same package.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if r == '.' || r == '-' || r == '_' {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSep = false
		b.WriteRune(r)
	}

	return b.String()
}
