package build

import (
	"bufio"
	"strings"

	"github.com/bakehq/bakerd/internal/manifest"
)

// Builds the install command by appending the manifest's in-container path
// to the plan's installer.
func installCommand(installer, manifestPath string) string {
	return installer + " " + manifestPath
}

// Parses a package listing in freeze format ("name==version", one per line)
// into a map of normalized name to the full listing line.
//
// Lines that do not carry a "==" separator (editable installs, direct URL
// references) are skipped; the declared set cannot match them by name and
// version anyway.
func parseInstalled(out string) map[string]string {
	installed := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, _, ok := strings.Cut(line, "==")
		if !ok {
			continue
		}

		installed[manifest.NormalizeName(name)] = line
	}

	return installed
}

// Returns the declared dependencies missing from the installed set, in
// declaration order.
func missingDependencies(declared []manifest.Dependency, installed map[string]string) []string {
	var missing []string
	for _, dep := range declared {
		if _, ok := installed[dep.Name]; !ok {
			missing = append(missing, dep.Name)
		}
	}
	return missing
}

// Returns the installed listing lines for the declared dependencies, in
// declaration order.
//
// Identical build inputs must yield an identical set; declaration order
// keeps the result comparable across builds.
func installedSet(declared []manifest.Dependency, installed map[string]string) []string {
	set := make([]string, 0, len(declared))
	for _, dep := range declared {
		if line, ok := installed[dep.Name]; ok {
			set = append(set, line)
		}
	}
	return set
}
