package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Load resolves a scenario by name or path. A path to an existing file wins;
// otherwise the name is looked up among the embedded built-ins.
func Load(nameOrPath string) (*Scenario, error) {
	if data, err := os.ReadFile(nameOrPath); err == nil {
		return parse(data, nameOrPath)
	}

	name := strings.TrimSuffix(nameOrPath, ".yaml")
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("scenario %q: not a file and not a built-in", nameOrPath)
	}
	return parse(data, name)
}

func parse(data []byte, origin string) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", origin, err)
	}
	if sc.Name == "" {
		sc.Name = origin
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Builtins returns the names of the embedded scenarios, sorted.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
