package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ScriptNames lists embedded scripts by base name without extension.
func ScriptNames() ([]string, error) {
	matches, err := fs.Glob(ScriptsFS, "scripts/*.tengo")
	if err != nil {
		return nil, fmt.Errorf("prefabs: list scripts: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".tengo"))
	}
	sort.Strings(names)
	return names, nil
}

//go:embed *.yaml
var PrefabsFS embed.FS

// Load prefers a copy under ./prefabs on disk so edits show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}

	s := filepath.ToSlash(p)

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
