package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Dir is the on-disk prefab directory. Files there override the embedded
// copies, which lets tunables be edited while a command runs.
const Dir = "prefabs"

//go:embed *.yaml courses/*.yaml scripts/*.tengo
var files embed.FS

// Load reads a prefab by its path relative to Dir.
func Load(name string) ([]byte, error) {
	return read(relative(name))
}

// LoadEmbedded reads the stock copy of a prefab, ignoring disk overrides.
func LoadEmbedded(name string) ([]byte, error) {
	return files.ReadFile(relative(name))
}

// LoadScript reads an input script. "vault", "vault.tengo" and
// "scripts/vault" all name the same file.
func LoadScript(name string) ([]byte, error) {
	return read(inSubdir("scripts", name, ".tengo"))
}

// Names lists the stock prefabs of one kind, without directory or extension.
func Names(kind ChangeKind) ([]string, error) {
	var pattern string
	switch kind {
	case ChangeController:
		pattern = "controller*.yaml"
	case ChangeCourse:
		pattern = "courses/*.yaml"
	case ChangeScript:
		pattern = "scripts/*.tengo"
	default:
		return nil, nil
	}
	matches, err := fs.Glob(files, pattern)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := path.Base(m)
		names = append(names, strings.TrimSuffix(base, path.Ext(base)))
	}
	sort.Strings(names)
	return names, nil
}

func read(rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return files.ReadFile(rel)
}

func relative(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), Dir+"/")
}

func inSubdir(sub, name, ext string) string {
	s := strings.TrimPrefix(relative(name), sub+"/")
	if path.Ext(s) == "" {
		s += ext
	}
	return path.Join(sub, s)
}
