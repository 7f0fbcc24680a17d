// Package files locates, reads, and writes the Java sources and problem
// exports that live in the user's working directory.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveJava turns a user selection into a list of absolute .java file
// paths. The selection may be:
//   - empty: Main.java in workDir if present, otherwise every .java
//     file in workDir;
//   - a directory: every .java file inside it;
//   - comma-separated names/paths, resolved against workDir unless
//     absolute, with the .java suffix optional.
//
// Duplicates are removed preserving order. Any entry that does not
// resolve to an existing .java file fails the whole selection.
func ResolveJava(workDir, input string) ([]string, error) {
	input = strings.TrimSpace(input)

	var selected []string
	switch {
	case input == "":
		paths, err := defaultSelection(workDir)
		if err != nil {
			return nil, err
		}
		selected = paths

	case isDir(input):
		paths, err := javaFilesIn(input)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no .java files in directory %s", input)
		}
		selected = paths

	default:
		for _, item := range strings.Split(input, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			path, err := resolveOne(workDir, item)
			if err != nil {
				return nil, err
			}
			selected = append(selected, path)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no .java files selected")
	}
	return dedupe(selected), nil
}

// ReadSources reads each file and keys its content by base filename,
// the shape the submit endpoint expects.
func ReadSources(paths []string) (map[string]string, error) {
	sources := make(map[string]string, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources[filepath.Base(path)] = string(content)
	}
	return sources, nil
}

func defaultSelection(workDir string) ([]string, error) {
	if !isDir(workDir) {
		return nil, fmt.Errorf("work directory %s does not exist", workDir)
	}

	mainPath := filepath.Join(workDir, "Main.java")
	if isFile(mainPath) {
		abs, err := filepath.Abs(mainPath)
		if err != nil {
			return nil, err
		}
		return []string{abs}, nil
	}

	paths, err := javaFilesIn(workDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no Main.java or other .java files in %s", workDir)
	}
	return paths, nil
}

func resolveOne(workDir, item string) (string, error) {
	candidates := []string{item}
	if !strings.HasSuffix(strings.ToLower(item), ".java") {
		candidates = append(candidates, item+".java")
	}
	for _, candidate := range candidates {
		path := candidate
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if isFile(abs) && strings.HasSuffix(strings.ToLower(abs), ".java") {
			return abs, nil
		}
	}
	return "", fmt.Errorf("%q does not resolve to a .java file", item)
}

func javaFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".java") {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
