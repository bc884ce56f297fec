package discover

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rhizome-lab/moss/internal/lang"
)

// ignoreDirs are directory names skipped during discovery.
var ignoreDirs = map[string]bool{
	".cache": true, ".eggs": true, ".env": true, ".git": true,
	".gradle": true, ".hg": true, ".idea": true, ".mypy_cache": true,
	".nox": true, ".npm": true, ".nyc_output": true, ".pnpm-store": true,
	".pytest_cache": true, ".ruff_cache": true, ".svn": true, ".tox": true,
	".venv": true, ".vs": true, ".vscode": true, ".yarn": true,
	"__pycache__": true, "bower_components": true, "build": true,
	"coverage": true, "dist": true, "env": true, "node_modules": true,
	"obj": true, "out": true, "Pods": true, "site-packages": true,
	"target": true, "tmp": true, "venv": true,
}

// ignoreSuffixes are file suffixes skipped during discovery.
var ignoreSuffixes = map[string]bool{
	".tmp": true, "~": true, ".pyc": true, ".pyo": true,
	".o": true, ".a": true, ".so": true, ".dll": true, ".class": true,
	".min.js": true,
}

// FileInfo is one discovered source file.
type FileInfo struct {
	Path     string        // absolute path
	RelPath  string        // relative to the root, slash-separated
	Language lang.Language // detected language
}

// Options configures file discovery.
type Options struct {
	IgnoreFile string // path to a .mossignore file (optional)
}

// shouldSkipDir reports whether a directory is excluded from discovery.
func shouldSkipDir(name, rel string, extraIgnore []string) bool {
	if ignoreDirs[name] {
		return true
	}
	for _, pattern := range extraIgnore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Discover walks a root and returns every file with a recognized language,
// in walk order.
func Discover(ctx context.Context, root string, opts *Options) ([]FileInfo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var extraIgnore []string
	if opts != nil && opts.IgnoreFile != "" {
		extraIgnore, _ = loadIgnoreFile(opts.IgnoreFile)
	} else {
		extraIgnore, _ = loadIgnoreFile(filepath.Join(root, ".mossignore"))
	}

	var files []FileInfo

	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(root, path)

		if info.IsDir() {
			if path != root && shouldSkipDir(info.Name(), rel, extraIgnore) {
				return filepath.SkipDir
			}
			return nil
		}

		for suffix := range ignoreSuffixes {
			if strings.HasSuffix(path, suffix) {
				return nil
			}
		}

		l, ok := lang.LanguageForExtension(filepath.Ext(path))
		if !ok {
			return nil
		}
		files = append(files, FileInfo{
			Path:     path,
			RelPath:  filepath.ToSlash(rel),
			Language: l,
		})
		return nil
	})

	return files, err
}

// GroupByLanguage buckets files per language, preserving walk order within a
// bucket. The returned language list is ordered by first appearance so runs
// are deterministic.
func GroupByLanguage(files []FileInfo) (map[lang.Language][]FileInfo, []lang.Language) {
	groups := make(map[lang.Language][]FileInfo)
	var order []lang.Language
	for _, f := range files {
		if _, seen := groups[f.Language]; !seen {
			order = append(order, f.Language)
		}
		groups[f.Language] = append(groups[f.Language], f)
	}
	return groups, order
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}
