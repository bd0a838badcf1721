// Package sandbox implements the virtual module namespace described
// in spec §4.2: user-supplied script imports become addressable by
// dotted name (e.g. "helpers.common") without ever touching the host
// filesystem. The namespace is backed by an in-memory afero
// filesystem, matching the teacher's own dependency on
// github.com/spf13/afero — a leaf module becomes a file holding its
// source text, and a package node (a synthesized intermediate
// directory such as "helpers" for "helpers.common") becomes a
// directory with no content of its own.
package sandbox

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Entry is one import's path and content, the shape the Expansion
// Driver passes in for every import that targets a script suffix
// (spec §3 "Import entry"). Text-template imports are never passed to
// Install; spec §4.2 step 2 explicitly excludes them from this
// namespace.
type Entry struct {
	Path    string
	Content string
}

// Loader is a per-invocation virtual module namespace. An Engine
// builds one fresh Loader per call to expand.Expand (see spec §5:
// the sandbox's backing store is inherently mutable shared state, so
// it must never be shared across concurrent invocations).
type Loader struct {
	fs afero.Fs
}

// NewLoader constructs an empty sandbox.
func NewLoader() *Loader {
	return &Loader{fs: afero.NewMemMapFs()}
}

// Install registers every script entry's dotted module name in the
// namespace, synthesizing an intermediate package node for every
// non-final path segment so that a deeply nested module such as
// "helpers.net.http" resolves even when only "helpers.net.http"
// itself was supplied — "helpers" and "helpers.net" are materialized
// as package directories automatically.
func (l *Loader) Install(entries map[string]Entry) error {
	for _, entry := range entries {
		dotted := dottedNameFromPath(entry.Path)
		if dotted == "" {
			continue
		}

		segments := strings.Split(dotted, ".")
		for i := 1; i < len(segments); i++ {
			pkgPath := "/" + strings.Join(segments[:i], "/")
			if err := l.fs.MkdirAll(pkgPath, 0o755); err != nil {
				return err
			}
		}

		leafPath := "/" + strings.Join(segments, "/")
		if len(segments) > 1 {
			if err := l.fs.MkdirAll(path.Dir(leafPath), 0o755); err != nil {
				return err
			}
		}
		if err := afero.WriteFile(l.fs, leafPath, []byte(entry.Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// Resolve looks up a dotted module name. isPackage is true when the
// name was synthesized as (or explicitly registered as) a package
// node rather than a leaf module; package nodes never carry content.
func (l *Loader) Resolve(dottedName string) (content string, isPackage bool, found bool, err error) {
	modPath := "/" + strings.ReplaceAll(dottedName, ".", "/")
	info, statErr := l.fs.Stat(modPath)
	if statErr != nil {
		if isNotExist(statErr) {
			return "", false, false, nil
		}
		return "", false, false, statErr
	}

	if info.IsDir() {
		return "", true, true, nil
	}

	raw, readErr := afero.ReadFile(l.fs, modPath)
	if readErr != nil {
		return "", false, false, readErr
	}
	return string(raw), false, true, nil
}

// MustResolve is like Resolve but returns errModuleNotFound instead
// of found=false, for callers that treat an unregistered module as a
// hard failure.
func (l *Loader) MustResolve(dottedName string) (content string, isPackage bool, err error) {
	content, isPackage, found, err := l.Resolve(dottedName)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, errModuleNotFound(dottedName)
	}
	return content, isPackage, nil
}

// ModuleInfo describes one leaf module registered in the namespace,
// as returned by Modules.
type ModuleInfo struct {
	DottedName string
	Content    string
}

// Modules lists every leaf (non-package) module currently registered,
// for callers that preload the whole namespace up front rather than
// resolving lazily — the script renderer's Lua environment does this
// so that `require("helpers.net.http")` needs no custom searcher
// hook, only a preloaded table keyed by the same dotted names this
// package already computes.
func (l *Loader) Modules() ([]ModuleInfo, error) {
	var modules []ModuleInfo
	err := afero.Walk(l.fs, "/", func(filePath string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		dotted := strings.ReplaceAll(strings.Trim(filePath, "/"), "/", ".")
		content, readErr := afero.ReadFile(l.fs, filePath)
		if readErr != nil {
			return readErr
		}
		modules = append(modules, ModuleInfo{DottedName: dotted, Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func dottedNameFromPath(importPath string) string {
	trimmed := importPath
	if idx := strings.LastIndex(trimmed, "."); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
