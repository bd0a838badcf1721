package core

import "strings"

// ScriptSuffix is the filename suffix that identifies a script
// import (spec §6 "Import conventions"). It is retained as the
// discriminator even though the runtime that evaluates the script is
// not itself written in the source language the suffix names — the
// suffix is user-facing data describing the template source format,
// not the host language.
const ScriptSuffix = ".py"

// TextTemplateSuffixes are the filename suffixes that identify a
// Jinja-compatible text-template import.
var TextTemplateSuffixes = []string{".jinja", ".yaml"}

// SchemaSuffix is appended to a template's import path to form the
// path of its sibling schema, e.g. "backend.py" -> "backend.py.schema".
const SchemaSuffix = ".schema"

// IsScriptImport reports whether path names a script template.
func IsScriptImport(path string) bool {
	return strings.HasSuffix(path, ScriptSuffix)
}

// IsTextTemplateImport reports whether path names a text-template
// (Jinja-compatible) template.
func IsTextTemplateImport(path string) bool {
	for _, suffix := range TextTemplateSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// IsTemplateImport reports whether path names anything the Template
// Renderer can dispatch on (script or text-template), as opposed to
// an arbitrary inlined text import accessible only via ctx.imports.
func IsTemplateImport(path string) bool {
	return IsScriptImport(path) || IsTextTemplateImport(path)
}

// SchemaPathFor returns the conventional schema path for a template
// import path.
func SchemaPathFor(templatePath string) string {
	return templatePath + SchemaSuffix
}
