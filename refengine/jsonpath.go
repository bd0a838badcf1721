package refengine

import (
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ResolvePath evaluates a JSONPath expression (dot notation, bracket
// indices, wildcards and filter expressions, per spec §4.1) against
// root and applies the return conventions required by the spec:
//
//   - a leaf scalar is returned as-is
//   - an exact match list of length 1 is unwrapped to its element
//   - an exact match list of length >1 (e.g. a wildcard) is returned
//     as a list
//   - no match raises errNoValueFound, identifying name for the
//     caller's error message
//
// PATH, as it appears inside a `$(ref.NAME.PATH)` token, is not
// prefixed with the `$` JSONPath root marker that the underlying
// library expects, so it is added here.
func ResolvePath(name string, path string, root any) (any, error) {
	value, err := jsonpath.Get(toRootedPath(path), root)
	if err != nil {
		return nil, errNoValueFound(name, path)
	}

	if list, ok := value.([]any); ok {
		if len(list) == 0 {
			return nil, errNoValueFound(name, path)
		}
		if len(list) == 1 {
			return list[0], nil
		}
		return list, nil
	}

	return value, nil
}

// ResolvePathNonRaising behaves like ResolvePath but, per spec §4.1,
// returns ok=false instead of an error when nothing matches. Callers
// that need to tolerate an absent path (rather than treat it as a
// typo) use this form.
func ResolvePathNonRaising(path string, root any) (value any, ok bool) {
	result, err := jsonpath.Get(toRootedPath(path), root)
	if err != nil {
		return nil, false
	}

	if list, isList := result.([]any); isList {
		if len(list) == 0 {
			return nil, false
		}
		if len(list) == 1 {
			return list[0], true
		}
		return list, true
	}

	return result, true
}

func toRootedPath(path string) string {
	if strings.HasPrefix(path, "$") {
		return path
	}
	if strings.HasPrefix(path, "[") {
		return "$" + path
	}
	return "$." + path
}
