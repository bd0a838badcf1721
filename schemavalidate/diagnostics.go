package schemavalidate

import (
	"strings"

	json "github.com/coreos/go-json"
	"github.com/tailscale/hujson"
)

// tolerantJSON normalizes rawSchema into strict JSON when it parses
// as JSON-with-comments/trailing-commas (hujson.Standardize), so a
// schema author may write `.schema` files the same tolerant way the
// teacher's own blueprint documents are authored. Schemas that are
// YAML rather than JSON fail hujson's parse and are returned
// unchanged; Validate falls back to its regular YAML unmarshal for
// those. Grounded on the teacher's own direct dependency on
// github.com/tailscale/hujson (libs/blueprint/go.mod).
func tolerantJSON(rawSchema string) string {
	standardized, err := hujson.Standardize([]byte(rawSchema))
	if err != nil {
		return rawSchema
	}
	return string(standardized)
}

// topLevelKeyLine reports the 1-based source line of a top-level key
// in a JSON schema document, for attaching a location hint to schema
// errors. It decodes with github.com/coreos/go-json, whose *json.Node
// carries byte offsets the way core.JSONNodeExtractable uses them in
// libs/blueprint/core/json_node_utils.go, then converts the key's
// offset to a line number by counting newlines — a from-scratch
// substitute for that package's source.PositionFromOffset helper,
// which lives in a part of the teacher tree this module does not
// carry. Returns ok=false when the document is not valid JSON (e.g.
// it's YAML) or the key is absent.
func topLevelKeyLine(rawJSON string, key string) (line int, ok bool) {
	var root json.Node
	if err := json.Unmarshal([]byte(rawJSON), &root); err != nil {
		return 0, false
	}

	nodeMap, isMap := root.Value.(map[string]json.Node)
	if !isMap {
		return 0, false
	}

	node, present := nodeMap[key]
	if !present {
		return 0, false
	}

	return 1 + strings.Count(rawJSON[:node.KeyEnd], "\n"), true
}
