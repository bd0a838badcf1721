package refengine

import "strings"

// refPrefix is the literal that opens every reference token. The
// engine deliberately does not use a single greedy regex for the full
// `$(ref.NAME.PATH)` capture because PATH may itself contain balanced
// parentheses (a nested function call in the JSONPath expression, for
// example); see spec §4.1.
const refPrefix = "$(ref."

// Match describes one `$(ref.NAME.PATH)` occurrence found in a
// string. Start and End are byte offsets into the searched string;
// End is the index immediately after the closing ')'.
type Match struct {
	Start int
	End   int
	Name  string
	Path  string
}

// ContainsReference reports whether s contains the reference prefix
// at all. This is the "prefix probe" of spec §4.1 step 1 and is used
// to short-circuit strings that plainly have no reference in them
// before the more expensive balanced scan runs.
func ContainsReference(s string) bool {
	return strings.Contains(s, refPrefix)
}

// FindNext finds the next `$(ref.NAME.PATH)` occurrence in s starting
// the search at byte offset from. It returns ok=false when no
// reference-shaped prefix remains in the searched suffix. When the
// prefix is found but the remainder is not well-formed (no name
// terminator, or the parenthesis count never returns to zero), it
// returns a malformed reference error that echoes the offending
// substring, per spec §4.1 step 4.
func FindNext(s string, from int) (match *Match, ok bool, err error) {
	if from > len(s) {
		return nil, false, nil
	}

	relIdx := strings.Index(s[from:], refPrefix)
	if relIdx < 0 {
		return nil, false, nil
	}
	start := from + relIdx
	afterPrefix := start + len(refPrefix)

	dot := strings.IndexByte(s[afterPrefix:], '.')
	if dot < 0 {
		return nil, false, errMalformedReference(s[start:])
	}
	name := s[afterPrefix : afterPrefix+dot]
	pathStart := afterPrefix + dot + 1

	// Depth starts at 1 to account for the '(' already consumed as
	// part of the "$(" opener.
	depth := 1
	i := pathStart
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return &Match{
					Start: start,
					End:   i + 1,
					Name:  name,
					Path:  s[pathStart:i],
				}, true, nil
			}
		}
		i++
	}

	return nil, false, errMalformedReference(s[start:])
}
