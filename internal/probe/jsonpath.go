package probe

import (
	"strconv"
	"strings"
)

// lookupPath walks a decoded JSON document along a dot-separated path.
// Numeric segments index into arrays ("results.0.online"). The Wolt
// response shape has drifted across platform versions, so callers try an
// ordered list of candidate paths instead of trusting any single nesting.
func lookupPath(doc any, path string) (any, bool) {
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
