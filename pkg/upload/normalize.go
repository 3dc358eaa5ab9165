package upload

import (
	"strconv"
	"strings"
)

const arrayMarker = "[]"

// IndexCounter counts occurrences of array-style field names within one decode pass.
type IndexCounter map[string]int

// NormalizeName rewrites an array-style name to its next indexed form:
// the Nth occurrence of "tags[]" becomes "tags[N-1]". Every "[]" in the name
// gets the same index. Names without the marker are returned unchanged.
func NormalizeName(name string, counter IndexCounter) string {
	if !strings.Contains(name, arrayMarker) {
		return name
	}
	idx := counter[name]
	counter[name] = idx + 1
	return strings.ReplaceAll(name, arrayMarker, "["+strconv.Itoa(idx)+"]")
}
