package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// CellKey produces the canonical "x:y" key used to index cells in reachable
// path maps and event payloads. Clients rely on this exact format.
func CellKey(x, y int) string {
	return strconv.Itoa(x) + ":" + strconv.Itoa(y)
}

// ParseCellKey is the inverse of CellKey.
func ParseCellKey(key string) (x, y int, err error) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid cell key %q", key)
	}
	x, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell key %q: %w", key, err)
	}
	y, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell key %q: %w", key, err)
	}
	return x, y, nil
}
