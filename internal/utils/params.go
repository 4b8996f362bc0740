package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDList parses a comma-separated id list query parameter ("1,2,3").
// An empty string yields nil.
func ParseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)

		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}

		ids = append(ids, uint(id))
	}

	return ids, nil
}
