package validators

import (
	"strconv"
	"strings"
)

// ParseIDList normalizes category input to a canonical id list. Clients
// send either a comma-separated string ("1,2,3") or repeated form
// values; both shapes collapse here before any validation runs.
// Duplicates are dropped so the later count-equality existence check
// cannot reject a request over a repeated id.
func ParseIDList(values []string) ([]uint, error) {
	var ids []uint
	seen := make(map[uint]bool)

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			n, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return nil, err
			}

			id := uint(n)
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}
