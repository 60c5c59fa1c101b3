package storage

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NextRevision derives the revision token that follows prev.
// Tokens look like "<generation>-<hex>"; an empty prev starts at generation 1.
func NextRevision(prev string) string {
	gen := 0
	if head, _, ok := strings.Cut(prev, "-"); ok {
		if n, err := strconv.Atoi(head); err == nil {
			gen = n
		}
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strconv.Itoa(gen+1) + "-" + suffix
}
