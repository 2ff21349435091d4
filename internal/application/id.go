package application

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// suffixLen is the number of base36 characters appended after the timestamp.
const suffixLen = 12

// NewID builds "<prefix>_<unix-millis>_<random base36>". The random part comes
// from a v4 UUID, so two ids minted in the same millisecond still differ.
func NewID(prefix string, clock Clock) string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	suffix := n.Text(36)
	if len(suffix) < suffixLen {
		suffix = strings.Repeat("0", suffixLen-len(suffix)) + suffix
	}
	return fmt.Sprintf("%s_%d_%s", prefix, clock.Now().UnixMilli(), suffix[:suffixLen])
}
