package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// NumberGenerator produces human-readable order numbers. The output is a
// display identifier, not a uniqueness guarantee; the opaque id stays the
// primary key and the repository retries on a number conflict.
type NumberGenerator interface {
	Generate() string
}

type timestampNumberGenerator struct{}

func NewNumberGenerator() NumberGenerator {
	return timestampNumberGenerator{}
}

const randomSuffixSpace = 36 * 36 * 36 * 36 * 36 // 5 base36 characters

// Generate returns "ORD-<base36 millis>-<5 random base36>" uppercased.
func (timestampNumberGenerator) Generate() string {
	now := time.Now()
	timePart := strconv.FormatInt(now.UnixMilli(), 36)

	n, err := rand.Int(rand.Reader, big.NewInt(randomSuffixSpace))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % randomSuffixSpace)
	}
	randomPart := fmt.Sprintf("%05s", strconv.FormatInt(n.Int64(), 36))

	return strings.ToUpper("ORD-" + timePart + "-" + randomPart)
}
