package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const anonymousPrefix = "Anonymous"

// ResolveUsername trims name and substitutes Anonymous1..Anonymous10 when it is blank.
func ResolveUsername(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("%s%d", anonymousPrefix, secureRandom(10)+1)
}

func secureRandom(max int) int {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}
