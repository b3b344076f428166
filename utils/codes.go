package utils

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Human-facing code generation: fixed prefix + base36 timestamp + base36
// random suffix. Uniqueness is probabilistic here; the database's unique
// constraint on the column is the actual enforcement.

const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

func generateCode(prefix string, randLen int) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper(prefix + "-" + ts + "-" + randomBase36(randLen))
}

// NewConfirmationNumber -> reservation confirmation code, e.g. RES-LX2K81QF-A4B9C1.
func NewConfirmationNumber() string {
	return generateCode("RES", 6)
}

// NewOrderNumber -> order number, e.g. ORD-LX2K81QF-A4B9.
func NewOrderNumber() string {
	return generateCode("ORD", 4)
}
