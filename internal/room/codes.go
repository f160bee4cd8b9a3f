package room

import (
	"crypto/rand"
	"math/big"

	"go.uber.org/zap"
)

// Alphabet for generated room codes. Skips 0/O, 1/I/L so codes survive
// being read out loud.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewCode returns a random room code of n characters.
func NewCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[randomIndex(len(codeAlphabet))]
	}
	return string(b)
}

func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		zap.L().Panic("room.code_rand", zap.Error(err))
	}
	return int(n.Int64())
}
