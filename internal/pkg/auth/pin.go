package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GeneratePIN returns a random 6-digit code in [100000, 999999]. Used both for
// courier PINs and order verify codes. Uniqueness is not enforced; collisions
// are an accepted limitation of the approval flow.
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
