// Package identifier generates the short public doctor codes.
package identifier

import (
	"crypto/rand"
	"fmt"
)

// Unambiguous uppercase alphanumerics: no 0/O, 1/I. The codes are read over
// the phone and typed by patients, so readability wins over entropy density.
const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const codeLength = 6

// NewDoctorCode returns a code like "DR7KQ2MX". Six characters over a
// 32-symbol alphabet give 30 bits, which keeps accidental collisions rare;
// registration still checks the store and retries, with the unique index as
// the final backstop.
func NewDoctorCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate doctor code: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return "DR" + string(buf), nil
}
