// package intcode is the root of the intcode machine module.
package intcode

import (
	"encoding/hex"
	"strings"

	"lukechampine.com/blake3"
)

// Word is the unit of memory and the type of every value a program computes.
type Word = int64

// FingerprintSize is the size of a program Fingerprint in bytes
const FingerprintSize = 32

// Fingerprint identifies a program by its text.
type Fingerprint [FingerprintSize]byte

// FingerprintText calculates the fingerprint of program text.
// Surrounding whitespace and a trailing comma do not change the fingerprint.
func FingerprintText(text string) (ret Fingerprint) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ",")
	h := blake3.New(FingerprintSize, nil)
	h.Write([]byte(text))
	h.Sum(ret[:0])
	return ret
}

func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}
