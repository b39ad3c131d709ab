// utils/utils.go
package utils

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// HashHexLength is the length of a rendered object id.
const HashHexLength = 40

// HashBytes calculates the BLAKE2b-160 hash of the given data, including
// the Gitlet object header. The 20-byte digest renders as 40 lowercase hex
// characters, the id format used for blobs and commits alike.
func HashBytes(objectType string, data []byte) string {
	header := fmt.Sprintf("%s %d\x00", objectType, len(data))
	h, err := blake2b.New(20, nil)
	if err != nil {
		// blake2b.New only fails for invalid digest sizes.
		panic(err)
	}
	h.Write([]byte(header))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// IsValidHex checks if a string is a valid lowercase hexadecimal value.
func IsValidHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// IsValidObjectID reports whether s has the shape of a full object id.
func IsValidObjectID(s string) bool {
	return len(s) == HashHexLength && IsValidHex(s)
}
