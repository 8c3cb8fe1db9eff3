package jwskey

import "crypto"

// hashSum hashes message with h, or returns message unchanged if h
// is the zero crypto.Hash (EdDSA, which consumes the message
// directly with no external pre-hash per spec §4.4).
func hashSum(h crypto.Hash, message []byte) []byte {
	if h == 0 {
		return message
	}
	hasher := h.New()
	hasher.Write(message)
	return hasher.Sum(nil)
}
