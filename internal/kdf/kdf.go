// Package kdf implements the key derivation function of GB/T 32918.4-2016,
// expanding a fixed-size shared secret into an arbitrary-length keystream
// using SM3.
//
// Derivation runs ceil(n/32) rounds; round i (1-indexed) hashes the secret
// followed by the round counter as a big-endian uint32, and the concatenated
// round outputs are truncated to n bytes.
package kdf

import (
	"encoding/binary"

	"github.com/tetraquark/gmcrypt/internal/sm3"
)

// Derive returns n bytes of keystream derived from secret. It returns an
// empty slice when n is zero.
func Derive(secret []byte, n int) []byte {
	if n <= 0 {
		return nil
	}

	var counter [4]byte

	out := make([]byte, 0, ((n+sm3.Size-1)/sm3.Size)*sm3.Size)
	h := sm3.New()

	for i := uint32(1); len(out) < n; i++ {
		binary.BigEndian.PutUint32(counter[:], i)

		h.Reset()
		_, _ = h.Write(secret)
		_, _ = h.Write(counter[:])

		out = h.Sum(out)
	}

	return out[:n]
}
