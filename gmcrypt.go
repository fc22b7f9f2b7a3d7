// Package gmcrypt implements the SM2 public-key cipher and its companion SM3
// hash, together with the key-pair lifecycle that wraps them.
//
// Encryption produces the C1∥C3∥C2 envelope of GB/T 32918.4-2016: an
// ephemeral curve point, an SM3 integrity tag, and the plaintext masked with
// an SM3-based KDF keystream. Decryption additionally accepts the legacy
// C1∥C2∥C3 segment order produced by older clients, detecting the layout
// automatically, and tolerates ciphertext supplied as base64 or hex text.
//
// All arithmetic is functionally correct but not constant-time; this package
// is not hardened against timing side channels.
package gmcrypt

import "errors"

var (
	// ErrInvalidKey is returned when key bytes or text have a bad length,
	// prefix, or range.
	ErrInvalidKey = errors.New("gmcrypt: invalid key")

	// ErrInvalidCiphertext is returned when a ciphertext is structurally
	// unusable: too short, or with a malformed C1 segment.
	ErrInvalidCiphertext = errors.New("gmcrypt: invalid ciphertext")

	// ErrTamperedCiphertext is returned when a ciphertext parses but its
	// integrity tag does not verify under any supported layout. No plaintext,
	// even partial, is returned alongside it.
	ErrTamperedCiphertext = errors.New("gmcrypt: ciphertext integrity check failed")

	// ErrUndecodableCiphertext is returned when ciphertext text is neither
	// valid base64 nor valid hex.
	ErrUndecodableCiphertext = errors.New("gmcrypt: ciphertext is neither base64 nor hex")
)
