package gmcrypt

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tetraquark/gmcrypt/internal/kdf"
	"github.com/tetraquark/gmcrypt/internal/sm2"
	"github.com/tetraquark/gmcrypt/internal/sm3"
)

const (
	c1Size = sm2.PublicKeySize

	// minCiphertextSize is C1 plus the tag; C2 may be empty.
	minCiphertextSize = c1Size + sm3.Size
)

// A layout splits the post-C1 body of an envelope into its tag and masked
// segments. Candidate layouts are tried in order against the same body.
type layout func(body []byte) (tag, masked []byte)

// layouts lists the supported segment orders. The legacy C1∥C2∥C3 order,
// still emitted by most deployed clients, is tried before the native
// C1∥C3∥C2 order.
var layouts = []layout{
	func(body []byte) ([]byte, []byte) { // C1C2C3
		return body[len(body)-sm3.Size:], body[:len(body)-sm3.Size]
	},
	func(body []byte) ([]byte, []byte) { // C1C3C2
		return body[:sm3.Size], body[sm3.Size:]
	},
}

// Decrypt decrypts an envelope with the given private key, auto-detecting
// the C1C2C3 and C1C3C2 segment orders.
//
// Structurally unusable input fails with ErrInvalidCiphertext. Input which
// parses but verifies under no layout fails with ErrTamperedCiphertext, and
// no plaintext is returned with it.
func Decrypt(priv *PrivateKey, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < minCiphertextSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrInvalidCiphertext, len(ciphertext), minCiphertextSize)
	}

	if ciphertext[0] != 0x04 {
		return nil, fmt.Errorf("%w: C1 is not an uncompressed point", ErrInvalidCiphertext)
	}

	c1, err := sm2.Unmarshal(ciphertext[:c1Size])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCiphertext, err)
	}

	shared, err := sm2.ScalarMult(priv.d, c1)
	if err != nil {
		return nil, err
	}

	body := ciphertext[c1Size:]

	for _, split := range layouts {
		c3, masked := split(body)

		plaintext := masked
		if len(masked) > 0 {
			plaintext = xorBytes(masked, kdf.Derive(coordBytes(shared), len(masked)))
		}

		if subtle.ConstantTimeCompare(c3, tag(shared, plaintext)) == 1 {
			return plaintext, nil
		}
	}

	return nil, ErrTamperedCiphertext
}

// DecryptString decrypts ciphertext text and returns the plaintext as a
// UTF-8 string. The text may be base64 or hex; base64 is tried first. Hex
// input may arrive with the leading 0x04 of C1 stripped by clients, which is
// re-inserted when the length allows it.
//
// All-hex text of the right length is also well-formed base64, so decodings
// are candidates like layouts: each successful decoding is attempted in
// order and the first that decrypts wins.
func DecryptString(priv *PrivateKey, ciphertext string) (string, error) {
	candidates := decodeCiphertext(ciphertext)
	if len(candidates) == 0 {
		return "", ErrUndecodableCiphertext
	}

	var lastErr error

	for _, raw := range candidates {
		plaintext, err := Decrypt(priv, raw)
		if err == nil {
			return string(plaintext), nil
		}

		lastErr = err
	}

	return "", lastErr
}

// decodeCiphertext converts ciphertext text to candidate envelope byte
// strings: the base64 decoding first, then the hex decoding with the
// stripped-prefix heuristic.
func decodeCiphertext(s string) [][]byte {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}

		return r
	}, s)

	var candidates [][]byte

	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		candidates = append(candidates, b)
	}

	if b, err := hex.DecodeString(s); err == nil {
		// A 96-byte or longer hex envelope whose first byte is not 0x04 is a
		// C1 with its prefix stripped.
		if len(b) >= minCiphertextSize-1 && b[0] != 0x04 {
			b = append([]byte{0x04}, b...)
		}

		candidates = append(candidates, b)
	}

	return candidates
}
