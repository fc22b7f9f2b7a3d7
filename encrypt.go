package gmcrypt

import (
	"encoding/base64"

	"github.com/tetraquark/gmcrypt/internal/kdf"
	"github.com/tetraquark/gmcrypt/internal/sm2"
	"github.com/tetraquark/gmcrypt/internal/sm3"
)

// Encrypt encrypts plaintext to the given public key and returns the
// C1∥C3∥C2 envelope: the 65-byte uncompressed ephemeral point k*G, the
// 32-byte SM3 tag over x2∥plaintext∥y2, and the plaintext masked with the
// KDF keystream of the shared point k*P.
//
// A fresh random scalar k is drawn per call, so repeated encryptions of the
// same plaintext produce different ciphertexts. An empty plaintext yields an
// empty C2 and a ciphertext of exactly 97 bytes.
func Encrypt(pub *PublicKey, plaintext []byte) ([]byte, error) {
	for {
		k, err := sm2.RandomScalar()
		if err != nil {
			return nil, err
		}

		c1, err := sm2.ScalarBaseMult(k)
		if err != nil {
			return nil, err
		}

		shared, err := sm2.ScalarMult(k, pub.p)
		if err != nil {
			return nil, err
		}

		mask := kdf.Derive(coordBytes(shared), len(plaintext))

		// An all-zero keystream would leave the plaintext unmasked; draw a
		// new k. Empty plaintexts have an empty keystream and never retry.
		if len(plaintext) > 0 && allZero(mask) {
			continue
		}

		c1Bytes, err := sm2.Marshal(c1)
		if err != nil {
			return nil, err
		}

		out := make([]byte, 0, len(c1Bytes)+sm3.Size+len(plaintext))
		out = append(out, c1Bytes...)
		out = append(out, tag(shared, plaintext)...)
		out = append(out, xorBytes(plaintext, mask)...)

		return out, nil
	}
}

// EncryptString encrypts a UTF-8 string and returns the envelope as base64.
// This, with DecryptString and KeyStore, is the surface the surrounding
// application consumes.
func EncryptString(pub *PublicKey, plaintext string) (string, error) {
	ct, err := Encrypt(pub, []byte(plaintext))
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(ct), nil
}

// coordBytes returns the 64-byte big-endian x∥y of a point, the shared
// secret material fed to the KDF.
func coordBytes(p sm2.Point) []byte {
	out := make([]byte, 64)
	p.X.FillBytes(out[:32])
	p.Y.FillBytes(out[32:])

	return out
}

// tag computes C3 = SM3(x ∥ plaintext ∥ y) for the shared point.
func tag(p sm2.Point, plaintext []byte) []byte {
	var coord [32]byte

	h := sm3.New()

	p.X.FillBytes(coord[:])
	_, _ = h.Write(coord[:])
	_, _ = h.Write(plaintext)
	p.Y.FillBytes(coord[:])
	_, _ = h.Write(coord[:])

	return h.Sum(nil)
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}

	return out
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}

	return acc == 0
}
