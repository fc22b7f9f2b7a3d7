package gmcrypt

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/tetraquark/gmcrypt/internal/sm2"
)

// PrivateKey is the private half of a key pair, used to decrypt messages.
//
// It marshals as the 32-byte big-endian scalar, or as 64 characters of hex.
// Nothing in this package ever writes a private key anywhere but through
// these marshalling methods.
type PrivateKey struct {
	d   *big.Int
	pub PublicKey
}

// GenerateKeys returns a fresh key pair: a private scalar drawn uniformly
// from [1, n-1] with crypto/rand, and the public point derived from it.
func GenerateKeys() (*PrivateKey, error) {
	d, pub, err := sm2.GenerateKey()
	if err != nil {
		return nil, err
	}

	return &PrivateKey{d: d, pub: PublicKey{p: pub}}, nil
}

// PublicKey returns the corresponding PublicKey for the receiver.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &pk.pub
}

// MarshalBinary encodes the private scalar into 32 big-endian bytes.
func (pk *PrivateKey) MarshalBinary() (data []byte, err error) {
	out := make([]byte, sm2.PrivateKeySize)
	pk.d.FillBytes(out)

	return out, nil
}

// UnmarshalBinary decodes a private scalar from 32 big-endian bytes and
// derives its public point.
func (pk *PrivateKey) UnmarshalBinary(data []byte) error {
	if len(data) != sm2.PrivateKeySize {
		return fmt.Errorf("%w: private key must be %d bytes", ErrInvalidKey, sm2.PrivateKeySize)
	}

	return pk.setScalar(new(big.Int).SetBytes(data))
}

// MarshalText encodes the private scalar into 64 characters of hex.
func (pk *PrivateKey) MarshalText() (text []byte, err error) {
	b, err := pk.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return []byte(hex.EncodeToString(b)), nil
}

// UnmarshalText decodes the results of MarshalText and updates the receiver
// to contain the decoded private key.
func (pk *PrivateKey) UnmarshalText(text []byte) error {
	d, ok := new(big.Int).SetString(string(text), 16)
	if !ok {
		return fmt.Errorf("%w: not hexadecimal", ErrInvalidKey)
	}

	return pk.setScalar(d)
}

// setScalar validates the scalar range and derives the public point.
func (pk *PrivateKey) setScalar(d *big.Int) error {
	if d.Sign() <= 0 || d.Cmp(sm2.Params().N) >= 0 {
		return fmt.Errorf("%w: private scalar out of range", ErrInvalidKey)
	}

	pub, err := sm2.ScalarBaseMult(d)
	if err != nil {
		return err
	}

	pk.d = d
	pk.pub = PublicKey{p: pub}

	return nil
}

var (
	_ encoding.BinaryMarshaler   = &PrivateKey{}
	_ encoding.BinaryUnmarshaler = &PrivateKey{}
	_ encoding.TextMarshaler     = &PrivateKey{}
	_ encoding.TextUnmarshaler   = &PrivateKey{}
)
