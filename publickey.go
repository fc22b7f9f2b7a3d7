package gmcrypt

import (
	"encoding"
	"encoding/hex"
	"fmt"

	"github.com/tetraquark/gmcrypt/internal/sm2"
)

// PublicKey is a key used to encrypt messages.
//
// It marshals as the 65-byte uncompressed point encoding, or as 130
// characters of hex for human consumption.
type PublicKey struct {
	p sm2.Point
}

// String returns the public key as uncompressed hex.
func (pk *PublicKey) String() string {
	text, err := pk.MarshalText()
	if err != nil {
		panic(err)
	}

	return string(text)
}

// Equal reports whether pk and other represent the same point.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.p.Equal(other.p)
}

// Compressed returns the 33-byte compressed encoding of the public key.
func (pk *PublicKey) Compressed() ([]byte, error) {
	b, err := sm2.MarshalCompressed(pk.p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return b, nil
}

// MarshalBinary encodes the public key into the 65-byte uncompressed form.
func (pk *PublicKey) MarshalBinary() (data []byte, err error) {
	b, err := sm2.Marshal(pk.p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return b, nil
}

// UnmarshalBinary decodes a public key from its 65-byte uncompressed or
// 33-byte compressed form, rejecting points which are not on the curve.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	p, err := sm2.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	pk.p = p

	return nil
}

// MarshalText encodes the public key into uncompressed hex.
func (pk *PublicKey) MarshalText() (text []byte, err error) {
	b, err := pk.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return []byte(hex.EncodeToString(b)), nil
}

// UnmarshalText decodes the results of MarshalText and updates the receiver
// to contain the decoded public key. Compressed hex is accepted as well.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	data, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("%w: not hexadecimal", ErrInvalidKey)
	}

	return pk.UnmarshalBinary(data)
}

var (
	_ encoding.BinaryMarshaler   = &PublicKey{}
	_ encoding.BinaryUnmarshaler = &PublicKey{}
	_ encoding.TextMarshaler     = &PublicKey{}
	_ encoding.TextUnmarshaler   = &PublicKey{}
	_ fmt.Stringer               = &PublicKey{}
)
