package gmcrypt

import (
	"errors"
	"strings"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/tetraquark/gmcrypt/internal/sm2"
)

func TestPrivateKeyTextRoundTrip(t *testing.T) {
	t.Parallel()

	pk := testKeys(t)

	text, err := pk.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "text length", 64, len(text))

	var in PrivateKey
	if err := in.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	// Unmarshalling re-derives the public point.
	assert.Equal(t, "derived public key", true, in.PublicKey().Equal(pk.PublicKey()))
}

func TestPrivateKeyBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	pk := testKeys(t)

	b, err := pk.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "binary length", 32, len(b))

	var in PrivateKey
	if err := in.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "derived public key", true, in.PublicKey().Equal(pk.PublicKey()))
}

func TestPrivateKeyUnmarshalInvalid(t *testing.T) {
	t.Parallel()

	var in PrivateKey

	if err := in.UnmarshalText([]byte("not hex")); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}

	// Zero and the group order are out of range.
	if err := in.UnmarshalText([]byte(strings.Repeat("0", 64))); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}

	if err := in.UnmarshalText([]byte(sm2.Params().N.Text(16))); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}

	if err := in.UnmarshalBinary(make([]byte, 31)); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}
