package gmcrypt

import (
	"errors"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestPublicKeyTextRoundTrip(t *testing.T) {
	t.Parallel()

	pk := testKeys(t)

	text, err := pk.PublicKey().MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "text length", 130, len(text))

	var in PublicKey
	if err := in.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", true, in.Equal(pk.PublicKey()))
	assert.Equal(t, "string form", string(text), in.String())
}

func TestPublicKeyCompressedRoundTrip(t *testing.T) {
	t.Parallel()

	pk := testKeys(t)

	b, err := pk.PublicKey().Compressed()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "compressed length", 33, len(b))

	var in PublicKey
	if err := in.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "compressed round trip", true, in.Equal(pk.PublicKey()))
}

func TestPublicKeyUnmarshalInvalid(t *testing.T) {
	t.Parallel()

	var in PublicKey

	if err := in.UnmarshalText([]byte("zz")); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}

	if err := in.UnmarshalBinary(make([]byte, 64)); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}

	// Right length, bad prefix.
	bad := make([]byte, 65)
	bad[0] = 0x06

	if err := in.UnmarshalBinary(bad); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}
