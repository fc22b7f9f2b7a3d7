package gmcrypt

import (
	"context"
	"errors"
	"testing"

	"github.com/codahale/gubbins/assert"
)

// memKV is an in-memory KV for tests.
type memKV struct {
	m map[string]string
}

func newMemKV() *memKV {
	return &memKV{m: make(map[string]string)}
}

func (f *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.m[key]

	return v, ok, nil
}

func (f *memKV) Set(_ context.Context, key, value string) error {
	f.m[key] = value

	return nil
}

func (f *memKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.m, k)
	}

	return nil
}

var _ KV = &memKV{}

func TestKeyStoreGetOrCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newMemKV()
	ks := NewKeyStore(kv)

	first, err := ks.GetOrCreate(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// Both halves are persisted as fixed-length hex.
	priv, ok := kv.m[privateKeyName]

	assert.Equal(t, "private entry present", true, ok)
	assert.Equal(t, "private entry length", 64, len(priv))

	pub, ok := kv.m[publicKeyName]

	assert.Equal(t, "public entry present", true, ok)
	assert.Equal(t, "public entry length", 130, len(pub))

	// A second call loads the same pair.
	second, err := ks.GetOrCreate(ctx)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "stable key pair",
		first.PublicKey().String(), second.PublicKey().String())
	assert.Equal(t, "stored public key", pub, second.PublicKey().String())
}

func TestKeyStoreHalfPairRegenerates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newMemKV()
	ks := NewKeyStore(kv)

	if _, err := ks.GetOrCreate(ctx); err != nil {
		t.Fatal(err)
	}

	// Losing either entry makes the pair absent.
	old := kv.m[publicKeyName]
	_ = kv.Del(ctx, publicKeyName)

	if _, err := ks.GetOrCreate(ctx); err != nil {
		t.Fatal(err)
	}

	if kv.m[publicKeyName] == old {
		t.Error("expected a regenerated key pair")
	}
}

func TestKeyStoreClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ks := NewKeyStore(newMemKV())

	before, err := ks.PublicKeyHex(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := ks.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	after, err := ks.PublicKeyHex(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if before == after {
		t.Error("expected a fresh key pair after Clear")
	}
}

func TestKeyStoreEncryptDecrypt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ks := NewKeyStore(newMemKV())

	ct, err := ks.Encrypt(ctx, "stored-pair round trip")
	if err != nil {
		t.Fatal(err)
	}

	got, err := ks.Decrypt(ctx, ct)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", "stored-pair round trip", got)
}

func TestKeyStoreVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newMemKV()
	ks := NewKeyStore(kv)

	assert.Equal(t, "empty store", false, ks.Verify(ctx))

	if _, err := ks.GetOrCreate(ctx); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "fresh pair", true, ks.Verify(ctx))

	// A public key that doesn't match the private scalar fails.
	other, err := GenerateKeys()
	if err != nil {
		t.Fatal(err)
	}

	_ = kv.Set(ctx, publicKeyName, other.PublicKey().String())

	assert.Equal(t, "mismatched pair", false, ks.Verify(ctx))
}

func TestKeyStoreCorruptPrivateKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newMemKV()
	ks := NewKeyStore(kv)

	if _, err := ks.GetOrCreate(ctx); err != nil {
		t.Fatal(err)
	}

	_ = kv.Set(ctx, privateKeyName, "not hex at all")

	if _, err := ks.GetOrCreate(ctx); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}
