package gmcrypt

import (
	"context"
	"fmt"
	"math/big"

	"github.com/tetraquark/gmcrypt/internal/sm2"
)

// Names of the two persisted key entries. The private scalar is stored as 64
// hex characters, the uncompressed public point as 130.
const (
	privateKeyName = "sm2:keys:private_key"
	publicKeyName  = "sm2:keys:public_key"
)

// KV is the minimal key-value contract the key store needs from its
// persistence backend. Get reports absence with a false second return rather
// than an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// KeyStore holds the process's single active key pair in an external
// key-value store, generating one on first use.
//
// The arithmetic underneath is stateless; the store is the only shared
// mutable state in the package.
type KeyStore struct {
	kv KV
}

// NewKeyStore returns a KeyStore backed by the given store.
func NewKeyStore(kv KV) *KeyStore {
	return &KeyStore{kv: kv}
}

// GetOrCreate returns the persisted key pair, generating and persisting a
// fresh one when either half is absent.
//
// The load-else-generate sequence is not atomic: concurrent first-time calls
// against an empty store may each generate a pair, with the last writer's
// keys winning. Serialize the first call when exactly-once initialization
// matters.
func (s *KeyStore) GetOrCreate(ctx context.Context) (*PrivateKey, error) {
	privHex, okPriv, err := s.kv.Get(ctx, privateKeyName)
	if err != nil {
		return nil, err
	}

	_, okPub, err := s.kv.Get(ctx, publicKeyName)
	if err != nil {
		return nil, err
	}

	if okPriv && okPub {
		var pk PrivateKey
		if err := pk.UnmarshalText([]byte(privHex)); err != nil {
			return nil, fmt.Errorf("stored private key: %w", err)
		}

		return &pk, nil
	}

	pk, err := GenerateKeys()
	if err != nil {
		return nil, err
	}

	privText, err := pk.MarshalText()
	if err != nil {
		return nil, err
	}

	if err := s.kv.Set(ctx, privateKeyName, string(privText)); err != nil {
		return nil, err
	}

	if err := s.kv.Set(ctx, publicKeyName, pk.PublicKey().String()); err != nil {
		return nil, err
	}

	return pk, nil
}

// PublicKeyHex returns the active public key as uncompressed hex, for
// handing to encryption clients. The private half never crosses this
// surface.
func (s *KeyStore) PublicKeyHex(ctx context.Context) (string, error) {
	pk, err := s.GetOrCreate(ctx)
	if err != nil {
		return "", err
	}

	return pk.PublicKey().String(), nil
}

// Encrypt encrypts a UTF-8 string with the active public key and returns the
// envelope as base64.
func (s *KeyStore) Encrypt(ctx context.Context, plaintext string) (string, error) {
	pk, err := s.GetOrCreate(ctx)
	if err != nil {
		return "", err
	}

	return EncryptString(pk.PublicKey(), plaintext)
}

// Decrypt decrypts base64 or hex ciphertext with the active private key and
// returns the plaintext as a UTF-8 string.
func (s *KeyStore) Decrypt(ctx context.Context, ciphertext string) (string, error) {
	pk, err := s.GetOrCreate(ctx)
	if err != nil {
		return "", err
	}

	return DecryptString(pk, ciphertext)
}

// Verify reports whether the persisted pair is consistent: both halves
// present, parseable, and the public point equal to the derived one. It is a
// sanity check, not a security boundary.
func (s *KeyStore) Verify(ctx context.Context) bool {
	privHex, okPriv, err := s.kv.Get(ctx, privateKeyName)
	if err != nil || !okPriv {
		return false
	}

	pubHex, okPub, err := s.kv.Get(ctx, publicKeyName)
	if err != nil || !okPub {
		return false
	}

	d, ok := new(big.Int).SetString(privHex, 16)
	if !ok {
		return false
	}

	var pub PublicKey
	if err := pub.UnmarshalText([]byte(pubHex)); err != nil {
		return false
	}

	return sm2.VerifyKey(d, pub.p)
}

// Clear removes the persisted pair. The next GetOrCreate call regenerates.
func (s *KeyStore) Clear(ctx context.Context) error {
	return s.kv.Del(ctx, privateKeyName, publicKeyName)
}
