package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/redis/go-redis/v9"
	"github.com/tetraquark/gmcrypt"
	"golang.org/x/term"
)

type cli struct {
	Keygen    keygenCmd    `cmd:"" help:"Generate a new key pair."`
	PublicKey publicKeyCmd `cmd:"" help:"Derive the public key from a private key."`
	Encrypt   encryptCmd   `cmd:"" help:"Encrypt a message for a public key."`
	Decrypt   decryptCmd   `cmd:"" help:"Decrypt a message."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// keyStore connects to Redis and wraps it in a KeyStore.
func keyStore(addr string) (*gmcrypt.KeyStore, func() error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})

	return gmcrypt.NewKeyStore(gmcrypt.NewRedisKV(client)), client.Close
}

// decodePublicKey accepts either hex text or a path to a file of hex text.
func decodePublicKey(textOrPath string) (*gmcrypt.PublicKey, error) {
	var pk gmcrypt.PublicKey
	if err := pk.UnmarshalText([]byte(textOrPath)); err == nil {
		return &pk, nil
	}

	b, err := os.ReadFile(textOrPath)
	if err != nil {
		return nil, err
	}

	if err := pk.UnmarshalText(trimmed(b)); err != nil {
		return nil, err
	}

	return &pk, nil
}

// decodePrivateKey reads hex text from a file, or prompts for it without
// echo when no path is given so the key stays out of shell history and
// terminal scrollback.
func decodePrivateKey(path string) (*gmcrypt.PrivateKey, error) {
	var text []byte

	if path == "" {
		pwd, err := askSecret("Enter private key: ")
		if err != nil {
			return nil, err
		}

		text = pwd
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		text = trimmed(b)
	}

	var pk gmcrypt.PrivateKey
	if err := pk.UnmarshalText(text); err != nil {
		return nil, err
	}

	return &pk, nil
}

func askSecret(prompt string) ([]byte, error) {
	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(int(os.Stdin.Fd()))
}

func trimmed(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}

	return b
}

func openOutput(path string, armor bool) (io.WriteCloser, error) {
	dst := os.Stdout

	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}

		dst = f
	}

	if armor {
		return &base64Encoder{dst: dst, enc: base64.NewEncoder(base64.StdEncoding, dst)}, nil
	}

	return dst, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

type base64Encoder struct {
	dst io.WriteCloser
	enc io.WriteCloser
}

func (b *base64Encoder) Write(p []byte) (n int, err error) {
	return b.enc.Write(p)
}

func (b *base64Encoder) Close() error {
	if err := b.enc.Close(); err != nil {
		return err
	}

	return b.dst.Close()
}

var _ io.WriteCloser = &base64Encoder{}
