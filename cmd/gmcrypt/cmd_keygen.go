package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/tetraquark/gmcrypt"
)

type keygenCmd struct {
	Output string `arg:"" type:"path" default:"-" help:"The output path for the hex private key."`

	Redis string `placeholder:"HOST:PORT" help:"Persist the pair in Redis instead of writing it out."`
}

func (cmd *keygenCmd) Run(_ *kong.Context) error {
	if cmd.Redis != "" {
		ks, closeStore := keyStore(cmd.Redis)
		defer func() { _ = closeStore() }()

		// GetOrCreate generates and persists the pair when the store is
		// empty; only the public half is printed.
		pub, err := ks.PublicKeyHex(context.Background())
		if err != nil {
			return err
		}

		_, err = fmt.Println(pub)

		return err
	}

	pk, err := gmcrypt.GenerateKeys()
	if err != nil {
		return err
	}

	text, err := pk.MarshalText()
	if err != nil {
		return err
	}

	if cmd.Output == "-" {
		_, err = fmt.Println(string(text))

		return err
	}

	if err := os.WriteFile(cmd.Output, append(text, '\n'), 0o600); err != nil {
		return err
	}

	_, err = fmt.Println(pk.PublicKey().String())

	return err
}
