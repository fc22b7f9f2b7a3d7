package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
)

type publicKeyCmd struct {
	PrivateKey string `arg:"" optional:"" type:"existingfile" help:"The path to the hex private key. Prompted for when omitted."`
	Output     string `arg:"" optional:"" type:"path" default:"-" help:"The output path for the public key."`

	Redis string `placeholder:"HOST:PORT" help:"Read the active pair from Redis instead."`
}

func (cmd *publicKeyCmd) Run(_ *kong.Context) error {
	var (
		pub string
		err error
	)

	if cmd.Redis != "" {
		ks, closeStore := keyStore(cmd.Redis)
		defer func() { _ = closeStore() }()

		pub, err = ks.PublicKeyHex(context.Background())
		if err != nil {
			return err
		}
	} else {
		pk, err := decodePrivateKey(cmd.PrivateKey)
		if err != nil {
			return err
		}

		pub = pk.PublicKey().String()
	}

	dst, err := openOutput(cmd.Output, false)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = io.WriteString(dst, fmt.Sprintln(pub))

	return err
}
