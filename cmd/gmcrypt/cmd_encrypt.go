package main

import (
	"github.com/alecthomas/kong"
	"github.com/tetraquark/gmcrypt"
)

type encryptCmd struct {
	PublicKey  string `arg:"" help:"The recipient's public key, as hex or a path to it."`
	Plaintext  string `arg:"" optional:"" type:"path" default:"-" help:"The path to the plaintext file."`
	Ciphertext string `arg:"" optional:"" type:"path" default:"-" help:"The path to the ciphertext file."`

	Armor bool `help:"Encode the ciphertext as base64."`
}

func (cmd *encryptCmd) Run(_ *kong.Context) error {
	pub, err := decodePublicKey(cmd.PublicKey)
	if err != nil {
		return err
	}

	plaintext, err := readInput(cmd.Plaintext)
	if err != nil {
		return err
	}

	ciphertext, err := gmcrypt.Encrypt(pub, plaintext)
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Ciphertext, cmd.Armor)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = dst.Write(ciphertext)

	return err
}
