package main

import (
	"github.com/alecthomas/kong"
	"github.com/tetraquark/gmcrypt"
)

type decryptCmd struct {
	Ciphertext string `arg:"" optional:"" type:"path" default:"-" help:"The path to the ciphertext file."`
	Plaintext  string `arg:"" optional:"" type:"path" default:"-" help:"The path to the plaintext file."`

	Key   string `type:"existingfile" help:"The path to the hex private key. Prompted for when omitted."`
	Armor bool   `help:"Decode the ciphertext as base64 or hex text."`
}

func (cmd *decryptCmd) Run(_ *kong.Context) error {
	pk, err := decodePrivateKey(cmd.Key)
	if err != nil {
		return err
	}

	ciphertext, err := readInput(cmd.Ciphertext)
	if err != nil {
		return err
	}

	var plaintext []byte

	if cmd.Armor {
		s, err := gmcrypt.DecryptString(pk, string(ciphertext))
		if err != nil {
			return err
		}

		plaintext = []byte(s)
	} else {
		plaintext, err = gmcrypt.Decrypt(pk, ciphertext)
		if err != nil {
			return err
		}
	}

	dst, err := openOutput(cmd.Plaintext, false)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = dst.Write(plaintext)

	return err
}
