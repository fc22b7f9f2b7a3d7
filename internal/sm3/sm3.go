// Package sm3 implements the SM3 cryptographic hash algorithm as defined in
// GB/T 32905-2016.
//
// SM3 is a Merkle–Damgård hash with a 256-bit state, 512-bit blocks, and a
// 64-round compression function. The digest type follows the crypto/sha256
// conventions: it implements hash.Hash, and Sum operates on a copy of the
// internal state, so a hasher remains valid for further Write calls after any
// number of Sum calls.
package sm3

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the size of an SM3 digest in bytes.
	Size = 32

	// BlockSize is the block size of SM3 in bytes.
	BlockSize = 64
)

const (
	init0 = 0x7380166f
	init1 = 0x4914b2b9
	init2 = 0x172442d7
	init3 = 0xda8a0600
	init4 = 0xa96f30bc
	init5 = 0x163138aa
	init6 = 0xe38dee4d
	init7 = 0xb0fb0e4e
)

// digest represents the partial evaluation of a checksum.
type digest struct {
	h   [8]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

// New returns a new hash.Hash computing the SM3 checksum.
func New() hash.Hash {
	d := new(digest)
	d.Reset()

	return d
}

// Sum returns the SM3 checksum of data.
func Sum(data []byte) [Size]byte {
	var d digest

	d.Reset()
	_, _ = d.Write(data)

	return d.checkSum()
}

func (d *digest) Reset() {
	d.h = [8]uint32{init0, init1, init2, init3, init4, init5, init6, init7}
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (n int, err error) {
	n = len(p)
	d.len += uint64(n)

	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c

		if d.nx == BlockSize {
			block(d, d.x[:])
			d.nx = 0
		}

		p = p[c:]
	}

	if len(p) >= BlockSize {
		m := len(p) &^ (BlockSize - 1)
		block(d, p[:m])
		p = p[m:]
	}

	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}

	return n, nil
}

// Sum appends the current checksum to in and returns the resulting slice. It
// does not change the underlying hash state.
func (d *digest) Sum(in []byte) []byte {
	// Make a copy of d so that callers can keep writing and summing.
	d0 := *d
	sum := d0.checkSum()

	return append(in, sum[:]...)
}

// checkSum pads and compresses the remaining buffered input, consuming the
// receiver. Callers which need the hasher afterwards must pass a copy.
func (d *digest) checkSum() [Size]byte {
	bitLen := d.len << 3

	// Padding: a single 0x80 byte, then zeros until the length is congruent
	// to 56 mod 64, then the bit length as a big-endian uint64.
	var tmp [BlockSize + 8]byte
	tmp[0] = 0x80

	pad := 56 - int(d.len%BlockSize)
	if pad <= 0 {
		pad += BlockSize
	}

	binary.BigEndian.PutUint64(tmp[pad:], bitLen)
	_, _ = d.Write(tmp[:pad+8])

	var out [Size]byte
	for i, v := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}

	return out
}

func ff(x, y, z uint32, j int) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}

	return (x & y) | (x & z) | (y & z)
}

func gg(x, y, z uint32, j int) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}

	return (x & y) | (^x & z)
}

func p0(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 9) ^ bits.RotateLeft32(x, 17)
}

func p1(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 23)
}

func t(j int) uint32 {
	if j < 16 {
		return 0x79cc4519
	}

	return 0x7a879d8a
}

// block compresses one or more complete 64-byte blocks into the running
// state.
func block(d *digest, p []byte) {
	var w [68]uint32

	for len(p) >= BlockSize {
		// Message expansion.
		for j := 0; j < 16; j++ {
			w[j] = binary.BigEndian.Uint32(p[j*4:])
		}

		for j := 16; j < 68; j++ {
			w[j] = p1(w[j-16]^w[j-9]^bits.RotateLeft32(w[j-3], 15)) ^
				bits.RotateLeft32(w[j-13], 7) ^ w[j-6]
		}

		a, b, c, dd := d.h[0], d.h[1], d.h[2], d.h[3]
		e, f, g, h := d.h[4], d.h[5], d.h[6], d.h[7]

		for j := 0; j < 64; j++ {
			ss1 := bits.RotateLeft32(bits.RotateLeft32(a, 12)+e+bits.RotateLeft32(t(j), j%32), 7)
			ss2 := ss1 ^ bits.RotateLeft32(a, 12)
			tt1 := ff(a, b, c, j) + dd + ss2 + (w[j] ^ w[j+4])
			tt2 := gg(e, f, g, j) + h + ss1 + w[j]

			dd = c
			c = bits.RotateLeft32(b, 9)
			b = a
			a = tt1
			h = g
			g = bits.RotateLeft32(f, 19)
			f = e
			e = p0(tt2)
		}

		d.h[0] ^= a
		d.h[1] ^= b
		d.h[2] ^= c
		d.h[3] ^= dd
		d.h[4] ^= e
		d.h[5] ^= f
		d.h[6] ^= g
		d.h[7] ^= h

		p = p[BlockSize:]
	}
}
