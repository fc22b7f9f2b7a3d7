package sm2

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// PrivateKeySize is the length of an encoded private scalar in bytes.
	PrivateKeySize = 32

	// PublicKeySize is the length of an uncompressed encoded point in bytes.
	PublicKeySize = 65

	// CompressedKeySize is the length of a compressed encoded point in bytes.
	CompressedKeySize = 33
)

// ErrInvalidPoint is returned when point bytes have a bad length or prefix,
// or decode to coordinates which are not on the curve.
var ErrInvalidPoint = errors.New("sm2: invalid point encoding")

// RandomScalar returns a scalar drawn uniformly from [1, n-1] using
// crypto/rand, rejecting and resampling out-of-range draws.
func RandomScalar() (*big.Int, error) {
	buf := make([]byte, PrivateKeySize)

	for {
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}

		k := new(big.Int).SetBytes(buf)
		if k.Sign() > 0 && k.Cmp(params.N) < 0 {
			return k, nil
		}
	}
}

// GenerateKey returns a fresh private scalar and its public point d*G.
func GenerateKey() (*big.Int, Point, error) {
	d, err := RandomScalar()
	if err != nil {
		return nil, Point{}, err
	}

	pub, err := ScalarBaseMult(d)
	if err != nil {
		return nil, Point{}, err
	}

	return d, pub, nil
}

// VerifyKey reports whether pub is the public point of the private scalar d.
// This is a sanity check, not a security boundary.
func VerifyKey(d *big.Int, pub Point) bool {
	q, err := ScalarBaseMult(d)
	if err != nil {
		return false
	}

	return q.Equal(pub)
}

// Marshal encodes p in uncompressed form: 0x04 followed by the 32-byte
// big-endian x and y coordinates.
func Marshal(p Point) ([]byte, error) {
	if p.Infinite() {
		return nil, ErrInvalidPoint
	}

	out := make([]byte, PublicKeySize)
	out[0] = 0x04
	p.X.FillBytes(out[1:33])
	p.Y.FillBytes(out[33:])

	return out, nil
}

// MarshalCompressed encodes p in compressed form: 0x02 or 0x03, by the parity
// of y, followed by the 32-byte big-endian x coordinate.
func MarshalCompressed(p Point) ([]byte, error) {
	if p.Infinite() {
		return nil, ErrInvalidPoint
	}

	out := make([]byte, CompressedKeySize)
	out[0] = 0x02 | byte(p.Y.Bit(0))
	p.X.FillBytes(out[1:])

	return out, nil
}

// Unmarshal decodes an uncompressed (65-byte) or compressed (33-byte) point.
// The decoded point is checked against the curve equation.
func Unmarshal(data []byte) (Point, error) {
	switch len(data) {
	case PublicKeySize:
		if data[0] != 0x04 {
			return Point{}, ErrInvalidPoint
		}

		p := Point{
			X: new(big.Int).SetBytes(data[1:33]),
			Y: new(big.Int).SetBytes(data[33:]),
		}

		if !p.OnCurve() {
			return Point{}, ErrInvalidPoint
		}

		return p, nil
	case CompressedKeySize:
		if data[0] != 0x02 && data[0] != 0x03 {
			return Point{}, ErrInvalidPoint
		}

		return decompress(data[0], new(big.Int).SetBytes(data[1:]))
	default:
		return Point{}, ErrInvalidPoint
	}
}

// decompress recovers y from x via y² = x³ + ax + b. Since p ≡ 3 mod 4, a
// square root is y2^((p+1)/4) mod p; the root is flipped to p-y when its
// parity disagrees with the prefix.
func decompress(prefix byte, x *big.Int) (Point, error) {
	if x.Cmp(params.P) >= 0 {
		return Point{}, ErrInvalidPoint
	}

	y2 := rhs(x)

	exp := new(big.Int).Add(params.P, one)
	exp.Rsh(exp, 2)

	y := new(big.Int).Exp(y2, exp, params.P)

	// y2 must actually be a quadratic residue.
	check := new(big.Int).Mul(y, y)
	check.Mod(check, params.P)

	if check.Cmp(y2) != 0 {
		return Point{}, ErrInvalidPoint
	}

	if byte(y.Bit(0)) != prefix-2 {
		y.Sub(params.P, y)
	}

	return Point{X: x, Y: y}, nil
}
