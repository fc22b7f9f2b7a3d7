// Package sm2 implements the group arithmetic of the sm2p256v1 elliptic
// curve, as defined in GB/T 32918-2016, along with key generation and point
// encoding.
//
// The implementation operates on affine coordinates with math/big integers.
// It is functionally correct but not constant-time; keep it away from
// workloads where timing side channels matter.
package sm2

import (
	"errors"
	"math/big"
)

// ErrNoInverse is returned when a modular inverse does not exist. It cannot
// occur for valid operations over the fixed curve; observing it indicates a
// domain-parameter or programming error.
var ErrNoInverse = errors.New("sm2: no modular inverse")

// CurveParams contains the fixed domain parameters of sm2p256v1.
type CurveParams struct {
	P  *big.Int // prime field modulus
	A  *big.Int // curve coefficient a
	B  *big.Int // curve coefficient b
	Gx *big.Int // base point x
	Gy *big.Int // base point y
	N  *big.Int // base point order
}

var (
	params *CurveParams

	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

func init() {
	params = &CurveParams{
		P:  mustHex("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFF"),
		A:  mustHex("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFC"),
		B:  mustHex("28E9FA9E9D9F5E344D5A9E4BCF6509A7F39789F515AB8F92DDBCBD414D940E93"),
		Gx: mustHex("32C4AE2C1F1981195F9904466A39C9948FE30BBFF2660BE1715A4589334C74C7"),
		Gy: mustHex("BC3736A2F4F6779C59BDCEE36B692153D0A9877CC62A474002DF32E52139F0A0"),
		N:  mustHex("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFF7203DF6B21C6052B53BBF40939D54123"),
	}
}

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("sm2: invalid curve parameter")
	}

	return n
}

// Params returns the domain parameters of the curve. The returned struct is
// shared; callers must not mutate it.
func Params() *CurveParams {
	return params
}

// Point is an affine point on the curve. The zero value, with nil
// coordinates, is the point at infinity. Points are immutable; all arithmetic
// returns new points.
type Point struct {
	X, Y *big.Int
}

// Infinity returns the point at infinity, the group's identity element.
func Infinity() Point {
	return Point{}
}

// Infinite reports whether p is the point at infinity.
func (p Point) Infinite() bool {
	return p.X == nil && p.Y == nil
}

// Equal reports whether p and q are the same point, including the infinity
// flag.
func (p Point) Equal(q Point) bool {
	if p.Infinite() || q.Infinite() {
		return p.Infinite() == q.Infinite()
	}

	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// OnCurve reports whether p satisfies the curve equation
// y² = x³ + ax + b (mod p). The point at infinity is considered on the curve.
func (p Point) OnCurve() bool {
	if p.Infinite() {
		return true
	}

	if p.X.Sign() < 0 || p.X.Cmp(params.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(params.P) >= 0 {
		return false
	}

	y2 := new(big.Int).Mul(p.Y, p.Y)
	y2.Mod(y2, params.P)

	return y2.Cmp(rhs(p.X)) == 0
}

// rhs returns x³ + ax + b mod p.
func rhs(x *big.Int) *big.Int {
	r := new(big.Int).Exp(x, three, params.P)
	ax := new(big.Int).Mul(params.A, x)
	r.Add(r, ax)
	r.Add(r, params.B)

	return r.Mod(r, params.P)
}

// ModInverse returns the multiplicative inverse of a modulo m via the
// extended Euclidean algorithm. Negative inputs are normalized into [0, m)
// first. It returns ErrNoInverse when gcd(a, m) != 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	r0 := new(big.Int).Mod(a, m)
	r1 := new(big.Int).Set(m)
	s0 := big.NewInt(1)
	s1 := big.NewInt(0)

	q := new(big.Int)
	tmp := new(big.Int)

	for r1.Sign() != 0 {
		q.Div(r0, r1)

		tmp.Mul(q, r1)
		r0.Sub(r0, tmp)
		r0, r1 = r1, r0

		tmp.Mul(q, s1)
		s0.Sub(s0, tmp)
		s0, s1 = s1, s0
	}

	if r0.Cmp(one) != 0 {
		return nil, ErrNoInverse
	}

	return s0.Mod(s0, m), nil
}

// Add returns p + q.
func Add(p, q Point) (Point, error) {
	if p.Infinite() {
		return q, nil
	}

	if q.Infinite() {
		return p, nil
	}

	if p.X.Cmp(q.X) == 0 {
		if p.Y.Cmp(q.Y) == 0 {
			return Double(p)
		}

		// q is the negation of p.
		return Infinity(), nil
	}

	// λ = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(q.Y, p.Y)
	den := new(big.Int).Sub(q.X, p.X)

	inv, err := ModInverse(den, params.P)
	if err != nil {
		return Point{}, err
	}

	lambda := num.Mul(num, inv)
	lambda.Mod(lambda, params.P)

	return completeAdd(lambda, p, q), nil
}

// Double returns 2p.
func Double(p Point) (Point, error) {
	if p.Infinite() {
		return p, nil
	}

	// λ = (3x² + a) / 2y
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, three)
	num.Add(num, params.A)

	den := new(big.Int).Mul(two, p.Y)

	inv, err := ModInverse(den, params.P)
	if err != nil {
		return Point{}, err
	}

	lambda := num.Mul(num, inv)
	lambda.Mod(lambda, params.P)

	return completeAdd(lambda, p, p), nil
}

// completeAdd finishes a chord-and-tangent step given the slope:
// x3 = λ² - x1 - x2, y3 = λ(x1 - x3) - y1, both mod p.
func completeAdd(lambda *big.Int, p, q Point) Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.X)
	x3.Sub(x3, q.X)
	x3.Mod(x3, params.P)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.Y)
	y3.Mod(y3, params.P)

	return Point{X: x3, Y: y3}
}

// ScalarMult returns k*p via double-and-add over the bits of k, least
// significant first. k must be non-negative; k = 0 yields the point at
// infinity.
func ScalarMult(k *big.Int, p Point) (Point, error) {
	if k.Sign() == 0 {
		return Infinity(), nil
	}

	if k.Cmp(one) == 0 {
		return p, nil
	}

	var err error

	result := Infinity()
	addend := p

	for i, n := 0, k.BitLen(); i < n; i++ {
		if k.Bit(i) == 1 {
			result, err = Add(result, addend)
			if err != nil {
				return Point{}, err
			}
		}

		addend, err = Double(addend)
		if err != nil {
			return Point{}, err
		}
	}

	return result, nil
}

// ScalarBaseMult returns k*G for the curve's base point G.
func ScalarBaseMult(k *big.Int) (Point, error) {
	return ScalarMult(k, Point{X: params.Gx, Y: params.Gy})
}
