package plane

import (
	"fmt"
	"math"
)

// ComplexNumber is z = Real + Imaginary*i. Values are never mutated, every operation returns a new number.
type ComplexNumber struct {
	Real      float64
	Imaginary float64
}

// Square returns z*z using the binomial expansion
// (x+yi)(x+yi) = x^2 + 2xyi + y^2*i^2 = (x^2 - y^2) + 2xyi
func (z ComplexNumber) Square() ComplexNumber {
	return ComplexNumber{
		Real:      z.Real*z.Real - z.Imaginary*z.Imaginary,
		Imaginary: 2 * z.Real * z.Imaginary,
	}
}

func (z ComplexNumber) Add(other ComplexNumber) ComplexNumber {
	return ComplexNumber{
		Real:      z.Real + other.Real,
		Imaginary: z.Imaginary + other.Imaginary,
	}
}

// ModulusSquared returns |z|^2. Only ever compared against thresholds so the square root is skipped.
func (z ComplexNumber) ModulusSquared() float64 {
	return z.Real*z.Real + z.Imaginary*z.Imaginary
}

// String formats the number the way the selected point is reported: "z = 0.25 - 0.5i"
func (z ComplexNumber) String() string {
	connector := "+"
	if z.Imaginary < 0 {
		connector = "-"
	}
	return fmt.Sprintf("z = %s %s %si", trimDecimal(z.Real), connector, trimDecimal(math.Abs(z.Imaginary)))
}

// trimDecimal rounds to two decimals and drops trailing zeros
func trimDecimal(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
