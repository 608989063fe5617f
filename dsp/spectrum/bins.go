package spectrum

import (
	"github.com/cwbudde/algo-vecmath"
)

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im := split(in)
	vecmath.Magnitude(out, re, im)

	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im := split(in)
	vecmath.Power(out, re, im)

	return out
}

func split(in []complex128) (re, im []float64) {
	buf := make([]float64, 2*len(in))
	re, im = buf[:len(in)], buf[len(in):]

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im
}
