package analytic_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/analytic"
	"github.com/cwbudde/algo-siglab/dsp/buffer"
)

func ExampleEnvelope() {
	x := make([]float64, 64)
	for i := range x {
		x[i] = 0.8 * math.Cos(2*math.Pi*8*float64(i)/64)
	}

	buf, err := buffer.New(x, 64)
	if err != nil {
		panic(err)
	}

	env, err := analytic.Envelope(buf)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.3f %.3f\n", env.Samples()[0], env.Samples()[37])
	// Output:
	// 0.800 0.800
}
