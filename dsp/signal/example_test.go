package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/signal"
)

func ExampleGenerator_Sine() {
	g, err := signal.NewGenerator(1000)
	if err != nil {
		panic(err)
	}

	buf, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}

	x := buf.Samples()
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleNormalize() {
	in, err := buffer.New([]float64{-0.5, 0.25, 1}, 8000)
	if err != nil {
		panic(err)
	}

	out, err := signal.Normalize(in, 0.8)
	if err != nil {
		panic(err)
	}

	x := out.Samples()
	fmt.Printf("%.2f %.2f %.2f\n", x[0], x[1], x[2])

	// Output:
	// -0.40 0.20 0.80
}
