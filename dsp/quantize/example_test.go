package quantize_test

import (
	"fmt"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/quantize"
)

func ExampleQuantize() {
	buf, err := buffer.New([]float64{-1, -0.2, 0.3, 0.9, 1.4}, 8000)
	if err != nil {
		panic(err)
	}

	res, err := quantize.Quantize(buf, quantize.Config{Bits: 2, Min: -1, Max: 1, Mode: quantize.ModeMidRise})
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Quantized.Samples(), res.Codes, res.ClippedCount)
	// Output:
	// [-0.75 -0.25 0.25 0.75 0.75] [0 1 2 3 3] 1
}

func ExampleTheoreticalSQNR() {
	fmt.Printf("%.2f dB\n", quantize.TheoreticalSQNR(16))
	// Output:
	// 98.08 dB
}
