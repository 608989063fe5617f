package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
)

func ExampleNew() {
	b, err := buffer.New([]float64{0, 0.5, 1, 0.5}, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("len=%d fs=%.0f dur=%.2fs\n", b.Len(), b.SampleRate(), b.Duration())
	// Output:
	// len=4 fs=4 dur=1.00s
}

func ExampleDeinterleave() {
	chans, _ := buffer.Deinterleave([]float64{1, -1, 2, -2}, 2, 44100)
	fmt.Println(chans[0].Samples(), chans[1].Samples())
	// Output:
	// [1 2] [-1 -2]
}
