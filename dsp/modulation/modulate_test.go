package modulation

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
	"github.com/cwbudde/algo-siglab/internal/testutil"
)

const (
	testRate    = 100000.0
	testLen     = 2500 // 25 ms
	messageHz   = 200.0
	carrierHz   = 5000.0
	levelFloor  = -40.0
	sidebandTol = 1.0
)

func fixture(t *testing.T) (message, carrier *buffer.Buffer) {
	t.Helper()

	var err error

	message, err = buffer.New(testutil.DeterministicSine(messageHz, testRate, 1, testLen), testRate)
	if err != nil {
		t.Fatal(err)
	}

	carrier, err = SineCarrier(carrierHz).Generate(testLen, testRate)
	if err != nil {
		t.Fatal(err)
	}

	return message, carrier
}

func levelAt(s *spectrum.Spectrum, hz float64) float64 {
	return s.MagnitudeDB[s.NearestBin(hz)]
}

func requirePeakNear(t *testing.T, s *spectrum.Spectrum, hz, wantDB float64) {
	t.Helper()

	p, err := spectrum.FindPeak(s, spectrum.WithBand(hz-100, hz+100))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(p.FrequencyHz-hz) > s.BinWidth() {
		t.Fatalf("peak near %v Hz found at %v", hz, p.FrequencyHz)
	}

	if math.Abs(p.MagnitudeDB-wantDB) > sidebandTol {
		t.Fatalf("peak at %v Hz = %.2f dB, want %.2f", hz, p.MagnitudeDB, wantDB)
	}
}

func TestDSBFCSpectralStructure(t *testing.T) {
	message, carrier := fixture(t)

	res, err := Modulate(message, carrier)
	if err != nil {
		t.Fatalf("Modulate() error = %v", err)
	}

	half := 20 * math.Log10(0.5)
	requirePeakNear(t, res.DSBFCSpectrum, carrierHz, 0)
	requirePeakNear(t, res.DSBFCSpectrum, carrierHz-messageHz, half)
	requirePeakNear(t, res.DSBFCSpectrum, carrierHz+messageHz, half)

	if res.ModulationIndex != 1 {
		t.Fatalf("ModulationIndex = %v, want 1", res.ModulationIndex)
	}
}

func TestDSBFCModulationIndexScalesSidebands(t *testing.T) {
	message, carrier := fixture(t)

	res, err := Modulate(message, carrier, WithModulationIndex(0.5))
	if err != nil {
		t.Fatal(err)
	}

	requirePeakNear(t, res.DSBFCSpectrum, carrierHz+messageHz, 20*math.Log10(0.25))

	m, c := message.Samples(), carrier.Samples()
	for i, v := range res.DSBFC.Samples() {
		if want := (1 + 0.5*m[i]) * c[i]; math.Abs(v-want) > 1e-15 {
			t.Fatalf("DSBFC[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestDSBSCSuppressesCarrier(t *testing.T) {
	message, carrier := fixture(t)

	res, err := Modulate(message, carrier)
	if err != nil {
		t.Fatal(err)
	}

	half := 20 * math.Log10(0.5)
	requirePeakNear(t, res.DSBSCSpectrum, carrierHz-messageHz, half)
	requirePeakNear(t, res.DSBSCSpectrum, carrierHz+messageHz, half)

	if got := levelAt(res.DSBSCSpectrum, carrierHz); got > levelFloor {
		t.Fatalf("DSB-SC level at carrier = %.1f dB, want below %.0f", got, levelFloor)
	}

	a, err := spectrum.ToneAmplitude(res.DSBSC, carrierHz)
	if err != nil {
		t.Fatal(err)
	}

	if a > 1e-9 {
		t.Fatalf("DSB-SC carrier amplitude = %v, want about 0", a)
	}
}

func TestUSBKeepsOnlyUpperSideband(t *testing.T) {
	message, carrier := fixture(t)

	res, err := Modulate(message, carrier)
	if err != nil {
		t.Fatal(err)
	}

	if res.Sideband != UpperSideband {
		t.Fatalf("Sideband = %v, want usb", res.Sideband)
	}

	if math.Abs(res.Carrier.FrequencyHz-carrierHz) > 0.5 {
		t.Fatalf("estimated carrier = %v Hz, want %v", res.Carrier.FrequencyHz, carrierHz)
	}

	if math.Abs(res.Carrier.Amplitude-1) > 1e-3 {
		t.Fatalf("estimated amplitude = %v, want 1", res.Carrier.Amplitude)
	}

	requirePeakNear(t, res.SSBSpectrum, carrierHz+messageHz, 0)

	for _, hz := range []float64{carrierHz - messageHz, carrierHz} {
		if got := levelAt(res.SSBSpectrum, hz); got > levelFloor {
			t.Fatalf("USB level at %v Hz = %.1f dB, want below %.0f", hz, got, levelFloor)
		}
	}
}

func TestLSBWithExplicitCarrier(t *testing.T) {
	message, carrier := fixture(t)

	res, err := Modulate(message, carrier,
		WithCarrierHz(carrierHz), WithCarrierAmplitude(1), WithCarrierPhase(-math.Pi/2), WithLowerSideband())
	if err != nil {
		t.Fatal(err)
	}

	requirePeakNear(t, res.SSBSpectrum, carrierHz-messageHz, 0)

	if got := levelAt(res.SSBSpectrum, carrierHz+messageHz); got > levelFloor {
		t.Fatalf("LSB level at upper sideband = %.1f dB", got)
	}

	// m = sin(ωm·t), c = sin(ωc·t): the lower sideband is cos((ωc−ωm)·t).
	want := make([]float64, testLen)
	for i := range want {
		want[i] = math.Cos(2 * math.Pi * (carrierHz - messageHz) * float64(i) / testRate)
	}

	testutil.RequireSliceNearlyEqual(t, res.SSB.Samples(), want, 1e-9)
}

func TestSSBWithCarrier(t *testing.T) {
	message, carrier := fixture(t)

	res, err := Modulate(message, carrier, WithSSBCarrier(), WithCarrierHz(carrierHz))
	if err != nil {
		t.Fatal(err)
	}

	requirePeakNear(t, res.SSBSpectrum, carrierHz, 0)
	requirePeakNear(t, res.SSBSpectrum, carrierHz+messageHz, 0)

	if got := levelAt(res.SSBSpectrum, carrierHz-messageHz); got > levelFloor {
		t.Fatalf("USB+carrier level at lower sideband = %.1f dB", got)
	}
}

func TestModulateErrors(t *testing.T) {
	message, carrier := fixture(t)

	short, err := buffer.New([]float64{1, 2, 3}, testRate)
	if err != nil {
		t.Fatal(err)
	}

	otherRate, err := SineCarrier(carrierHz).Generate(testLen, 48000)
	if err != nil {
		t.Fatal(err)
	}

	silent, err := buffer.New(make([]float64, testLen), testRate)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name             string
		message, carrier *buffer.Buffer
		opts             []Option
		want             error
	}{
		{"nil message", nil, carrier, nil, core.ErrEmptySignal},
		{"nil carrier", message, nil, nil, core.ErrEmptySignal},
		{"length mismatch", message, short, nil, core.ErrInvalidConfig},
		{"rate mismatch", message, otherRate, nil, core.ErrInvalidConfig},
		{"negative index", message, carrier, []Option{WithModulationIndex(-1)}, core.ErrInvalidConfig},
		{"zero carrier", message, carrier, []Option{WithCarrierHz(0)}, core.ErrInvalidConfig},
		{"negative amplitude", message, carrier, []Option{WithCarrierAmplitude(-1)}, core.ErrInvalidConfig},
		{"nan phase", message, carrier, []Option{WithCarrierPhase(math.NaN())}, core.ErrInvalidConfig},
		{"silent carrier", message, silent, nil, core.ErrInvalidConfig},
		{"silent carrier amplitude only", message, silent, []Option{WithCarrierAmplitude(1)}, core.ErrInvalidConfig},
		{"carrier above nyquist", message, carrier, []Option{
			WithCarrierHz(60000), WithCarrierAmplitude(1), WithCarrierPhase(0),
		}, core.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Modulate(tt.message, tt.carrier, tt.opts...); !errors.Is(err, tt.want) {
				t.Fatalf("Modulate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModulateSingleSample(t *testing.T) {
	message, err := buffer.New([]float64{0.5}, testRate)
	if err != nil {
		t.Fatal(err)
	}

	carrier, err := buffer.New([]float64{1}, testRate)
	if err != nil {
		t.Fatal(err)
	}

	full := []Option{WithCarrierHz(carrierHz), WithCarrierAmplitude(1), WithCarrierPhase(0)}

	res, err := Modulate(message, carrier, full...)
	if err != nil {
		t.Fatalf("Modulate() error = %v", err)
	}

	if got := res.DSBFC.Samples(); len(got) != 1 || got[0] != 1.5 {
		t.Fatalf("DSBFC = %v, want [1.5]", got)
	}

	if got := res.DSBSC.Samples(); len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("DSBSC = %v, want [0.5]", got)
	}

	if _, err := Modulate(message, carrier); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("Modulate() without carrier options error = %v, want %v", err, core.ErrInvalidConfig)
	}
}
