// Package spectrum computes windowed single-sided magnitude spectra and
// locates spectral peaks with sub-bin accuracy.
//
// [Analyze] windows a finite buffer, zero-pads it to the FFT size and returns
// the bins from DC to Nyquist in linear and dB form, normalized so a
// bin-centred sinusoid of amplitude A reads A. [FindPeak] searches a band and
// refines the maximum by parabolic interpolation. [Harmonics] and
// [HarmonicLevels] produce the marks used when inspecting harmonic content,
// [Spectrogram] the short-time spectra, and [ToneAmplitude] a single-frequency
// Goertzel probe.
package spectrum
