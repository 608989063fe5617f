// Package quantize implements uniform scalar quantization of sample buffers.
//
// Two level layouts are offered. [ModeMidRise] splits [Min, Max] into 2^bits
// equal cells and reconstructs at cell centres, so zero is never a level.
// [ModeMidTread] places 2^bits − 1 symmetric levels k·Δ around zero with
// Δ = 2·xmax/(2^bits − 1). Samples outside the range are clipped silently
// and reported on the [Result].
//
// Optional rectangular or triangular dither, seeded per call, can be added
// before quantization through [Config].
package quantize
