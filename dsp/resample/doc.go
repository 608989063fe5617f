// Package resample converts finite buffers between sample rates by
// band-limited interpolation in the DFT domain.
//
// No anti-aliasing filter is applied. In the default [ModeFold] every input
// bin is mapped onto the output bin grid modulo the output length, which is
// the same as sampling the band-limited reconstruction of the input at the
// new instants: components above the new Nyquist frequency alias to
// |f − n·fs|, the effect the package exists to demonstrate. [ModeTruncate]
// discards those components instead.
//
// Common workflows:
//   - Resample(buf, targetFs, opts...)
//   - OutputLen(n, fs, targetFs) to predict the output length
//   - Regime and AliasFrequency to label and predict aliasing
package resample
