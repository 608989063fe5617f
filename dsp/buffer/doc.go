// Package buffer provides the sample-buffer data model: a finite sequence of
// real (Buffer) or complex (Complex) samples bound to a positive sample rate.
//
// Every constructor enforces N >= 1 and fs > 0. Analysis packages accept
// *Buffer values and return new ones; they never keep a reference to a
// caller's buffer after returning.
package buffer
