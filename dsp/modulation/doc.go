// Package modulation produces amplitude-modulated signals from a message and
// a carrier buffer: double sideband with carrier (DSB-FC), suppressed
// carrier (DSB-SC) and single sideband (SSB) using the analytic message.
//
// Every modulated output comes with its magnitude spectrum so sideband
// structure can be inspected directly.
package modulation
