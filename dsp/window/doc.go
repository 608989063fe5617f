// Package window generates the tapering windows used for spectral analysis.
//
// Windows are named, swappable policies: an enumerated [Type] that can be
// resolved from a name with [Parse]. Spectral analysis uses the periodic form
// ([WithPeriodic]); [Generate] defaults to the symmetric form.
package window
