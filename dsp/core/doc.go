// Package core holds the error taxonomy and small numeric helpers shared by
// the analysis packages.
package core
