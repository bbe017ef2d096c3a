// Package env keeps names of environment variables with special significance to
// Noviq.
package env

// Environment variables with special significance to Noviq.
const (
	HOME           = "HOME"
	NOVIQ_CONFIG   = "NOVIQ_CONFIG"
	XDG_STATE_HOME = "XDG_STATE_HOME"
)
