package common

const (
	// Compression constants
	DefaultCompressionLevel = "medium"
	DefaultQuality          = 75
	MaxConcurrencyLimit     = 8

	// File operation constants
	DefaultFilePermissions = 0755
)
