package config

import (
	"os"
	"strings"
)

// DefaultVersion is reported when APP_VERSION is not set
const DefaultVersion = "1.0.1"

// GetVersion returns the version from APP_VERSION (set by CI/CD) or the default
func GetVersion() string {
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}
	return DefaultVersion
}

// UserAgent is sent on every upstream request
func UserAgent() string {
	return "bandwatch/" + GetVersion()
}
