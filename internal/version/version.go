// Package version holds textdex's build version.
package version

// Version is the running build's version string.
const Version = "0.1.0"
