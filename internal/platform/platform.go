package platform

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Result directory names, in matching priority order.
const (
	Linux   = "Linux"
	Windows = "Windows"
	Other   = "Other"
)

// Dirs returns the result directory names in matching priority order.
func Dirs() []string {
	return []string{Linux, Windows, Other}
}

// DirFor maps a platform descriptor to its result directory by substring
// match: "Linux" wins over "Windows", and anything else is Other. A
// descriptor containing both substrings maps to Linux.
func DirFor(descriptor string) string {
	switch {
	case strings.Contains(descriptor, Linux):
		return Linux
	case strings.Contains(descriptor, Windows):
		return Windows
	default:
		return Other
	}
}

// Descriptor returns "<OS>-<release>-<arch>" for the running host, e.g.
// "Linux-6.8.0-45-generic-amd64" or "Windows-10.0.22631-amd64". The release
// is left out when the OS does not report one.
func Descriptor() string {
	parts := []string{osName(runtime.GOOS)}
	if rel := release(); rel != "" {
		parts = append(parts, rel)
	}
	parts = append(parts, runtime.GOARCH)
	return strings.Join(parts, "-")
}

// RuntimeVersion returns the Go toolchain version with compiler and target,
// e.g. "go1.25.7 (gc linux/amd64)".
func RuntimeVersion() string {
	return fmt.Sprintf("%s (%s %s/%s)", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
}

func osName(goos string) string {
	return cases.Title(language.English).String(goos)
}
