//go:build !(linux || darwin || freebsd || netbsd || openbsd || windows)

package platform

func release() string { return "" }
