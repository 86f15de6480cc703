// Package config manages settings stored at ~/.serialcheck/config.yaml and
// in SERIALCHECK_* environment variables: where result directories live,
// which hash and protocol generation uses, and an optional platform
// descriptor override.
package config
