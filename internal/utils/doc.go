// Package utils provides shared configuration loading and logger
// construction helpers used by the CLI entrypoint.
package utils
