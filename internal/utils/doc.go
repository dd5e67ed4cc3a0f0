// Package utils hosts shared infrastructure for the CLI: structured logger
// construction and Viper-backed configuration loading.
package utils
