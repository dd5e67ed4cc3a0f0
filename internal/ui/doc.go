// Package ui renders command lifecycle events for human consumption when
// console logging is active.
package ui
