// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - ax: macOS accessibility (AXUIElement) and event (CGEvent) bindings
package cgo
