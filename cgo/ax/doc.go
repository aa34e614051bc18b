// Package ax provides CGO bindings for the macOS accessibility API.
// It implements the driven.Accessibility interface over AXUIElement
// queries and CGEvent keyboard and mouse synthesis.
//
// Build requires:
//   - macOS with the ApplicationServices and Carbon frameworks
//   - the calling process to hold the Accessibility permission
//     (System Settings > Privacy & Security > Accessibility)
package ax
