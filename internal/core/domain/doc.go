// Package domain defines the core business entities for Stagehand.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AttrValue / Predicate: accessibility attributes and element queries
//   - ImportSession: the state machine record of one import run
//   - Project: a provisioned host project
//   - AppSettings: automation timing, labels and paths
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
