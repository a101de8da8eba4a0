// Package shared provides utilities used across the Grade Pulse codebase
// that belong to no specific domain or architectural layer.
//
// # Structure
//
// - testutil: test helpers shared by package tests, currently the slog
//   capture handler used to assert on structured log output.
//
// # Usage Guidelines
//
// This package should only contain:
//
//  1. Test utilities used by multiple packages
//  2. Generic helpers with no domain-specific logic
//
// It should NOT contain business logic, external dependencies beyond the
// standard library, or anything that would create an import cycle with
// other internal packages.
package shared
