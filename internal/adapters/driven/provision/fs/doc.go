// Package fs provisions project bundles by copying a template directory
// on the local filesystem.
package fs
