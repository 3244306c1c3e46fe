// Package extension provides the run-time command catalog: a registry that
// maps command names (for example "app:upload") to the Go types of the
// actions implementing them, so hosts can enumerate and introspect the
// available operations.
//
// The catalog is normally populated through the public APIs under the root
// cascade package, therefore most applications do not need to import this
// package directly.
package extension
