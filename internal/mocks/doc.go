// Package mocks provides hand-written mock implementations of the store
// and service interfaces for testing. Each mock exposes function fields
// that tests set to script behavior; unset fields fall back to a minimal
// in-memory default.
package mocks
