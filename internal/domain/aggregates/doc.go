// Package aggregates defines domain-facing aggregate contracts and the coded
// error type shared by every layer.
//
// Contracts avoid persistence/transport details and describe write boundaries
// where invariants must hold atomically.
package aggregates
