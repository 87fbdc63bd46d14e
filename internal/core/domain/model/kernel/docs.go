// Package kernel contains shared value objects used across the domain model.
//
// The package currently provides the UUID value object, a thin wrapper around
// github.com/google/uuid that makes identifiers immutable, validated, and
// comparable. All aggregate and entity identifiers in the delivery domain are
// kernel.UUID values created through one of its constructor functions.
package kernel
