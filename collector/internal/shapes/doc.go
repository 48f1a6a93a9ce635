// Package shapes holds the immutable lookup tables of the collector: the
// known generic shapes and their binding templates, the array rank
// bindings and the set of natively serialized types.
//
// Tables are built once at package initialization and never written
// afterwards, so concurrent collectors may share them.
package shapes
