// Package catalog holds the descriptors produced by a collection run and
// the aggregation that turns discovery order into a deterministic
// catalogue.
//
// A Catalog has five lists: objects, enums, generic instantiations,
// unions and unbound generic templates. Aggregate sorts each list by
// fully-qualified name and removes duplicate generic instantiations.
// Marshal writes the result as JSON, YAML or deterministic CBOR, and
// Fingerprint hashes the CBOR form so two runs can be compared cheaply.
package catalog
