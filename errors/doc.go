// Package errors provides structured error types for the type collector.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the fully-qualified offending type, the member or
// parameter involved, a document path for load errors, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindDuplicateKey).
//		Type("global::Sample.Order").
//		Member("Total").
//		Detail("key 2 is already used by %s", "Id").
//		Build()
//
// Whole phases can be matched with the sentinels:
//
//	if errors.Is(err, errors.ResolutionFailure) { ... }
//	if errors.Is(err, errors.BindingConfigurationFailure) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
