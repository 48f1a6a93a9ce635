// Package msgpackcodegen collects the serializable types of a program ahead
// of time so MessagePack formatters can be generated for them.
//
// Given a type universe (declared types, their members, constructors and
// applied contract markers) the collector walks every type reachable from
// the marked roots and classifies each one. The result is a catalogue of
// five lists that a code generator consumes:
//
//	Objects          marked classes and structs with keyed members and the
//	                 constructor used to rebuild them
//	Enums            enumerations and their underlying integral type
//	Generics         closed generic instantiations and the formatter that
//	                 serializes each of them
//	Unions           polymorphic bases and their discriminated subtypes
//	UnboundGenerics  open generic templates whose formatters are generic
//
// # Architecture Overview
//
//	msgpackcodegen/        One-shot Collect and LoadCompilation helpers
//	├── metadata/          Type universe model, YAML/JSON loader, preludes
//	│   └── witimport/     WIT type definitions → universe
//	├── collector/         Contract markers, graph walk, member keys,
//	│                      constructor matching
//	├── catalog/           Descriptor model, aggregation, encoders
//	├── config/            Driver configuration
//	├── errors/            Structured error types
//	└── cmd/mpc-collect/   Command line driver
//
// # Quick Start
//
//	comp, err := msgpackcodegen.LoadCompilation("types.yaml", msgpackcodegen.LoadOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cat, err := msgpackcodegen.Collect(comp, collector.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := catalog.Marshal(cat, catalog.FormatJSON)
//
// # Errors
//
// Every failure is a *errors.Error. Resolution failures (missing or
// conflicting member keys, unbindable constructors, unsupported array
// ranks, malformed unions) match errors.ResolutionFailure; a compilation
// lacking a required contract marker matches
// errors.BindingConfigurationFailure.
package msgpackcodegen
