// Package witimport builds a metadata universe from WebAssembly Interface
// Type definitions, so WIT records and variants can be collected like any
// other serializable declaration.
//
// Mapping:
//
//	record       class with the object marker, one keyed property per field
//	             and a constructor taking every field in order
//	enum         enum over the smallest unsigned type holding every case
//	flags        enum over the smallest unsigned type with a bit per flag
//	variant      abstract class with a union marker per case and one nested
//	             subclass per case carrying the payload as Value (key 0)
//	list<T>      T[]
//	option<T>    T? for value types, T otherwise
//	tuple<...>   System.ValueTuple<...>, up to eight elements
//
// Identifiers are converted from kebab-case to PascalCase. Results,
// resources and handles have no MessagePack representation and fail the
// import.
package witimport
