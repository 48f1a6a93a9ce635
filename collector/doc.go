// Package collector resolves how every type reachable from a set of
// serialization roots is encoded.
//
// A Collector resolves the contract markers of a compilation once, then
// walks the type graph depth-first from the roots. Each reached type is
// classified exactly once:
//
//	builtin          serialized natively, no descriptor
//	excluded         filtered by the accessibility gate or declared externally
//	array            GenericDescriptor chosen by rank (1 to 4)
//	enum             EnumDescriptor
//	union            UnionDescriptor with cases sorted by discriminator
//	known-generic    GenericDescriptor from the known shape table
//	custom-generic   GenericDescriptor bound to <Name>Formatter<args>
//	unbound-generic  ObjectDescriptor of an open generic definition
//	object           ObjectDescriptor with members, keys and constructor
//
// Usage:
//
//	c, err := collector.New(universe, collector.Options{})
//	if err != nil {
//	    return err // BindingConfigurationFailure
//	}
//	cat, err := c.Collect(c.Roots())
//	if err != nil {
//	    return err // ResolutionFailure
//	}
//
// A walk either completes or returns the first error; partial results are
// discarded. A Collector must not be shared between goroutines.
package collector
