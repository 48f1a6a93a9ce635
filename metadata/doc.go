// Package metadata models the type universe the collector reads: named
// types, constructed generics, arrays, members, constructors and applied
// markers.
//
// A Universe is built from YAML or JSON documents. Documents list their
// declarations under types and may import bundled preludes:
//
//	imports: [system, messagepack]
//	types:
//	  - name: Order
//	    namespace: Sample
//	    attributes: [{type: MessagePack.MessagePackObjectAttribute}]
//	    properties:
//	      - {name: Lines, type: "System.Collections.Generic.List<Sample.Line>", get: public, set: public,
//	         attributes: [{type: MessagePack.KeyAttribute, args: [0]}]}
//
// A class or struct declaring no constructors gets the implicit
// parameterless one, public unless the class is abstract.
//
// Type references use C# syntax: keywords (int, string), dotted names,
// generic arguments, array ranks (T[], T[,]) and the nullable suffix (T?).
//
// Every Type renders the display formats the code emitter consumes:
// String, FullName, ShortName, MinimalName and UnboundSignature.
package metadata
