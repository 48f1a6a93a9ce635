package kind

// Classification is the category assigned to a visited type. It decides
// which catalogue, if any, receives a descriptor.
type Classification uint8

const (
	Builtin Classification = iota
	Excluded
	Array
	Enum
	Union
	KnownGeneric
	CustomGeneric
	UnboundGenericTemplate
	PlainObject
)

var names = [...]string{
	Builtin:                "builtin",
	Excluded:               "excluded",
	Array:                  "array",
	Enum:                   "enum",
	Union:                  "union",
	KnownGeneric:           "known-generic",
	CustomGeneric:          "custom-generic",
	UnboundGenericTemplate: "unbound-generic",
	PlainObject:            "object",
}

func (c Classification) String() string {
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// Emits reports whether the classification produces a descriptor.
func (c Classification) Emits() bool {
	return c >= Array
}
