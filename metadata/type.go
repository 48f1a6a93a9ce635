package metadata

// TypeKind is the declaration form of a type.
type TypeKind uint8

const (
	KindClass TypeKind = iota
	KindStruct
	KindInterface
	KindEnum
	KindArray
	KindTypeParameter
)

var typeKindNames = [...]string{
	KindClass:         "class",
	KindStruct:        "struct",
	KindInterface:     "interface",
	KindEnum:          "enum",
	KindArray:         "array",
	KindTypeParameter: "typeparam",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "unknown"
}

// Accessibility is the declared visibility of a type, member or accessor.
type Accessibility uint8

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessProtectedAndInternal
	AccessProtected
	AccessInternal
	AccessProtectedOrInternal
	AccessPublic
)

var accessNames = [...]string{
	AccessNotApplicable:        "",
	AccessPrivate:              "private",
	AccessProtectedAndInternal: "private protected",
	AccessProtected:            "protected",
	AccessInternal:             "internal",
	AccessProtectedOrInternal:  "protected internal",
	AccessPublic:               "public",
}

func (a Accessibility) String() string {
	if int(a) < len(accessNames) {
		return accessNames[a]
	}
	return "unknown"
}

// Type is one node of the type universe. Named types, constructed generics,
// arrays and type parameters all share this shape; which fields are set
// depends on Kind.
//
// Constructed generic types copy the declaration data of their Definition
// but keep member lists unsubstituted; members are only ever read from
// definitions.
type Type struct {
	Name       string
	Namespace  string
	Containing *Type
	Kind       TypeKind
	Keyword    string
	Access     Accessibility
	Abstract   bool
	External   bool

	TypeParameters []*Type
	TypeArguments  []*Type
	Definition     *Type

	Element *Type
	Rank    int

	Underlying *Type
	Base       *Type
	Interfaces []*Type

	Fields       []*Field
	Properties   []*Property
	Constructors []*Constructor
	Methods      []string
	Attributes   []Attribute
}

// Field is a data field declared on a type.
type Field struct {
	Name       string
	Type       *Type
	Access     Accessibility
	Static     bool
	ReadOnly   bool
	Implicit   bool
	Attributes []Attribute
}

// Accessor is a property getter or setter.
type Accessor struct {
	Access Accessibility
}

// Property is a property declared on a type. A nil Getter or Setter means
// the accessor does not exist.
type Property struct {
	Name       string
	Type       *Type
	Getter     *Accessor
	Setter     *Accessor
	Static     bool
	Indexer    bool
	Override   bool
	Attributes []Attribute
}

// Parameter is a constructor parameter.
type Parameter struct {
	Name string
	Type *Type
}

// Constructor is an instance constructor.
type Constructor struct {
	Access     Accessibility
	Parameters []Parameter
	Attributes []Attribute
}

// Attribute is an applied marker. Args holds the positional constructor
// arguments: int, string, bool, *Type or nil.
type Attribute struct {
	Class *Type
	Args  []any
}

// Arg returns the i-th argument, or nil when absent.
func (a Attribute) Arg(i int) any {
	if i < 0 || i >= len(a.Args) {
		return nil
	}
	return a.Args[i]
}

// IsValueType reports whether the type has value semantics.
func (t *Type) IsValueType() bool {
	return t.Kind == KindStruct || t.Kind == KindEnum
}

// IsGeneric reports whether the type is a generic definition or a
// constructed generic type.
func (t *Type) IsGeneric() bool {
	return len(t.TypeParameters) > 0 || len(t.TypeArguments) > 0
}

// IsGenericDefinition reports whether the type is an open generic definition.
func (t *Type) IsGenericDefinition() bool {
	return len(t.TypeParameters) > 0 && t.Definition == nil
}

// IsNullable reports whether the type is the System.Nullable<T> wrapper.
func (t *Type) IsNullable() bool {
	d := t.Definition
	return d != nil && d.Namespace == "System" && d.Name == "Nullable" && len(t.TypeArguments) == 1
}

// OriginalDefinition returns the generic definition of a constructed type,
// or the type itself.
func (t *Type) OriginalDefinition() *Type {
	if t.Definition != nil {
		return t.Definition
	}
	return t
}

// Args returns the type arguments of a constructed type, or the type
// parameters of a definition.
func (t *Type) Args() []*Type {
	if t.Definition != nil {
		return t.TypeArguments
	}
	return t.TypeParameters
}

// FindAttribute returns the first attribute of class c.
func FindAttribute(attrs []Attribute, c *Type) (Attribute, bool) {
	if c == nil {
		return Attribute{}, false
	}
	for _, a := range attrs {
		if a.Class == c {
			return a, true
		}
	}
	return Attribute{}, false
}

// FilterAttributes returns every attribute of class c in declaration order.
func FilterAttributes(attrs []Attribute, c *Type) []Attribute {
	if c == nil {
		return nil
	}
	var out []Attribute
	for _, a := range attrs {
		if a.Class == c {
			out = append(out, a)
		}
	}
	return out
}

// AllProperties returns the properties of the type followed by those of
// its base chain.
func (t *Type) AllProperties() []*Property {
	var out []*Property
	for cur := t.OriginalDefinition(); cur != nil; cur = baseOf(cur) {
		out = append(out, cur.Properties...)
	}
	return out
}

// AllFields returns the fields of the type followed by those of its base
// chain.
func (t *Type) AllFields() []*Field {
	var out []*Field
	for cur := t.OriginalDefinition(); cur != nil; cur = baseOf(cur) {
		out = append(out, cur.Fields...)
	}
	return out
}

// AllInterfaces returns every interface the type implements, directly,
// through its base chain or through interface inheritance.
func (t *Type) AllInterfaces() []*Type {
	seen := make(map[*Type]bool)
	var out []*Type
	var walk func(*Type)
	walk = func(it *Type) {
		if it == nil || seen[it] {
			return
		}
		seen[it] = true
		out = append(out, it)
		for _, parent := range it.OriginalDefinition().Interfaces {
			walk(parent)
		}
	}
	for cur := t.OriginalDefinition(); cur != nil; cur = baseOf(cur) {
		for _, it := range cur.Interfaces {
			walk(it)
		}
	}
	return out
}

// Implements reports whether the type implements the interface it.
func (t *Type) Implements(it *Type) bool {
	if it == nil {
		return false
	}
	for _, candidate := range t.AllInterfaces() {
		if candidate.OriginalDefinition() == it {
			return true
		}
	}
	return false
}

// DeclaresMethod reports whether the type itself declares a method named
// name. Explicit interface implementations are listed under their
// qualified name and do not match.
func (t *Type) DeclaresMethod(name string) bool {
	for _, m := range t.OriginalDefinition().Methods {
		if m == name {
			return true
		}
	}
	return false
}

func baseOf(t *Type) *Type {
	if t.Base == nil {
		return nil
	}
	return t.Base.OriginalDefinition()
}
