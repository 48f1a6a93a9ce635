package catalog

import "strings"

// KeyMode selects how an object's members are keyed on the wire.
type KeyMode string

const (
	KeyInteger KeyMode = "integer"
	KeyString  KeyMode = "string"
)

// Member is one serialized field or property of an object. In integer
// mode IntKey is the wire key; in string mode StringKey is the wire key and
// IntKey is the member's ordinal among the serialized members.
type Member struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	ShortTypeName string `json:"shortTypeName" yaml:"shortTypeName"`
	IntKey        int    `json:"intKey" yaml:"intKey"`
	StringKey     string `json:"stringKey,omitempty" yaml:"stringKey,omitempty"`
	IsProperty    bool   `json:"isProperty" yaml:"isProperty"`
	IsReadable    bool   `json:"isReadable" yaml:"isReadable"`
	IsWritable    bool   `json:"isWritable" yaml:"isWritable"`
	CustomBinding string `json:"customBinding,omitempty" yaml:"customBinding,omitempty"`
}

// Object describes a plain serializable type or an unbound generic
// template.
type Object struct {
	Name                  string   `json:"name" yaml:"name"`
	Namespace             string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	FullName              string   `json:"fullName" yaml:"fullName"`
	TemplateParameters    []string `json:"templateParameters,omitempty" yaml:"templateParameters,omitempty"`
	IsClass               bool     `json:"isClass" yaml:"isClass"`
	KeyMode               KeyMode  `json:"keyMode" yaml:"keyMode"`
	MapMode               bool     `json:"mapMode,omitempty" yaml:"mapMode,omitempty"`
	Members               []Member `json:"members" yaml:"members"`
	ConstructorParameters []Member `json:"constructorParameters" yaml:"constructorParameters"`
	HasCallbackReceiver   bool     `json:"hasCallbackReceiver" yaml:"hasCallbackReceiver"`
	NeedsCastOnBefore     bool     `json:"needsCastOnBefore" yaml:"needsCastOnBefore"`
	NeedsCastOnAfter      bool     `json:"needsCastOnAfter" yaml:"needsCastOnAfter"`
	CustomBinding         string   `json:"customBinding,omitempty" yaml:"customBinding,omitempty"`
}

// TemplateParametersString renders the generic parameter list, e.g.
// "<T, U>", or "" for non-generic objects.
func (o *Object) TemplateParametersString() string {
	if len(o.TemplateParameters) == 0 {
		return ""
	}
	return "<" + strings.Join(o.TemplateParameters, ", ") + ">"
}

// Member returns the serialized member with the given name.
func (o *Object) Member(name string) (Member, bool) {
	for _, m := range o.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Enum describes an enumeration.
type Enum struct {
	Name           string `json:"name" yaml:"name"`
	Namespace      string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	FullName       string `json:"fullName" yaml:"fullName"`
	UnderlyingType string `json:"underlyingType" yaml:"underlyingType"`
}

// UnionCase is one discriminated subtype of a union.
type UnionCase struct {
	Key  int    `json:"key" yaml:"key"`
	Type string `json:"type" yaml:"type"`
}

// Union describes a polymorphic base and its subtypes ordered by
// discriminator.
type Union struct {
	Name      string      `json:"name" yaml:"name"`
	Namespace string      `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	FullName  string      `json:"fullName" yaml:"fullName"`
	Cases     []UnionCase `json:"cases" yaml:"cases"`
}

// Generic describes a closed generic instantiation and the binding that
// serializes it.
type Generic struct {
	FullName      string `json:"fullName" yaml:"fullName"`
	Binding       string `json:"binding" yaml:"binding"`
	CustomBinding string `json:"customBinding,omitempty" yaml:"customBinding,omitempty"`
}
