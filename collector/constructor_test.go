package collector

import (
	"slices"
	"strings"
	"testing"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

const pointFixture = `
imports: [messagepack]
types:
  - name: Point
    namespace: Sample
    attributes: [{type: MessagePack.MessagePackObjectAttribute}]
    properties:
      - {name: X, type: int, get: public, attributes: [{type: MessagePack.KeyAttribute, args: [0]}]}
      - {name: Y, type: int, get: public, attributes: [{type: MessagePack.KeyAttribute, args: [1]}]}
    constructors:
CTORS
`

func pointDoc(ctors string) string {
	return strings.Replace(pointFixture, "CTORS\n", ctors, 1)
}

func TestConstructor_Selection(t *testing.T) {
	tests := []struct {
		name  string
		ctors string
		want  []string
	}{
		{
			name: "larger arity wins",
			ctors: `      - parameters: [{name: x, type: int}]
      - parameters: [{name: x, type: int}, {name: y, type: int}]
`,
			want: []string{"X", "Y"},
		},
		{
			name: "falls back when the larger fails",
			ctors: `      - parameters: [{name: x, type: int}, {name: y, type: string}]
      - parameters: [{name: x, type: int}]
`,
			want: []string{"X"},
		},
		{
			name: "equal arity falls through in declaration order",
			ctors: `      - parameters: [{name: s, type: string}]
      - parameters: [{name: a, type: int}]
`,
			want: []string{"X"},
		},
		{
			name: "non-public constructors are ignored",
			ctors: `      - {access: private, parameters: [{name: x, type: int}, {name: y, type: int}]}
      - {}
`,
			want: []string{},
		},
		{
			name: "marked constructor is used as-is",
			ctors: `      - parameters: [{name: x, type: int}, {name: y, type: int}]
      - {parameters: [{name: x, type: int}], attributes: [{type: MessagePack.SerializationConstructorAttribute}]}
`,
			want: []string{"X"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := collectAll(t, pointDoc(tt.ctors), Options{})
			point := mustObject(t, cat, "global::Sample.Point")
			if got := memberNames(point.ConstructorParameters); !slices.Equal(got, tt.want) {
				t.Errorf("constructor parameters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstructor_Failures(t *testing.T) {
	tests := []struct {
		name  string
		ctors string
		kind  errors.Kind
		cause errors.Kind
	}{
		{
			name: "no candidate binds",
			ctors: `      - parameters: [{name: s, type: string}]
`,
			kind:  errors.KindNoConstructor,
			cause: errors.KindParameterMismatch,
		},
		{
			name: "index beyond the keys",
			ctors: `      - parameters: [{name: x, type: int}, {name: y, type: int}, {name: z, type: int}]
`,
			kind:  errors.KindNoConstructor,
			cause: errors.KindParameterNotFound,
		},
		{
			name: "no public constructor",
			ctors: `      - {access: internal}
`,
			kind: errors.KindNoConstructor,
		},
		{
			name: "marked constructor mismatch is fatal",
			ctors: `      - {}
      - {parameters: [{name: x, type: long}], attributes: [{type: MessagePack.SerializationConstructorAttribute}]}
`,
			kind: errors.KindParameterMismatch,
		},
		{
			name: "two marked constructors",
			ctors: `      - {parameters: [{name: x, type: int}], attributes: [{type: MessagePack.SerializationConstructorAttribute}]}
      - {parameters: [{name: y, type: int}], attributes: [{type: MessagePack.SerializationConstructorAttribute}]}
`,
			kind: errors.KindAmbiguousConstructor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := collectErr(t, pointDoc(tt.ctors), Options{})
			if e.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", e.Kind, tt.kind, e)
			}
			if e.Type != "global::Sample.Point" {
				t.Errorf("type = %q", e.Type)
			}
			if tt.cause != "" && errors.KindOf(e.Cause) != tt.cause {
				t.Errorf("cause = %v, want kind %s", e.Cause, tt.cause)
			}
		})
	}
}

func TestConstructor_ValueTypeWithoutMatch(t *testing.T) {
	doc := strings.Replace(pointDoc(`      - parameters: [{name: s, type: string}]
`), "    namespace: Sample\n", "    namespace: Sample\n    kind: struct\n", 1)
	cat := collectAll(t, doc, Options{})
	point := mustObject(t, cat, "global::Sample.Point")
	if point.IsClass {
		t.Fatal("fixture should declare a struct")
	}
	if point.ConstructorParameters != nil {
		t.Errorf("constructor parameters = %v, want none", memberNames(point.ConstructorParameters))
	}
}

func TestTryBindConstructor_ByName(t *testing.T) {
	u := loadUniverse(t, "types: []\nimports: [system]\n")
	str := u.MustType("string")
	num := u.MustType("int")

	members := []catalog.Member{
		{Name: "Name", Type: "string", StringKey: "name", IsReadable: true},
		{Name: "Size", Type: "int", StringKey: "état", IsReadable: true},
		{Name: "Secret", Type: "string", StringKey: "secret"},
		{Name: "Dup1", Type: "int", StringKey: "dup"},
		{Name: "Dup2", Type: "int", StringKey: "DUP"},
	}
	idx := NewMemberIndex(members, false)

	tests := []struct {
		name   string
		params []metadata.Parameter
		want   []string
		kind   errors.Kind
	}{
		{"case-insensitive", []metadata.Parameter{{Name: "NAME", Type: str}}, []string{"Name"}, ""},
		{"unicode folding", []metadata.Parameter{{Name: "ÉTAT", Type: num}}, []string{"Size"}, ""},
		{"unknown name", []metadata.Parameter{{Name: "other", Type: str}}, nil, errors.KindParameterNotFound},
		{"ambiguous name", []metadata.Parameter{{Name: "Dup", Type: num}}, nil, errors.KindAmbiguousParameter},
		{"unreadable member", []metadata.Parameter{{Name: "secret", Type: str}}, nil, errors.KindParameterMismatch},
		{"type mismatch", []metadata.Parameter{{Name: "name", Type: num}}, nil, errors.KindParameterMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := TryBindConstructor("global::Sample.User", &metadata.Constructor{Parameters: tt.params}, idx)
			if tt.kind != "" {
				if r.OK() || errors.KindOf(r.Err) != tt.kind {
					t.Fatalf("result = %+v, want kind %s", r, tt.kind)
				}
				return
			}
			if !r.OK() {
				t.Fatalf("bind failed: %v", r.Err)
			}
			if got := memberNames(r.Parameters); !slices.Equal(got, tt.want) {
				t.Errorf("parameters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindFirst(t *testing.T) {
	fail := func(kind errors.Kind) BindingResult {
		return BindingResult{Err: errors.Resolution(kind, "T", "", "")}
	}

	r, ok := findFirst([]int{1, 2, 3}, func(i int) BindingResult {
		if i == 2 {
			return BindingResult{Parameters: []catalog.Member{{Name: "two"}}}
		}
		return fail(errors.KindParameterMismatch)
	})
	if !ok || r.Parameters[0].Name != "two" {
		t.Errorf("findFirst = %+v, %v", r, ok)
	}

	r, ok = findFirst([]errors.Kind{errors.KindParameterNotFound, errors.KindAmbiguousParameter}, fail)
	if ok || errors.KindOf(r.Err) != errors.KindParameterNotFound {
		t.Errorf("findFirst should report the first failure, got %+v", r)
	}

	if _, ok := findFirst(nil, fail); ok {
		t.Error("no candidates cannot succeed")
	}
}
