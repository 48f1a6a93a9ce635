package metadata

import "testing"

const namesFixture = `
imports: [system]
types:
  - name: Outer
    namespace: Sample
    nested:
      - name: Inner
      - name: Mode
        kind: enum
  - name: Box
    namespace: Sample
    typeParameters: [T]
  - name: Global
`

func TestTypeNames(t *testing.T) {
	u, err := Parse([]byte(namesFixture), FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		ref      string
		display  string
		full     string
		short    string
		minimal  string
		shape    string
		metadata string
	}{
		{
			ref: "int", display: "int", full: "int", short: "Int32", minimal: "Int32",
			shape: "int", metadata: "System.Int32",
		},
		{
			ref: "System.Guid", display: "System.Guid", full: "global::System.Guid", short: "Guid",
			minimal: "Guid", shape: "System.Guid", metadata: "System.Guid",
		},
		{
			ref: "Sample.Outer.Inner", display: "Sample.Outer.Inner", full: "global::Sample.Outer.Inner",
			short: "Outer.Inner", minimal: "Inner", shape: "Sample.Outer.Inner", metadata: "Sample.Outer+Inner",
		},
		{
			ref:      "System.Collections.Generic.Dictionary<string, Sample.Outer>",
			display:  "System.Collections.Generic.Dictionary<string, Sample.Outer>",
			full:     "global::System.Collections.Generic.Dictionary<string, global::Sample.Outer>",
			short:    "Dictionary",
			minimal:  "Dictionary<String, Outer>",
			shape:    "System.Collections.Generic.Dictionary<,>",
			metadata: "System.Collections.Generic.Dictionary`2",
		},
		{
			ref: "int?", display: "int?", full: "int?", short: "Int32?", minimal: "Nullable<Int32>",
			shape: "T?", metadata: "System.Nullable`1",
		},
		{
			ref: "Sample.Outer[,]", display: "Sample.Outer[,]", full: "global::Sample.Outer[,]",
			short: "Outer[,]", minimal: "Outer[,]", shape: "Sample.Outer[,]",
		},
		{
			ref: "Global", display: "Global", full: "global::Global", short: "Global", minimal: "Global",
			shape: "Global", metadata: "Global",
		},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			typ := u.MustType(tt.ref)
			check := func(what, got, want string) {
				t.Helper()
				if got != want {
					t.Errorf("%s = %q, want %q", what, got, want)
				}
			}
			check("String", typ.String(), tt.display)
			check("FullName", typ.FullName(), tt.full)
			check("ShortName", typ.ShortName(), tt.short)
			check("MinimalName", typ.MinimalName(), tt.minimal)
			check("UnboundSignature", typ.UnboundSignature(), tt.shape)
			if tt.metadata != "" {
				check("MetadataName", typ.MetadataName(), tt.metadata)
			}
		})
	}
}

func TestTypeNames_GenericDefinition(t *testing.T) {
	u, err := Parse([]byte(namesFixture), FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	box := u.TypeByMetadataName("Sample.Box`1")
	if box == nil {
		t.Fatal("Sample.Box`1 not found")
	}
	if !box.IsGenericDefinition() {
		t.Error("Box should be a generic definition")
	}
	if got := box.String(); got != "Sample.Box<T>" {
		t.Errorf("String = %q", got)
	}
	if got := box.FullName(); got != "global::Sample.Box<T>" {
		t.Errorf("FullName = %q", got)
	}
	if got := box.UnboundSignature(); got != "Sample.Box<>" {
		t.Errorf("UnboundSignature = %q", got)
	}
}
