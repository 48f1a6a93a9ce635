package shapes

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		signature string
		want      string
	}{
		{"System.Collections.Generic.List<>", "global::MessagePack.Formatters.ListFormatter<TREPLACE>"},
		{"System.Collections.Generic.Dictionary<,>", "global::MessagePack.Formatters.DictionaryFormatter<TREPLACE>"},
		{"T?", "global::MessagePack.Formatters.NullableFormatter<TREPLACE>"},
		{"System.Tuple<,,>", "global::MessagePack.Formatters.TupleFormatter<TREPLACE>"},
		{"System.ValueTuple<,,,,,,,>", "global::MessagePack.Formatters.ValueTupleFormatter<TREPLACE>"},
		{"System.Threading.Tasks.Task<>", "global::MessagePack.Formatters.TaskValueFormatter<TREPLACE>"},
		{"System.Threading.Tasks.ValueTask<>", "global::MessagePack.Formatters.ValueTaskFormatter<TREPLACE>"},
		{"System.Collections.Immutable.IImmutableSet<>", "global::MessagePack.ImmutableCollection.InterfaceImmutableSetFormatter<TREPLACE>"},
		{"Reactive.Bindings.ReactiveCollection<>", "global::MessagePack.ReactivePropertyExtension.ReactiveCollectionFormatter<TREPLACE>"},
	}
	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			got, ok := Lookup(tt.signature)
			if !ok {
				t.Fatalf("Lookup(%q) missing", tt.signature)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.signature, got, tt.want)
			}
		})
	}

	for _, miss := range []string{"System.Tuple<,,,,,,,,>", "Sample.Box<>", "System.Collections.Generic.List<int>"} {
		if _, ok := Lookup(miss); ok {
			t.Errorf("Lookup(%q) should miss", miss)
		}
	}
	if Len() < 60 {
		t.Errorf("Len() = %d, table looks truncated", Len())
	}
}

func TestInstantiate(t *testing.T) {
	got := Instantiate("global::MessagePack.Formatters.DictionaryFormatter<TREPLACE>", []string{"string", "global::Sample.Foo"})
	want := "global::MessagePack.Formatters.DictionaryFormatter<string, global::Sample.Foo>"
	if got != want {
		t.Errorf("Instantiate = %q, want %q", got, want)
	}
}

func TestArrayBinding(t *testing.T) {
	want := map[int]string{
		1: "global::MessagePack.Formatters.ArrayFormatter<global::Sample.Foo>",
		2: "global::MessagePack.Formatters.TwoDimensionalArrayFormatter<global::Sample.Foo>",
		3: "global::MessagePack.Formatters.ThreeDimensionalArrayFormatter<global::Sample.Foo>",
		4: "global::MessagePack.Formatters.FourDimensionalArrayFormatter<global::Sample.Foo>",
	}
	for rank, w := range want {
		got, ok := ArrayBinding(rank, "global::Sample.Foo")
		if !ok || got != w {
			t.Errorf("ArrayBinding(%d) = %q, %v", rank, got, ok)
		}
	}
	for _, rank := range []int{0, 5, 32} {
		if _, ok := ArrayBinding(rank, "int"); ok {
			t.Errorf("ArrayBinding(%d) should fail", rank)
		}
	}
}

func TestIsBuiltin(t *testing.T) {
	for _, s := range []string{"int", "string", "object", "byte[]", "System.DateTime[]", "System.Guid", "MessagePack.Nil", "UnityEngine.Vector3", "System.ArraySegment<byte>?"} {
		if !IsBuiltin(s) {
			t.Errorf("IsBuiltin(%q) = false", s)
		}
	}
	for _, s := range []string{"System.Uri", "System.Guid[]", "int[,]", "Sample.Foo", "System.Collections.Generic.List<int>"} {
		if IsBuiltin(s) {
			t.Errorf("IsBuiltin(%q) = true", s)
		}
	}
}
