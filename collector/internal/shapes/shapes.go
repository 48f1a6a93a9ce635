package shapes

import (
	"fmt"
	"strings"
)

// Placeholder is replaced by the comma-joined fully-qualified type
// arguments when a binding template is instantiated.
const Placeholder = "TREPLACE"

// Signatures with special handling in the walker.
const (
	NullableSignature   = "T?"
	LookupSignature     = "System.Linq.ILookup<,>"
	GroupingSignature   = "System.Linq.IGrouping<,>"
	EnumerableSignature = "System.Collections.Generic.IEnumerable<>"
)

const (
	formatters  = "global::MessagePack.Formatters."
	immutable   = "global::MessagePack.ImmutableCollection."
	reactiveExt = "global::MessagePack.ReactivePropertyExtension."
)

// known maps an unbound generic signature to its binding template.
var known = map[string]string{
	NullableSignature: formatters + "NullableFormatter<TREPLACE>",

	"System.Collections.Generic.List<>":                           formatters + "ListFormatter<TREPLACE>",
	"System.Collections.Generic.LinkedList<>":                     formatters + "LinkedListFormatter<TREPLACE>",
	"System.Collections.Generic.Queue<>":                          formatters + "QueueFormatter<TREPLACE>",
	"System.Collections.Generic.Stack<>":                          formatters + "StackFormatter<TREPLACE>",
	"System.Collections.Generic.HashSet<>":                        formatters + "HashSetFormatter<TREPLACE>",
	"System.Collections.ObjectModel.ReadOnlyCollection<>":         formatters + "ReadOnlyCollectionFormatter<TREPLACE>",
	"System.Collections.Generic.IList<>":                          formatters + "InterfaceListFormatter2<TREPLACE>",
	"System.Collections.Generic.ICollection<>":                    formatters + "InterfaceCollectionFormatter2<TREPLACE>",
	EnumerableSignature:                                           formatters + "InterfaceEnumerableFormatter<TREPLACE>",
	"System.Collections.Generic.Dictionary<,>":                    formatters + "DictionaryFormatter<TREPLACE>",
	"System.Collections.Generic.IDictionary<,>":                   formatters + "InterfaceDictionaryFormatter<TREPLACE>",
	"System.Collections.Generic.SortedDictionary<,>":              formatters + "SortedDictionaryFormatter<TREPLACE>",
	"System.Collections.Generic.SortedList<,>":                    formatters + "SortedListFormatter<TREPLACE>",
	LookupSignature:                                               formatters + "InterfaceLookupFormatter<TREPLACE>",
	GroupingSignature:                                             formatters + "InterfaceGroupingFormatter<TREPLACE>",
	"System.Collections.ObjectModel.ObservableCollection<>":       formatters + "ObservableCollectionFormatter<TREPLACE>",
	"System.Collections.ObjectModel.ReadOnlyObservableCollection<>": formatters + "ReadOnlyObservableCollectionFormatter<TREPLACE>",
	"System.Collections.Generic.IReadOnlyList<>":                  formatters + "InterfaceReadOnlyListFormatter<TREPLACE>",
	"System.Collections.Generic.IReadOnlyCollection<>":            formatters + "InterfaceReadOnlyCollectionFormatter<TREPLACE>",
	"System.Collections.Generic.ISet<>":                           formatters + "InterfaceSetFormatter<TREPLACE>",
	"System.Collections.Concurrent.ConcurrentBag<>":               formatters + "ConcurrentBagFormatter<TREPLACE>",
	"System.Collections.Concurrent.ConcurrentQueue<>":             formatters + "ConcurrentQueueFormatter<TREPLACE>",
	"System.Collections.Concurrent.ConcurrentStack<>":             formatters + "ConcurrentStackFormatter<TREPLACE>",
	"System.Collections.ObjectModel.ReadOnlyDictionary<,>":        formatters + "ReadOnlyDictionaryFormatter<TREPLACE>",
	"System.Collections.Generic.IReadOnlyDictionary<,>":           formatters + "InterfaceReadOnlyDictionaryFormatter<TREPLACE>",
	"System.Collections.Concurrent.ConcurrentDictionary<,>":       formatters + "ConcurrentDictionaryFormatter<TREPLACE>",
	"System.Lazy<>":                                               formatters + "LazyFormatter<TREPLACE>",
	"System.Threading.Tasks.Task<>":                               formatters + "TaskValueFormatter<TREPLACE>",
	"System.Threading.Tasks.ValueTask<>":                          formatters + "ValueTaskFormatter<TREPLACE>",
	"System.Collections.Generic.KeyValuePair<,>":                  formatters + "KeyValuePairFormatter<TREPLACE>",
	"System.ArraySegment<>":                                       formatters + "ArraySegmentFormatter<TREPLACE>",

	"System.Collections.Immutable.ImmutableArray<>":            immutable + "ImmutableArrayFormatter<TREPLACE>",
	"System.Collections.Immutable.ImmutableList<>":             immutable + "ImmutableListFormatter<TREPLACE>",
	"System.Collections.Immutable.ImmutableDictionary<,>":      immutable + "ImmutableDictionaryFormatter<TREPLACE>",
	"System.Collections.Immutable.ImmutableHashSet<>":          immutable + "ImmutableHashSetFormatter<TREPLACE>",
	"System.Collections.Immutable.ImmutableSortedDictionary<,>": immutable + "ImmutableSortedDictionaryFormatter<TREPLACE>",
	"System.Collections.Immutable.ImmutableSortedSet<>":        immutable + "ImmutableSortedSetFormatter<TREPLACE>",
	"System.Collections.Immutable.ImmutableQueue<>":            immutable + "ImmutableQueueFormatter<TREPLACE>",
	"System.Collections.Immutable.ImmutableStack<>":            immutable + "ImmutableStackFormatter<TREPLACE>",
	"System.Collections.Immutable.IImmutableList<>":            immutable + "InterfaceImmutableListFormatter<TREPLACE>",
	"System.Collections.Immutable.IImmutableDictionary<,>":     immutable + "InterfaceImmutableDictionaryFormatter<TREPLACE>",
	"System.Collections.Immutable.IImmutableQueue<>":           immutable + "InterfaceImmutableQueueFormatter<TREPLACE>",
	"System.Collections.Immutable.IImmutableSet<>":             immutable + "InterfaceImmutableSetFormatter<TREPLACE>",
	"System.Collections.Immutable.IImmutableStack<>":           immutable + "InterfaceImmutableStackFormatter<TREPLACE>",

	"Reactive.Bindings.ReactiveProperty<>":         reactiveExt + "ReactivePropertyFormatter<TREPLACE>",
	"Reactive.Bindings.IReactiveProperty<>":        reactiveExt + "InterfaceReactivePropertyFormatter<TREPLACE>",
	"Reactive.Bindings.IReadOnlyReactiveProperty<>": reactiveExt + "InterfaceReadOnlyReactivePropertyFormatter<TREPLACE>",
	"Reactive.Bindings.ReactiveCollection<>":       reactiveExt + "ReactiveCollectionFormatter<TREPLACE>",
}

func init() {
	for arity := 1; arity <= 8; arity++ {
		slots := "<" + strings.Repeat(",", arity-1) + ">"
		known["System.Tuple"+slots] = formatters + "TupleFormatter<TREPLACE>"
		known["System.ValueTuple"+slots] = formatters + "ValueTupleFormatter<TREPLACE>"
	}
}

// Lookup returns the binding template for an unbound generic signature.
func Lookup(signature string) (string, bool) {
	t, ok := known[signature]
	return t, ok
}

// Instantiate substitutes the joined type arguments into a template.
func Instantiate(template string, args []string) string {
	return strings.ReplaceAll(template, Placeholder, strings.Join(args, ", "))
}

// Len returns the number of known signatures.
func Len() int {
	return len(known)
}

// MaxRank is the highest array rank with a binding.
const MaxRank = 4

var rankBindings = [...]string{
	1: formatters + "ArrayFormatter<%s>",
	2: formatters + "TwoDimensionalArrayFormatter<%s>",
	3: formatters + "ThreeDimensionalArrayFormatter<%s>",
	4: formatters + "FourDimensionalArrayFormatter<%s>",
}

// ArrayBinding returns the binding for an array of the given rank whose
// element has the fully-qualified name elem.
func ArrayBinding(rank int, elem string) (string, bool) {
	if rank < 1 || rank > MaxRank {
		return "", false
	}
	return fmt.Sprintf(rankBindings[rank], elem), true
}

// ArraySegmentOfByte lists the fully-qualified forms of the byte segment,
// which the runtime serializes natively.
var ArraySegmentOfByte = map[string]bool{
	"global::System.ArraySegment<byte>":  true,
	"global::System.ArraySegment<byte>?": true,
}
