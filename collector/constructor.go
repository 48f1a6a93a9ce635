package collector

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

// MemberIndex indexes the serialized members of one object for
// constructor binding. Positional indexes bind parameter i to the member
// keyed i; name indexes bind a parameter to the member whose string key
// equals its name under Unicode case folding.
type MemberIndex struct {
	positional bool
	byKey      map[int]catalog.Member
	byName     map[string][]catalog.Member
}

// NewMemberIndex indexes members for positional or by-name binding.
func NewMemberIndex(members []catalog.Member, positional bool) *MemberIndex {
	idx := &MemberIndex{positional: positional}
	if positional {
		idx.byKey = make(map[int]catalog.Member, len(members))
		for _, m := range members {
			idx.byKey[m.IntKey] = m
		}
		return idx
	}
	fold := cases.Fold()
	idx.byName = make(map[string][]catalog.Member, len(members))
	for _, m := range members {
		k := fold.String(m.StringKey)
		idx.byName[k] = append(idx.byName[k], m)
	}
	return idx
}

// BindingResult is the outcome of binding one constructor.
type BindingResult struct {
	Constructor *metadata.Constructor
	Parameters  []catalog.Member
	Err         error
}

// OK reports whether every parameter was bound.
func (r BindingResult) OK() bool {
	return r.Err == nil
}

// TryBindConstructor binds every parameter of ctor to a readable member
// of the same fully-qualified type. typeName identifies the owner in
// errors.
func TryBindConstructor(typeName string, ctor *metadata.Constructor, idx *MemberIndex) BindingResult {
	params := make([]catalog.Member, 0, len(ctor.Parameters))
	var fold cases.Caser
	if !idx.positional {
		fold = cases.Fold()
	}

	for i, p := range ctor.Parameters {
		var m catalog.Member
		if idx.positional {
			found, ok := idx.byKey[i]
			if !ok {
				return BindingResult{Constructor: ctor, Err: errors.New(errors.PhaseResolve, errors.KindParameterNotFound).
					Type(typeName).Member(p.Name).Value(i).
					Detail("no member is keyed by parameter index %d", i).
					Build()}
			}
			m = found
		} else {
			found := idx.byName[fold.String(p.Name)]
			switch len(found) {
			case 0:
				return BindingResult{Constructor: ctor, Err: errors.Resolution(errors.KindParameterNotFound, typeName, p.Name,
					"no member key matches the parameter name")}
			case 1:
				m = found[0]
			default:
				return BindingResult{Constructor: ctor, Err: errors.Resolution(errors.KindAmbiguousParameter, typeName, p.Name,
					"%d member keys match the parameter name", len(found))}
			}
		}

		if pt := p.Type.FullName(); pt != m.Type || !m.IsReadable {
			return BindingResult{Constructor: ctor, Err: errors.Resolution(errors.KindParameterMismatch, typeName, p.Name,
				"parameter of type %s does not match readable member %s of type %s", pt, m.Name, m.Type)}
		}
		params = append(params, m)
	}
	return BindingResult{Constructor: ctor, Parameters: params}
}

// findFirst returns the first successful result of try over candidates,
// or the failure of the first candidate when none succeeds.
func findFirst[T any](candidates []T, try func(T) BindingResult) (BindingResult, bool) {
	var first BindingResult
	for i, cand := range candidates {
		r := try(cand)
		if r.OK() {
			return r, true
		}
		if i == 0 {
			first = r
		}
	}
	return first, false
}

// matchConstructor selects the constructor used on decode. A constructor
// carrying the constructor marker is used as-is; otherwise public
// constructors are tried by descending arity, ties in declaration order.
// Value types may go without a constructor.
func (c *Collector) matchConstructor(t *metadata.Type, id string, idx *MemberIndex) ([]catalog.Member, error) {
	var public, marked []*metadata.Constructor
	for _, ctor := range t.OriginalDefinition().Constructors {
		if ctor.Access != metadata.AccessPublic {
			continue
		}
		public = append(public, ctor)
		if _, ok := c.contracts.HasMarker(ctor.Attributes, MarkerConstructor); ok {
			marked = append(marked, ctor)
		}
	}

	switch len(marked) {
	case 0:
	case 1:
		r := TryBindConstructor(id, marked[0], idx)
		if !r.OK() {
			return nil, r.Err
		}
		return r.Parameters, nil
	default:
		return nil, errors.Resolution(errors.KindAmbiguousConstructor, id, "",
			"%d public constructors carry the constructor marker", len(marked))
	}

	if len(public) == 0 {
		if t.IsValueType() {
			return nil, nil
		}
		return nil, errors.Resolution(errors.KindNoConstructor, id, "", "no public constructor")
	}

	candidates := slices.Clone(public)
	slices.SortStableFunc(candidates, func(a, b *metadata.Constructor) int {
		return cmp.Compare(len(b.Parameters), len(a.Parameters))
	})

	r, ok := findFirst(candidates, func(ctor *metadata.Constructor) BindingResult {
		return TryBindConstructor(id, ctor, idx)
	})
	if ok {
		return r.Parameters, nil
	}
	if t.IsValueType() {
		return nil, nil
	}
	return nil, errors.New(errors.PhaseResolve, errors.KindNoConstructor).
		Type(id).
		Cause(r.Err).
		Detail("no public constructor binds every parameter to a member").
		Build()
}
