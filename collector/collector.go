package collector

import (
	"cmp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/collector/internal/shapes"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

// Options configures a Collector.
type Options struct {
	// ForceMap serializes every object in map mode regardless of its
	// contract marker.
	ForceMap bool

	// AllowInternal admits internal types into the walk.
	AllowInternal bool

	// Logger overrides the package logger.
	Logger *zap.Logger
}

// Collector walks the type graph reachable from a set of roots and
// classifies every type it reaches. A Collector is not safe for
// concurrent use; concurrent walks need independent collectors.
type Collector struct {
	comp      metadata.Compilation
	opts      Options
	log       *zap.Logger
	contracts *Contracts
	names     *nameCache

	visited map[string]Classification
	out     *catalog.Catalog
}

// New resolves the contract markers of comp and returns a collector
// ready to walk it.
func New(comp metadata.Compilation, opts Options) (*Collector, error) {
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	contracts, err := ResolveContracts(comp, log)
	if err != nil {
		return nil, err
	}
	names, err := newNameCache()
	if err != nil {
		return nil, err
	}
	return &Collector{
		comp:      comp,
		opts:      opts,
		log:       log,
		contracts: contracts,
		names:     names,
		visited:   make(map[string]Classification),
	}, nil
}

// Contracts returns the markers resolved for this collector.
func (c *Collector) Contracts() *Contracts {
	return c.contracts
}

// Roots returns the declared types marked for serialization: interfaces
// and abstract classes carrying the union marker, and classes and structs
// carrying the object marker. Only the type's own visibility is checked.
func (c *Collector) Roots() []*metadata.Type {
	var roots []*metadata.Type
	for _, t := range c.comp.NamedTypes() {
		if !c.visible(t.Access) {
			continue
		}
		_, union := c.contracts.HasMarker(t.Attributes, MarkerUnion)
		_, object := c.contracts.HasMarker(t.Attributes, MarkerObject)
		polymorphic := t.Kind == metadata.KindInterface || (t.Kind == metadata.KindClass && t.Abstract)
		concrete := t.Kind == metadata.KindClass || t.Kind == metadata.KindStruct
		if (polymorphic && union) || (concrete && object) {
			roots = append(roots, t)
		}
	}
	return roots
}

// CollectAll collects from Roots.
func (c *Collector) CollectAll() (*catalog.Catalog, error) {
	return c.Collect(c.Roots())
}

// Collect walks every root and returns the sorted catalogue. Each call
// starts from an empty visited set; on error no partial result survives.
func (c *Collector) Collect(roots []*metadata.Type) (*catalog.Catalog, error) {
	c.visited = make(map[string]Classification)
	c.out = &catalog.Catalog{}

	for _, root := range roots {
		if err := c.visit(root); err != nil {
			c.visited = make(map[string]Classification)
			c.out = nil
			return nil, err
		}
	}

	result := catalog.Aggregate(c.out)
	c.out = nil

	s := catalog.Summarize(result)
	c.log.Info("collect finished",
		zap.Int("roots", len(roots)),
		zap.Int("visited", len(c.visited)),
		zap.Int("objects", s.Objects),
		zap.Int("enums", s.Enums),
		zap.Int("generics", s.Generics),
		zap.Int("unions", s.Unions),
		zap.Int("unbound", s.UnboundGenerics))
	return result, nil
}

// Classification returns how the last walk classified t.
func (c *Collector) Classification(t *metadata.Type) (Classification, bool) {
	k, ok := c.visited[c.names.fullName(t)]
	return k, ok
}

func (c *Collector) visit(t *metadata.Type) error {
	id := c.names.fullName(t)
	if _, seen := c.visited[id]; seen {
		return nil
	}
	// provisional entry, replaced once the type is classified
	c.visited[id] = Excluded

	k, err := c.classify(t, id)
	if err != nil {
		return err
	}
	c.visited[id] = k
	if k.Emits() {
		c.log.Debug("type collected", zap.String("type", id), zap.Stringer("classification", k))
	}
	return nil
}

func (c *Collector) classify(t *metadata.Type, id string) (Classification, error) {
	if shapes.IsBuiltin(c.names.display(t)) {
		return Builtin, nil
	}

	if t.Kind == metadata.KindArray {
		return Array, c.visitArray(t, id)
	}

	if !c.accessible(t) {
		c.log.Debug("type excluded by accessibility", zap.String("type", id))
		return Excluded, nil
	}

	switch {
	case t.Kind == metadata.KindEnum:
		c.visitEnum(t, id)
		return Enum, nil
	case t.IsGeneric():
		return c.visitGeneric(t, id)
	case t.Kind == metadata.KindInterface || (t.Kind == metadata.KindClass && t.Abstract):
		if t.External {
			return Excluded, nil
		}
		if _, ok := c.contracts.HasMarker(t.Attributes, MarkerUnion); ok {
			return Union, c.visitUnion(t, id)
		}
	}
	return c.visitObject(t, id)
}

// accessible applies the visibility gate to t and every containing type.
func (c *Collector) accessible(t *metadata.Type) bool {
	if t.Kind == metadata.KindTypeParameter {
		return false
	}
	for cur := t.OriginalDefinition(); cur != nil; cur = cur.Containing {
		if !c.visible(cur.Access) {
			return false
		}
	}
	return true
}

func (c *Collector) visible(a metadata.Accessibility) bool {
	switch a {
	case metadata.AccessPublic:
		return true
	case metadata.AccessInternal, metadata.AccessProtectedOrInternal:
		return c.opts.AllowInternal
	default:
		return false
	}
}

func (c *Collector) visitArray(t *metadata.Type, id string) error {
	if err := c.visit(t.Element); err != nil {
		return err
	}
	binding, ok := shapes.ArrayBinding(t.Rank, c.names.fullName(t.Element))
	if !ok {
		return errors.Resolution(errors.KindUnsupportedRank, id, "",
			"array rank %d is not supported, maximum is %d", t.Rank, shapes.MaxRank)
	}
	c.out.AddGeneric(catalog.Generic{FullName: id, Binding: binding})
	return nil
}

func (c *Collector) visitEnum(t *metadata.Type, id string) {
	underlying := "Int32"
	if t.Underlying != nil {
		underlying = t.Underlying.MinimalName()
	}
	c.out.AddEnum(catalog.Enum{
		Name:           strings.ReplaceAll(t.ShortName(), ".", "_"),
		Namespace:      t.OriginalDefinition().Namespace,
		FullName:       id,
		UnderlyingType: underlying,
	})
}

func (c *Collector) visitUnion(t *metadata.Type, id string) error {
	markers := c.contracts.Markers(t.Attributes, MarkerUnion)
	cases := make([]catalog.UnionCase, 0, len(markers))
	subtypes := make([]*metadata.Type, 0, len(markers))
	for _, args := range markers {
		key, ok := argInt(args, 0)
		if !ok {
			return errors.Resolution(errors.KindInvalidUnion, id, "", "union discriminator must be an integer, got %v", argAt(args, 0))
		}
		sub, ok := argAt(args, 1).(*metadata.Type)
		if !ok || sub == nil {
			return errors.Resolution(errors.KindInvalidUnion, id, "", "union case %d does not name a subtype", key)
		}
		cases = append(cases, catalog.UnionCase{Key: key, Type: c.names.fullName(sub)})
		subtypes = append(subtypes, sub)
	}

	sortCases(cases)
	for i := 1; i < len(cases); i++ {
		if cases[i].Key == cases[i-1].Key {
			return errors.New(errors.PhaseResolve, errors.KindDuplicateDiscriminator).
				Type(id).
				Value(cases[i].Key).
				Detail("discriminator %d is used by %s and %s", cases[i].Key, cases[i-1].Type, cases[i].Type).
				Build()
		}
	}

	c.out.AddUnion(catalog.Union{
		Name:      t.Name,
		Namespace: t.OriginalDefinition().Namespace,
		FullName:  id,
		Cases:     cases,
	})

	for _, sub := range subtypes {
		if err := c.visit(sub); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) visitObject(t *metadata.Type, id string) (Classification, error) {
	obj, err := c.resolveObject(t, id)
	if err != nil {
		return PlainObject, err
	}
	if t.External && obj.CustomBinding == "" {
		return Excluded, nil
	}
	c.out.AddObject(obj)
	return PlainObject, nil
}

func argAt(args []any, i int) any {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}

func argInt(args []any, i int) (int, bool) {
	v, ok := argAt(args, i).(int)
	return v, ok
}

func sortCases(cases []catalog.UnionCase) {
	slices.SortStableFunc(cases, func(a, b catalog.UnionCase) int {
		return cmp.Compare(a.Key, b.Key)
	})
}
