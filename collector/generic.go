package collector

import (
	"regexp"
	"strings"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/collector/internal/shapes"
	"github.com/wippyai/msgpack-codegen/metadata"
)

// openArgs matches the empty argument list of an open generic binding
// name, e.g. the "<,>" of Sample.PairFormatter<,>.
var openArgs = regexp.MustCompile(`<[,]*>$`)

func (c *Collector) visitGeneric(t *metadata.Type, id string) (Classification, error) {
	if shapes.ArraySegmentOfByte[id] {
		return Builtin, nil
	}

	sig := t.UnboundSignature()
	if sig == shapes.NullableSignature {
		return KnownGeneric, c.visitNullable(t, id)
	}

	if template, ok := shapes.Lookup(sig); ok {
		return KnownGeneric, c.visitKnown(t, id, sig, template)
	}

	if t.IsGenericDefinition() {
		obj, err := c.resolveObject(t, id)
		if err != nil {
			return UnboundGenericTemplate, err
		}
		c.out.AddUnboundGeneric(obj)
		return UnboundGenericTemplate, nil
	}

	return CustomGeneric, c.visitCustomGeneric(t, id)
}

func (c *Collector) visitNullable(t *metadata.Type, id string) error {
	inner := t.TypeArguments[0]
	if err := c.visit(inner); err != nil {
		return err
	}
	if shapes.IsBuiltin(c.names.display(inner)) {
		return nil
	}
	template, _ := shapes.Lookup(shapes.NullableSignature)
	c.out.AddGeneric(catalog.Generic{
		FullName: id,
		Binding:  shapes.Instantiate(template, []string{c.names.fullName(inner)}),
	})
	return nil
}

func (c *Collector) visitKnown(t *metadata.Type, id, sig, template string) error {
	args := t.Args()
	for _, a := range args {
		if err := c.visit(a); err != nil {
			return err
		}
	}
	names := c.names.fullNames(args)
	c.out.AddGeneric(catalog.Generic{FullName: id, Binding: shapes.Instantiate(template, names)})

	if sig != shapes.LookupSignature {
		return nil
	}

	// a lookup is serialized through its groupings and their elements
	grouping, _ := shapes.Lookup(shapes.GroupingSignature)
	c.out.AddGeneric(catalog.Generic{
		FullName: "global::System.Linq.IGrouping<" + strings.Join(names, ", ") + ">",
		Binding:  shapes.Instantiate(grouping, names),
	})
	enumerable, _ := shapes.Lookup(shapes.EnumerableSignature)
	c.out.AddGeneric(catalog.Generic{
		FullName: "global::System.Collections.Generic.IEnumerable<" + names[1] + ">",
		Binding:  shapes.Instantiate(enumerable, names[1:]),
	})
	return nil
}

func (c *Collector) visitCustomGeneric(t *metadata.Type, id string) error {
	args := t.TypeArguments
	for _, a := range args {
		if err := c.visit(a); err != nil {
			return err
		}
	}

	var b strings.Builder
	if ns := t.OriginalDefinition().Namespace; ns != "" {
		b.WriteString(ns)
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	b.WriteString("Formatter<")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.names.display(a))
	}
	b.WriteByte('>')

	custom := c.customBinding(t.Attributes)
	if custom != "" {
		custom = openArgs.ReplaceAllLiteralString(custom, "<"+strings.Join(c.names.fullNames(args), ", ")+">")
	}

	c.out.AddGeneric(catalog.Generic{FullName: id, Binding: b.String(), CustomBinding: custom})
	return nil
}

// customBinding returns the binding named by a custom-binding marker in
// attrs, or "". An open generic binding keeps its empty argument list.
func (c *Collector) customBinding(attrs []metadata.Attribute) string {
	args, ok := c.contracts.HasMarker(attrs, MarkerFormatter)
	if !ok {
		return ""
	}
	ft, ok := argAt(args, 0).(*metadata.Type)
	if !ok || ft == nil {
		return ""
	}
	if ft.IsGenericDefinition() {
		return "global::" + ft.UnboundSignature()
	}
	return c.names.fullName(ft)
}
