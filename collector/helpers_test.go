package collector

import (
	"testing"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

func loadUniverse(t *testing.T, doc string) *metadata.Universe {
	t.Helper()
	u, err := metadata.Parse([]byte(doc), metadata.FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return u
}

func newCollector(t *testing.T, u *metadata.Universe, opts Options) *Collector {
	t.Helper()
	c, err := New(u, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func collectAll(t *testing.T, doc string, opts Options) *catalog.Catalog {
	t.Helper()
	c := newCollector(t, loadUniverse(t, doc), opts)
	cat, err := c.CollectAll()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	return cat
}

func collectErr(t *testing.T, doc string, opts Options) *errors.Error {
	t.Helper()
	c := newCollector(t, loadUniverse(t, doc), opts)
	cat, err := c.CollectAll()
	if err == nil {
		t.Fatalf("Collect succeeded with %s, want error", catalog.Summarize(cat))
	}
	if !errors.IsResolutionFailure(err) {
		t.Fatalf("error %v is not a resolution failure", err)
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error %T is not *errors.Error", err)
	}
	return e
}

func mustObject(t *testing.T, cat *catalog.Catalog, fullName string) catalog.Object {
	t.Helper()
	o, ok := cat.Object(fullName)
	if !ok {
		t.Fatalf("object %s not collected; have %v", fullName, objectNames(cat.Objects))
	}
	return o
}

func mustGeneric(t *testing.T, cat *catalog.Catalog, fullName string) catalog.Generic {
	t.Helper()
	g, ok := cat.Generic(fullName)
	if !ok {
		t.Fatalf("generic %s not collected; have %v", fullName, genericNames(cat.Generics))
	}
	return g
}

func objectNames(objs []catalog.Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.FullName
	}
	return out
}

func genericNames(gens []catalog.Generic) []string {
	out := make([]string, len(gens))
	for i, g := range gens {
		out[i] = g.FullName
	}
	return out
}

func memberNames(ms []catalog.Member) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}
