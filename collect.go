package msgpackcodegen

import (
	"os"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/collector"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
	"github.com/wippyai/msgpack-codegen/metadata/witimport"
)

// Collect runs a full collection over every root of comp.
func Collect(comp metadata.Compilation, opts collector.Options) (*catalog.Catalog, error) {
	c, err := collector.New(comp, opts)
	if err != nil {
		return nil, err
	}
	return c.Collect(c.Roots())
}

// LoadOptions configures LoadCompilation.
type LoadOptions struct {
	// WitNamespace prefixes types imported from a WIT package graph.
	WitNamespace string
}

// LoadCompilation reads a universe from path. Files ending in .wit.json are
// decoded as resolved WIT package graphs; .json and .yaml/.yml files are
// universe documents.
func LoadCompilation(path string, opts LoadOptions) (*metadata.Universe, error) {
	if !IsWitPath(path) {
		return metadata.Load(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Path(path).Cause(err).Detail("open WIT document").Build()
	}
	defer f.Close()

	res, err := wit.DecodeJSON(f)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Path(path).Cause(err).Detail("decode WIT document").Build()
	}
	return witimport.ImportResolve(res, witimport.Options{Namespace: opts.WitNamespace})
}

// IsWitPath reports whether path names a resolved WIT package graph.
func IsWitPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".wit.json")
}
