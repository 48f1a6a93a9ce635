package collector

import (
	"go.uber.org/zap"

	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

// Marker is a contract marker the collector recognises.
type Marker uint8

const (
	MarkerObject Marker = iota
	MarkerUnion
	MarkerConstructor
	MarkerKey
	MarkerIgnore
	MarkerCallbackReceiver
	MarkerFormatter
	MarkerIgnoreDataMember
	markerCount
)

type markerSpec struct {
	name     string
	required bool
}

var markerSpecs = [markerCount]markerSpec{
	MarkerObject:           {"MessagePack.MessagePackObjectAttribute", true},
	MarkerUnion:            {"MessagePack.UnionAttribute", true},
	MarkerConstructor:      {"MessagePack.SerializationConstructorAttribute", true},
	MarkerKey:              {"MessagePack.KeyAttribute", true},
	MarkerIgnore:           {"MessagePack.IgnoreMemberAttribute", true},
	MarkerCallbackReceiver: {"MessagePack.IMessagePackSerializationCallbackReceiver", true},
	MarkerFormatter:        {"MessagePack.MessagePackFormatterAttribute", true},
	MarkerIgnoreDataMember: {"System.Runtime.Serialization.IgnoreDataMemberAttribute", false},
}

// MetadataName returns the lookup name of the marker type.
func (m Marker) MetadataName() string {
	if m >= markerCount {
		return ""
	}
	return markerSpecs[m].name
}

// Required reports whether a run aborts when the marker is missing.
func (m Marker) Required() bool {
	return m < markerCount && markerSpecs[m].required
}

func (m Marker) String() string {
	if m >= markerCount {
		return "unknown"
	}
	return markerSpecs[m].name
}

// Contracts holds the marker types resolved from one compilation.
type Contracts struct {
	types [markerCount]*metadata.Type
}

// ResolveContracts looks up every marker. A missing required marker is a
// binding configuration failure; a missing optional marker is logged and
// every check depending on it is skipped.
func ResolveContracts(comp metadata.Compilation, log *zap.Logger) (*Contracts, error) {
	if log == nil {
		log = Logger()
	}
	c := &Contracts{}
	for m := Marker(0); m < markerCount; m++ {
		t := comp.TypeByMetadataName(m.MetadataName())
		if t == nil {
			if m.Required() {
				return nil, errors.MissingMarker(m.MetadataName())
			}
			log.Warn("optional contract marker not found, dependent checks are skipped",
				zap.String("marker", m.MetadataName()))
			continue
		}
		c.types[m] = t
	}
	return c, nil
}

// Type returns the resolved marker type, or nil for a missing optional
// marker.
func (c *Contracts) Type(m Marker) *metadata.Type {
	if m >= markerCount {
		return nil
	}
	return c.types[m]
}

// HasMarker reports whether attrs carry marker m and returns the
// arguments of the first occurrence.
func (c *Contracts) HasMarker(attrs []metadata.Attribute, m Marker) ([]any, bool) {
	a, ok := metadata.FindAttribute(attrs, c.Type(m))
	if !ok {
		return nil, false
	}
	return a.Args, true
}

// Markers returns the arguments of every occurrence of marker m.
func (c *Contracts) Markers(attrs []metadata.Attribute, m Marker) [][]any {
	var out [][]any
	for _, a := range metadata.FilterAttributes(attrs, c.Type(m)) {
		out = append(out, a.Args)
	}
	return out
}

// Ignored reports whether attrs exclude a member from serialization.
func (c *Contracts) Ignored(attrs []metadata.Attribute) bool {
	if _, ok := c.HasMarker(attrs, MarkerIgnore); ok {
		return true
	}
	_, ok := c.HasMarker(attrs, MarkerIgnoreDataMember)
	return ok
}
