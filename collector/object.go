package collector

import (
	"strings"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

const (
	guessedBindingPrefix = "global::MessagePack.Formatters."
	guessedBindingSuffix = "Formatter"

	onBeforeSerialize  = "OnBeforeSerialize"
	onAfterDeserialize = "OnAfterDeserialize"
)

// resolveObject builds the object descriptor of t: identity, members with
// their wire keys, the bound constructor and the callback hooks.
func (c *Collector) resolveObject(t *metadata.Type, id string) (catalog.Object, error) {
	def := t.OriginalDefinition()
	obj := catalog.Object{
		Name:      strings.ReplaceAll(t.ShortName(), ".", "_"),
		Namespace: def.Namespace,
		FullName:  id,
		IsClass:   !t.IsValueType(),
		KeyMode:   catalog.KeyInteger,
	}
	if t.IsGenericDefinition() {
		for _, p := range t.TypeParameters {
			obj.TemplateParameters = append(obj.TemplateParameters, p.Name)
		}
	}

	custom := c.customBinding(t.Attributes)
	contract, marked := c.contracts.HasMarker(t.Attributes, MarkerObject)
	if !marked && custom == "" {
		custom = guessedBindingPrefix + c.names.display(t) + guessedBindingSuffix
	}

	if custom != "" {
		obj.CustomBinding = custom
	} else {
		mapMode := c.opts.ForceMap
		if v, ok := argAt(contract, 0).(bool); ok && v {
			mapMode = true
		}

		var (
			members []catalog.Member
			mode    catalog.KeyMode
			err     error
		)
		if mapMode {
			members, err = c.mapMembers(t, id)
			mode = catalog.KeyInteger
		} else {
			members, mode, err = c.keyedMembers(t, id)
		}
		if err != nil {
			return obj, err
		}
		obj.Members = members
		obj.KeyMode = mode
		obj.MapMode = mapMode

		if len(members) > 0 {
			idx := NewMemberIndex(members, mapMode || mode == catalog.KeyInteger)
			params, err := c.matchConstructor(t, id, idx)
			if err != nil {
				return obj, err
			}
			obj.ConstructorParameters = params
		}
	}

	c.resolveHooks(t, &obj)
	return obj, nil
}

// resolveHooks records whether t receives serialization callbacks and
// whether the emitted calls go through the capability interface.
func (c *Collector) resolveHooks(t *metadata.Type, obj *catalog.Object) {
	obj.NeedsCastOnBefore = true
	obj.NeedsCastOnAfter = true
	if !t.Implements(c.contracts.Type(MarkerCallbackReceiver)) {
		return
	}
	obj.HasCallbackReceiver = true
	obj.NeedsCastOnBefore = !t.DeclaresMethod(onBeforeSerialize)
	obj.NeedsCastOnAfter = !t.DeclaresMethod(onAfterDeserialize)
}

// mapMembers includes every readable or writable member that is not
// ignored, keyed 0..n-1 in declaration order, properties first.
func (c *Collector) mapMembers(t *metadata.Type, id string) ([]catalog.Member, error) {
	var members []catalog.Member
	seen := make(map[string]bool)

	add := func(m catalog.Member, typ *metadata.Type) error {
		if !m.IsReadable && !m.IsWritable {
			return nil
		}
		if seen[m.Name] {
			return errors.Resolution(errors.KindDuplicateMember, id, m.Name,
				"member name is declared more than once in the type hierarchy")
		}
		seen[m.Name] = true
		m.StringKey = m.Name
		m.IntKey = len(members)
		members = append(members, m)
		return c.visit(typ)
	}

	for _, p := range t.AllProperties() {
		if p.Override || p.Indexer || c.contracts.Ignored(p.Attributes) {
			continue
		}
		if err := add(c.propertyMember(p), p.Type); err != nil {
			return nil, err
		}
	}
	for _, f := range t.AllFields() {
		if f.Implicit || c.contracts.Ignored(f.Attributes) {
			continue
		}
		if err := add(c.fieldMember(f), f.Type); err != nil {
			return nil, err
		}
	}
	return members, nil
}

// keySet validates key-mode wire keys. The first key fixes the mode.
type keySet struct {
	mode   catalog.KeyMode
	ints   map[int]string
	strs   map[string]string
	hidden int
}

func newKeySet() *keySet {
	return &keySet{ints: make(map[int]string), strs: make(map[string]string)}
}

func (k *keySet) assign(id string, m *catalog.Member, key any) error {
	var mode catalog.KeyMode
	switch key.(type) {
	case int:
		mode = catalog.KeyInteger
	case string:
		mode = catalog.KeyString
	default:
		return errors.New(errors.PhaseResolve, errors.KindInvalidKey).
			Type(id).Member(m.Name).Value(key).
			Detail("key must be an integer or a string").
			Build()
	}

	if k.mode == "" {
		k.mode = mode
	} else if k.mode != mode {
		return errors.Resolution(errors.KindKeyKindMismatch, id, m.Name,
			"%s key in a type keyed by %s", mode, k.mode)
	}

	switch v := key.(type) {
	case int:
		if other, dup := k.ints[v]; dup {
			return errors.New(errors.PhaseResolve, errors.KindDuplicateKey).
				Type(id).Member(m.Name).Value(v).
				Detail("key %d is already used by %s", v, other).
				Build()
		}
		k.ints[v] = m.Name
		m.IntKey = v
	case string:
		if other, dup := k.strs[v]; dup {
			return errors.New(errors.PhaseResolve, errors.KindDuplicateKey).
				Type(id).Member(m.Name).Value(v).
				Detail("key %q is already used by %s", v, other).
				Build()
		}
		k.strs[v] = m.Name
		m.StringKey = v
		m.IntKey = k.hidden
		k.hidden++
	}
	return nil
}

// keyedMembers includes only members carrying a key marker. Every
// readable or writable member that is not ignored must carry one.
func (c *Collector) keyedMembers(t *metadata.Type, id string) ([]catalog.Member, catalog.KeyMode, error) {
	var members []catalog.Member
	keys := newKeySet()

	add := func(m catalog.Member, typ *metadata.Type, attrs []metadata.Attribute) error {
		if !m.IsReadable && !m.IsWritable {
			return nil
		}
		args, ok := c.contracts.HasMarker(attrs, MarkerKey)
		if !ok {
			return errors.Resolution(errors.KindMissingKey, id, m.Name,
				"serialized members must carry a key marker or an ignore marker")
		}
		if err := keys.assign(id, &m, argAt(args, 0)); err != nil {
			return err
		}
		members = append(members, m)
		return c.visit(typ)
	}

	for _, p := range t.AllProperties() {
		if p.Override || p.Indexer || c.contracts.Ignored(p.Attributes) {
			continue
		}
		if err := add(c.propertyMember(p), p.Type, p.Attributes); err != nil {
			return nil, "", err
		}
	}
	for _, f := range t.AllFields() {
		if f.Implicit || c.contracts.Ignored(f.Attributes) {
			continue
		}
		if err := add(c.fieldMember(f), f.Type, f.Attributes); err != nil {
			return nil, "", err
		}
	}

	mode := keys.mode
	if mode == "" {
		mode = catalog.KeyInteger
	}
	return members, mode, nil
}

func (c *Collector) propertyMember(p *metadata.Property) catalog.Member {
	return catalog.Member{
		Name:          p.Name,
		Type:          c.names.fullName(p.Type),
		ShortTypeName: p.Type.MinimalName(),
		IsProperty:    true,
		IsReadable:    p.Getter != nil && p.Getter.Access == metadata.AccessPublic && !p.Static,
		IsWritable:    p.Setter != nil && p.Setter.Access == metadata.AccessPublic && !p.Static,
		CustomBinding: c.customBinding(p.Attributes),
	}
}

func (c *Collector) fieldMember(f *metadata.Field) catalog.Member {
	readable := f.Access == metadata.AccessPublic && !f.Static
	return catalog.Member{
		Name:          f.Name,
		Type:          c.names.fullName(f.Type),
		ShortTypeName: f.Type.MinimalName(),
		IsReadable:    readable,
		IsWritable:    readable && !f.ReadOnly,
		CustomBinding: c.customBinding(f.Attributes),
	}
}
