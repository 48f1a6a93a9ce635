package msgpackcodegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/collector"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

const orderDoc = `
imports: [messagepack]
types:
  - name: Order
    namespace: Shop
    attributes: [{type: MessagePack.MessagePackObjectAttribute}]
    properties:
      - {name: Id, type: int, get: public, set: public, attributes: [{type: MessagePack.KeyAttribute, args: [0]}]}
      - {name: Lines, type: "System.Collections.Generic.List<Shop.Line>", get: public, set: public, attributes: [{type: MessagePack.KeyAttribute, args: [1]}]}
    constructors: [{}]
  - name: Line
    namespace: Shop
    attributes: [{type: MessagePack.MessagePackObjectAttribute, args: [true]}]
    properties:
      - {name: Sku, type: string, get: public, set: public}
    constructors: [{}]
`

const pointWit = `{
  "worlds": [],
  "interfaces": [
    {"name": "geometry", "types": {"point": 0}, "functions": {}, "package": 0}
  ],
  "types": [
    {
      "name": "point",
      "kind": {"record": {"fields": [{"name": "x", "type": "s32"}, {"name": "y", "type": "s32"}]}},
      "owner": {"interface": 0}
    }
  ],
  "packages": [
    {"name": "example:shapes", "interfaces": {"geometry": 0}, "worlds": {}}
  ]
}`

func TestCollect(t *testing.T) {
	u, err := metadata.Parse([]byte(orderDoc), metadata.FormatYAML)
	require.NoError(t, err)

	cat, err := Collect(u, collector.Options{})
	require.NoError(t, err)

	order, ok := cat.Object("global::Shop.Order")
	require.True(t, ok)
	assert.Equal(t, catalog.KeyInteger, order.KeyMode)

	line, ok := cat.Object("global::Shop.Line")
	require.True(t, ok)
	assert.Equal(t, catalog.KeyInteger, line.KeyMode)
	assert.True(t, line.MapMode)

	list, ok := cat.Generic("global::System.Collections.Generic.List<global::Shop.Line>")
	require.True(t, ok)
	assert.Equal(t, "global::MessagePack.Formatters.ListFormatter<global::Shop.Line>", list.Binding)
}

func TestCollect_BindingFailure(t *testing.T) {
	u, err := metadata.Parse([]byte("imports: [system]\ntypes: []\n"), metadata.FormatYAML)
	require.NoError(t, err)

	_, err = Collect(u, collector.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsBindingConfigurationFailure(err))
}

func TestLoadCompilation(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(orderDoc), 0o644))

	u, err := LoadCompilation(yamlPath, LoadOptions{})
	require.NoError(t, err)
	assert.NotNil(t, u.TypeByMetadataName("Shop.Order"))

	witPath := filepath.Join(dir, "shapes.wit.json")
	require.NoError(t, os.WriteFile(witPath, []byte(pointWit), 0o644))

	u, err = LoadCompilation(witPath, LoadOptions{WitNamespace: "Example"})
	require.NoError(t, err)
	point := u.TypeByMetadataName("Example.Geometry.Point")
	require.NotNil(t, point)
	assert.Len(t, point.Properties, 2)

	cat, err := Collect(u, collector.Options{})
	require.NoError(t, err)
	_, ok := cat.Object("global::Example.Geometry.Point")
	assert.True(t, ok)
}

func TestLoadCompilation_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCompilation(filepath.Join(dir, "missing.wit.json"), LoadOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))

	bad := filepath.Join(dir, "bad.wit.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadCompilation(bad, LoadOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.KindInvalidData, errors.KindOf(err))
}

func TestIsWitPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"pkg.wit.json", true},
		{"dir/PKG.WIT.JSON", true},
		{"types.json", false},
		{"types.yaml", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWitPath(tt.path), tt.path)
	}
}
