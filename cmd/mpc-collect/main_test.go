package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/collector"
	"github.com/wippyai/msgpack-codegen/config"
	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

const universeDoc = `
imports: [messagepack]
types:
  - name: Order
    namespace: Shop
    attributes: [{type: MessagePack.MessagePackObjectAttribute}]
    properties:
      - {name: Id, type: int, get: public, set: public, attributes: [{type: MessagePack.KeyAttribute, args: [0]}]}
      - {name: State, type: Shop.State, get: public, set: public, attributes: [{type: MessagePack.KeyAttribute, args: [1]}]}
    constructors: [{}]
  - {name: State, namespace: Shop, kind: enum}
`

// workspace isolates a run from the caller's environment and .env files.
func workspace(t *testing.T) string {
	t.Helper()
	for _, k := range []string{config.EnvInput, config.EnvOutput, config.EnvFormat,
		config.EnvForceMap, config.EnvAllowInternal, config.EnvWitNamespace} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.yaml"), []byte(universeDoc), 0o644))
	return dir
}

func TestRun_Stdout(t *testing.T) {
	workspace(t)
	var stdout, stderr bytes.Buffer

	err := run([]string{"--input", "types.yaml", "--summary", "--fingerprint"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), `"global::Shop.Order"`)
	assert.Contains(t, stderr.String(), "objects=1 enums=1 generics=0 unions=0 unbound=0 total=2")
	assert.Contains(t, stderr.String(), "fingerprint: ")
}

func TestRun_OutputFile(t *testing.T) {
	dir := workspace(t)
	out := filepath.Join(dir, "catalog.yaml")
	var stdout, stderr bytes.Buffer

	err := run([]string{"types.yaml", "-o", out, "--format", "yaml", "--summary"}, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fullName: global::Shop.State")
	assert.Contains(t, stdout.String(), "objects=1")
}

func TestRun_FingerprintStable(t *testing.T) {
	workspace(t)
	fingerprint := func() string {
		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"--input", "types.yaml", "--format", "cbor", "--fingerprint"}, &stdout, &stderr))
		return strings.TrimSpace(stderr.String())
	}
	first := fingerprint()
	assert.Equal(t, first, fingerprint())

	u, err := metadata.Parse([]byte(universeDoc), metadata.FormatYAML)
	require.NoError(t, err)
	c, err := collector.New(u, collector.Options{})
	require.NoError(t, err)
	cat, err := c.CollectAll()
	require.NoError(t, err)
	sum, err := catalog.FingerprintHex(cat)
	require.NoError(t, err)
	assert.Equal(t, "fingerprint: "+sum, first)
}

func TestRun_ConfigAndFlags(t *testing.T) {
	dir := workspace(t)
	cfgPath := filepath.Join(dir, "mpc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input: types.yaml\nformat: yaml\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--config", cfgPath}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "fullName: global::Shop.Order")

	stdout.Reset()
	require.NoError(t, run([]string{"--config", cfgPath, "--force-map"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "mapMode: true")
}

func TestRun_Errors(t *testing.T) {
	workspace(t)
	tests := []struct {
		name string
		args []string
		kind errors.Kind
	}{
		{"no input", nil, errors.KindInvalidInput},
		{"bad format", []string{"--input", "types.yaml", "--format", "xml"}, errors.KindInvalidInput},
		{"missing file", []string{"--input", "absent.yaml"}, errors.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
			assert.Empty(t, stdout.String())
		})
	}

	var stdout, stderr bytes.Buffer
	assert.Error(t, run([]string{"--no-such-flag"}, &stdout, &stderr))
	assert.NoError(t, run([]string{"--help"}, &stdout, &stderr))
}

func TestRenderSummary(t *testing.T) {
	s := catalog.Summary{Objects: 3, Enums: 1, Generics: 2}

	assert.Equal(t, "objects=3 enums=1 generics=2 unions=0 unbound=0 total=6", renderSummary(s, false))

	styled := renderSummary(s, true)
	for _, label := range []string{"Catalogue", "objects", "unbound generics", "total"} {
		assert.Contains(t, styled, label)
	}
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func browserCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Objects: []catalog.Object{{Name: "Order", FullName: "global::Shop.Order"}},
		Enums:   []catalog.Enum{{Name: "State", FullName: "global::Shop.State", UnderlyingType: "Int32"}},
		Generics: []catalog.Generic{{
			FullName: "global::System.Collections.Generic.List<global::Shop.Order>",
			Binding:  "global::MessagePack.Formatters.ListFormatter<global::Shop.Order>",
		}},
		UnboundGenerics: []catalog.Object{{Name: "Page", FullName: "global::Shop.Page", TemplateParameters: []string{"T"}}},
	}
}

func TestCatalogEntries(t *testing.T) {
	entries := catalogEntries(browserCatalog())
	require.Len(t, entries, 4)
	assert.Equal(t, "object", entries[0].kind)
	assert.Equal(t, "global::Shop.Page<T>", entries[3].name)

	assert.Len(t, filterEntries(entries, "shop.order"), 2)
	assert.Len(t, filterEntries(entries, "enum"), 1)
	assert.Len(t, filterEntries(entries, "  "), 4)
}

func TestBrowserModel(t *testing.T) {
	m := newBrowserModel(browserCatalog(), "types.yaml")
	assert.Contains(t, m.View(), "4 of 4")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("state")})
	require.Len(t, m.visible, 1)
	assert.Contains(t, m.View(), "1 of 4")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateDetail, m.state)
	assert.Contains(t, m.View(), "underlyingType: Int32")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateList, m.state)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowserModel_Navigation(t *testing.T) {
	m := newBrowserModel(browserCatalog(), "types.yaml")
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.selected)
	for range 10 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 3, m.selected)
}
