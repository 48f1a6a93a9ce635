package witimport_test

import (
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/collector"
	"github.com/wippyai/msgpack-codegen/metadata/witimport"
)

func TestImport_Collect(t *testing.T) {
	name := func(s string) *string { return &s }
	level := &wit.TypeDef{Name: name("level"), Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "low"}, {Name: "high"}}}}
	event := &wit.TypeDef{Name: name("event"), Kind: &wit.Record{Fields: []wit.Field{
		{Name: "id", Type: wit.U64{}},
		{Name: "level", Type: level},
	}}}
	msg := &wit.TypeDef{Name: name("message"), Kind: &wit.Variant{Cases: []wit.Case{
		{Name: "ping"},
		{Name: "event", Type: event},
	}}}

	u, err := witimport.Import([]*wit.TypeDef{level, event, msg}, witimport.Options{Namespace: "Bus"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	c, err := collector.New(u, collector.Options{})
	if err != nil {
		t.Fatalf("collector.New failed: %v", err)
	}
	cat, err := c.CollectAll()
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}

	ev, ok := cat.Object("global::Bus.Event")
	if !ok {
		t.Fatal("Event not collected")
	}
	if ev.KeyMode != catalog.KeyInteger || len(ev.Members) != 2 {
		t.Errorf("event = %+v", ev)
	}
	if len(ev.ConstructorParameters) != 2 || ev.ConstructorParameters[1].Name != "Level" {
		t.Errorf("constructor parameters = %+v", ev.ConstructorParameters)
	}

	if len(cat.Unions) != 1 {
		t.Fatalf("got %d unions, want 1", len(cat.Unions))
	}
	want := []catalog.UnionCase{
		{Key: 0, Type: "global::Bus.Message.Ping"},
		{Key: 1, Type: "global::Bus.Message.Event"},
	}
	got := cat.Unions[0].Cases
	if len(got) != len(want) {
		t.Fatalf("cases = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("case %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if len(cat.Enums) != 1 || cat.Enums[0].UnderlyingType != "Byte" {
		t.Errorf("enums = %+v", cat.Enums)
	}
	if _, ok := cat.Object("global::Bus.Message.Event"); !ok {
		t.Error("payload case not collected")
	}
}
