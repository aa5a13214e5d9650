package dtsforge

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func TestReserveNamesCoversTypesAndMembers(t *testing.T) {
	widgetId := ident.Type("Widgets", "Widgets.Core.Widget", 0)
	ctorId := ident.Member("Widgets", "Widgets.Core.Widget", ".ctor", "()")
	nameId := ident.Member("Widgets", "Widgets.Core.Widget", "Name", "()")
	frobId := ident.Member("Widgets", "Widgets.Core.Widget", "Frobinate", "()")
	omittedId := ident.Member("Widgets", "Widgets.Core.Widget", "Legacy", "()")

	g := symbol.New().WithNewType(symbol.TypeSymbol{
		StableId:      widgetId,
		Assembly:      "Widgets",
		FullName:      "Widgets.Core.Widget",
		ClrName:       "Widget",
		Namespace:     "Widgets.Core",
		Kind:          symbol.KindClass,
		Accessibility: symbol.Public,
		Members: []symbol.Member{
			{ClrName: ".ctor", StableId: ctorId, Kind: symbol.MemberConstructor, EmitScope: symbol.ClassSurface},
			{ClrName: "Name", StableId: nameId, Kind: symbol.MemberProperty, EmitScope: symbol.ClassSurface, HasGetter: true},
			{ClrName: "Frobinate", StableId: frobId, Kind: symbol.MemberMethod, EmitScope: symbol.ClassSurface},
			{ClrName: "Legacy", StableId: omittedId, Kind: symbol.MemberMethod, EmitScope: symbol.Omitted},
		},
	})

	r := renamer.New(diagnostics.NewSink(diagnostics.DefaultConfig()), nil)
	reserveNames(shape.Result{Graph: g}, r, DefaultConfig())

	if got := r.FinalTypeName(widgetId); got != "Widget" {
		t.Errorf("expected type name Widget, got %q", got)
	}

	base := renamer.TypeBase("Widgets.Core.Widget")
	if name, ok := r.FinalMemberName(nameId, base.WithSide(renamer.SideInstance)); !ok || name != "Name" {
		t.Errorf("expected member name \"Name\" (property transform defaults to none), got %q (ok=%v)", name, ok)
	}
	if name, ok := r.FinalMemberName(frobId, base.WithSide(renamer.SideInstance)); !ok || name != "frobinate" {
		t.Errorf("expected method name \"frobinate\" (method transform defaults to CamelCase), got %q (ok=%v)", name, ok)
	}
	if _, ok := r.FinalMemberName(omittedId, base.WithSide(renamer.SideInstance)); ok {
		t.Errorf("expected omitted member to have no reservation")
	}
}

func TestReserveNamesReservesExtensionBucketInterface(t *testing.T) {
	bucket := shape.ExtensionBucket{
		ReceiverCanonicalName: "Widgets.Core.Widget",
		BucketInterfaceName:   "Ext_Widget",
		RequiredImports:       []string{"Widgets.Ext"},
	}

	r := renamer.New(diagnostics.NewSink(diagnostics.DefaultConfig()), nil)
	reserveNames(shape.Result{Graph: symbol.New(), ExtensionBuckets: []shape.ExtensionBucket{bucket}}, r, DefaultConfig())

	if got := r.FinalTypeName(bucket.Id()); got != "Ext_Widget" {
		t.Errorf("expected Ext_Widget, got %q", got)
	}
}
