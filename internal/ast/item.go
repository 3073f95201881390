package ast

import "decaf/internal/source"

type ItemKind uint8

const (
	ItemClass ItemKind = iota + 1
	ItemField
	ItemMethod
)

func (k ItemKind) String() string {
	switch k {
	case ItemClass:
		return "class"
	case ItemField:
		return "field"
	case ItemMethod:
		return "method"
	}
	return "item?"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// ClassItem: class Name [extends Parent] { Members }.
type ClassItem struct {
	Name       source.StringID
	NameSpan   source.Span
	Parent     source.StringID // NoStringID when the class has no parent
	ParentSpan source.Span
	Members    []ItemID
}

type FieldItem struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
}

type Param struct {
	Name source.StringID
	Span source.Span
	Type TypeID
}

type MethodItem struct {
	Name     source.StringID
	NameSpan source.Span
	Static   bool
	Result   TypeID
	Params   []Param
	Body     StmtID
}

type Items struct {
	Arena   *Arena[Item]
	Classes *Arena[ClassItem]
	Fields  *Arena[FieldItem]
	Methods *Arena[MethodItem]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:   NewArena[Item](capHint),
		Classes: NewArena[ClassItem](capHint),
		Fields:  NewArena[FieldItem](capHint),
		Methods: NewArena[MethodItem](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) new(kind ItemKind, sp source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (i *Items) NewClass(sp source.Span, data ClassItem) ItemID {
	return i.new(ItemClass, sp, i.Classes.Allocate(data))
}

func (i *Items) NewField(sp source.Span, data FieldItem) ItemID {
	return i.new(ItemField, sp, i.Fields.Allocate(data))
}

func (i *Items) NewMethod(sp source.Span, data MethodItem) ItemID {
	return i.new(ItemMethod, sp, i.Methods.Allocate(data))
}

func (i *Items) Class(id ItemID) (*ClassItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemClass {
		return nil, false
	}
	return i.Classes.Get(uint32(item.Payload)), true
}

func (i *Items) Field(id ItemID) (*FieldItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemField {
		return nil, false
	}
	return i.Fields.Get(uint32(item.Payload)), true
}

func (i *Items) Method(id ItemID) (*MethodItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemMethod {
		return nil, false
	}
	return i.Methods.Get(uint32(item.Payload)), true
}
