package syntax

import (
	"reflect"

	"github.com/you-not-fish/lsc/internal/types"
)

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Declarations, Statements, and
// Expressions. Every node owns an ordered list of children and keeps a
// non-owning reference to its parent. Typed fields such as IfStmt.Cond
// point into the children list; both are updated together through
// AddChild and ReplaceChild.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Tok() Token // originating token
	Pos() Pos
	Parent() Node
	Children() []Node

	// Analyzed reports whether semantic analysis has run on the node.
	Analyzed() bool
	// MarkAnalyzed sets the one-shot analyzed flag.
	MarkAnalyzed()

	ScopeProvider

	base() *node
}

// ScopeProvider is the set of hooks used by declaration search and loop
// control. The defaults return the physical parent and children.
type ScopeProvider interface {
	ParentSearchScope() Node
	SearchScopeChildren() []Node
	FindLoopScope() Node
	AcceptsBreak() bool
	AcceptsContinue() bool
}

// Decl is implemented by nodes that declare a name.
type Decl interface {
	Node
	Identifier() string
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	// Type returns the result type; nil until analyzed.
	Type() types.Type
	SetType(t types.Type)
	aExpr()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	tok      Token
	parent   Node
	children []Node
	analyzed bool
}

func (n *node) Tok() Token       { return n.tok }
func (n *node) Pos() Pos         { return n.tok.Pos }
func (n *node) Parent() Node     { return n.parent }
func (n *node) Children() []Node { return n.children }
func (n *node) Analyzed() bool   { return n.analyzed }
func (n *node) MarkAnalyzed()    { n.analyzed = true }
func (n *node) base() *node      { return n }

func (n *node) ParentSearchScope() Node     { return n.parent }
func (n *node) SearchScopeChildren() []Node { return n.children }
func (n *node) AcceptsBreak() bool          { return false }
func (n *node) AcceptsContinue() bool       { return false }

func (n *node) FindLoopScope() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.FindLoopScope()
}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// expr is embedded in all expression nodes.
type expr struct {
	node
	typ types.Type
}

func (e *expr) Type() types.Type     { return e.typ }
func (e *expr) SetType(t types.Type) { e.typ = t }
func (*expr) aExpr()                 {}

// ----------------------------------------------------------------------------
// Structure

// AddChild appends child to parent's children and makes parent its owner.
// A nil child is ignored. The previous owner, if any, keeps its slot until
// it is replaced or removed; this lets a synthesized node adopt an operand
// before the operand's old slot is rewritten with ReplaceChild.
func AddChild(parent, child Node) {
	if isNil(child) {
		return
	}
	child.base().parent = parent
	pb := parent.base()
	pb.children = append(pb.children, child)
}

// InsertChild inserts child at index i of parent's children.
func InsertChild(parent Node, i int, child Node) {
	child.base().parent = parent
	pb := parent.base()
	if i >= len(pb.children) {
		pb.children = append(pb.children, child)
		return
	}
	pb.children = append(pb.children, nil)
	copy(pb.children[i+1:], pb.children[i:])
	pb.children[i] = child
}

// RemoveChild removes child from parent and reports whether it was found.
func RemoveChild(parent, child Node) bool {
	pb := parent.base()
	for i, c := range pb.children {
		if c == child {
			pb.children = append(pb.children[:i], pb.children[i+1:]...)
			if cb := child.base(); cb.parent == parent {
				cb.parent = nil
			}
			return true
		}
	}
	return false
}

// ReplaceChild puts repl in old's slot among parent's children, keeping
// sibling order, and returns repl. Callers must use the returned node as
// the authoritative reference: old may now be owned by repl (for example a
// cast wrapping its operand). If old is not a child of parent, repl is
// appended unless it already is one.
func ReplaceChild(parent, old, repl Node) Node {
	if isNil(repl) || old == repl {
		return repl
	}
	pb := parent.base()
	for i, c := range pb.children {
		if c == old {
			pb.children[i] = repl
			repl.base().parent = parent
			if ob := old.base(); ob.parent == parent {
				ob.parent = nil
			}
			return repl
		}
	}
	for _, c := range pb.children {
		if c == repl {
			return repl
		}
	}
	AddChild(parent, repl)
	return repl
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// ----------------------------------------------------------------------------
// Declarations

// AccessLevel is the visibility of a class or member.
type AccessLevel uint8

const (
	Public AccessLevel = iota
	Protected
	Private
)

func (a AccessLevel) String() string {
	switch a {
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return "public"
}

// Package is the root of a translation unit. Its children are the classes
// of every parsed file.
type Package struct {
	node
}

// NewPackage returns an empty package root.
func NewPackage() *Package {
	return &Package{}
}

// Classes returns the class declarations of the package in source order.
func (p *Package) Classes() []*Class {
	var list []*Class
	for _, c := range p.children {
		if c, ok := c.(*Class); ok {
			list = append(list, c)
		}
	}
	return list
}

// Class is a class or interface declaration, or a generic instance cloned
// from one.
type Class struct {
	node
	Ident         string
	Access        AccessLevel
	Static        bool
	Abstract      bool
	Sealed        bool
	Native        bool
	Interface     bool
	Generic       bool
	MangledIdent  string  // native("...") name
	BoxIdent      string  // box("...") class name
	InheritsNull  bool    // ": null", no implicit root class
	GenericParams []Token // generic parameter names
	Inherited     []types.Type
	Body          *ClassBody

	// Set by the checker.
	Super       *Class
	Interfaces  []*Class
	BoxClass    *Class
	Template    *Class       // generic template this class instantiates
	GenericArgs []types.Type // arguments bound to GenericParams

	instances  []*Class
	objectType *types.Object
	refType    *types.ClassRef
}

func (c *Class) Identifier() string { return c.Ident }

// Name returns the display name, including generic arguments.
func (c *Class) Name() string {
	if len(c.GenericArgs) == 0 {
		return c.Ident
	}
	return c.Ident + "<" + types.TypeList(c.GenericArgs) + ">"
}

// IsInterface reports whether c is an interface.
func (c *Class) IsInterface() bool { return c.Interface }

// IsTemplate reports whether c is a generic class that has not been
// instantiated. Templates are never analyzed.
func (c *Class) IsTemplate() bool { return c.Generic && c.Template == nil }

// Inherits reports whether c is other or derives from it.
func (c *Class) Inherits(other types.Class) bool {
	if types.Class(c) == other {
		return true
	}
	if c.Super != nil && c.Super.Inherits(other) {
		return true
	}
	for _, i := range c.Interfaces {
		if i.Inherits(other) {
			return true
		}
	}
	return false
}

// Box returns the box class, or nil.
func (c *Class) Box() types.Class {
	if c.BoxClass == nil {
		return nil
	}
	return c.BoxClass
}

// ObjectType returns the canonical instance type of c.
func (c *Class) ObjectType() *types.Object {
	if c.objectType == nil {
		c.objectType = types.NewObject(c)
	}
	return c.objectType
}

// RefType returns the canonical class reference type of c.
func (c *Class) RefType() *types.ClassRef {
	if c.refType == nil {
		c.refType = types.NewClassRef(c)
	}
	return c.refType
}

// Instance returns the cached instantiation of the template c for args,
// or nil.
func (c *Class) Instance(args []types.Type) *Class {
next:
	for _, inst := range c.instances {
		if len(inst.GenericArgs) != len(args) {
			continue
		}
		for i, a := range args {
			if !types.Identical(inst.GenericArgs[i], a) {
				continue next
			}
		}
		return inst
	}
	return nil
}

// AddInstance records inst in c's instantiation cache. c owns inst.
func (c *Class) AddInstance(inst *Class) {
	inst.Template = c
	inst.parent = c
	c.instances = append(c.instances, inst)
}

// Instances returns the generated instances of the template c.
func (c *Class) Instances() []*Class { return c.instances }

// ParentSearchScope skips the owning template for generic instances, so
// that lookups continue in the scope the template was declared in.
func (c *Class) ParentSearchScope() Node {
	if c.Template != nil {
		return c.Template.ParentSearchScope()
	}
	return c.parent
}

// Members returns the members declared directly in c.
func (c *Class) Members() []*ClassMember {
	if c.Body == nil {
		return nil
	}
	var list []*ClassMember
	for _, n := range c.Body.children {
		if m, ok := n.(*ClassMember); ok {
			list = append(list, m)
		}
	}
	return list
}

// ClassBody holds the members of a class.
type ClassBody struct {
	node
}

// SearchScopeChildren includes the members inherited from the superclass.
func (b *ClassBody) SearchScopeChildren() []Node {
	c, _ := b.parent.(*Class)
	if c == nil || c.Super == nil || c.Super.Body == nil {
		return b.children
	}
	inherited := c.Super.Body.SearchScopeChildren()
	list := make([]Node, 0, len(b.children)+len(inherited))
	list = append(list, b.children...)
	return append(list, inherited...)
}

// MemberKind distinguishes fields from methods.
type MemberKind uint8

const (
	FieldMember MemberKind = iota
	MethodMember
)

// ClassMember is a field, method or constructor.
type ClassMember struct {
	node
	Ident        string
	Kind         MemberKind
	Access       AccessLevel
	Static       bool
	Abstract     bool
	Virtual      bool
	Override     bool
	Const        bool
	Native       bool
	Constructor  bool
	MangledIdent string
	ReturnType   types.Type // field type for fields
	Args         []*Variable
	Body         *MethodBody
	Init         *ExprStmt // field initializer

	Overrides *ClassMember // set by the checker
}

func (m *ClassMember) Identifier() string { return m.Ident }

// IsField reports whether m is a field.
func (m *ClassMember) IsField() bool { return m.Kind == FieldMember }

// IsMethod reports whether m is a method or constructor.
func (m *ClassMember) IsMethod() bool { return m.Kind == MethodMember }

// Class returns the class declaring m.
func (m *ClassMember) Class() *Class {
	if m.parent == nil {
		return nil
	}
	c, _ := m.parent.Parent().(*Class)
	return c
}

// ArgTypes returns the declared argument types.
func (m *ClassMember) ArgTypes() []types.Type {
	list := make([]types.Type, len(m.Args))
	for i, a := range m.Args {
		list[i] = a.Type
	}
	return list
}

// RequiredArgs returns the number of arguments without a default value.
func (m *ClassMember) RequiredArgs() int {
	n := 0
	for _, a := range m.Args {
		if a.Init == nil {
			n++
		}
	}
	return n
}

// Signature formats m as name(type,type).
func (m *ClassMember) Signature() string {
	return m.Ident + "(" + types.TypeList(m.ArgTypes()) + ")"
}

// MethodBody is the statement list of a method.
type MethodBody struct {
	node
}

func (*MethodBody) aStmt() {}

// Variable is a local variable or a method parameter.
type Variable struct {
	node
	Ident string
	Type  types.Type
	Init  Expr // initializer, or default value for parameters
	Param bool
}

func (v *Variable) Identifier() string { return v.Ident }
func (*Variable) aStmt()               {}

// Alias binds a name either to another declaration or directly to a type.
// Generic instances bind their parameter names with aliases.
type Alias struct {
	node
	Ident string
	Decl  Decl
	Type  types.Type
}

func (a *Alias) Identifier() string { return a.Ident }

// NewAlias returns an alias of name to t.
func NewAlias(tok Token, name string, t types.Type) *Alias {
	return &Alias{node: node{tok: tok}, Ident: name, Type: t}
}
