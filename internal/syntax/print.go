package syntax

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/lsc/internal/types"
)

// Fprint writes a textual representation of the AST to w, one node per
// line, children indented below their parent. Analyzed expressions show
// their result type.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.print(node)
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}
	p.printf("%s", describe(node))
	p.indent++
	for _, c := range node.Children() {
		p.print(c)
	}
	if c, ok := node.(*Class); ok {
		for _, inst := range c.Instances() {
			p.print(inst)
		}
	}
	p.indent--
}

// describe returns the one-line summary of a node.
func describe(node Node) string {
	var b strings.Builder
	switch n := node.(type) {
	case *Package:
		b.WriteString("Package")
	case *Class:
		kind := "Class"
		if n.Interface {
			kind = "Interface"
		}
		fmt.Fprintf(&b, "%s %s", kind, n.Name())
		if len(n.GenericParams) > 0 {
			names := make([]string, len(n.GenericParams))
			for i, t := range n.GenericParams {
				names[i] = t.Lit
			}
			fmt.Fprintf(&b, " <%s>", strings.Join(names, ","))
		}
		writeFlags(&b, n.Access.String(), flag(n.Static, "static"), flag(n.Abstract, "abstract"),
			flag(n.Sealed, "sealed"), flag(n.Native, "native"))
		if len(n.Inherited) > 0 {
			fmt.Fprintf(&b, " : %s", types.TypeList(n.Inherited))
		}
	case *ClassBody:
		b.WriteString("ClassBody")
	case *ClassMember:
		if n.IsField() {
			fmt.Fprintf(&b, "Field %s %s", typeString(n.ReturnType), n.Ident)
		} else if n.Constructor {
			fmt.Fprintf(&b, "Constructor %s(%s)", n.Ident, types.TypeList(n.ArgTypes()))
		} else {
			fmt.Fprintf(&b, "Method %s %s(%s)", typeString(n.ReturnType), n.Ident, types.TypeList(n.ArgTypes()))
		}
		writeFlags(&b, n.Access.String(), flag(n.Static, "static"), flag(n.Abstract, "abstract"),
			flag(n.Virtual, "virtual"), flag(n.Override, "override"), flag(n.Const, "const"),
			flag(n.Native, "native"))
	case *MethodBody:
		b.WriteString("MethodBody")
	case *Variable:
		kind := "Variable"
		if n.Param {
			kind = "Param"
		}
		fmt.Fprintf(&b, "%s %s %s", kind, typeString(n.Type), n.Ident)
	case *Alias:
		fmt.Fprintf(&b, "Alias %s", n.Ident)
		if n.Type != nil {
			fmt.Fprintf(&b, " = %s", n.Type)
		}
	case *Block:
		b.WriteString("Block")
	case *IfStmt:
		b.WriteString("If")
	case *WhileStmt:
		b.WriteString("While")
	case *DoStmt:
		b.WriteString("Do")
	case *ForStmt:
		b.WriteString("For")
	case *ForEachStmt:
		b.WriteString("ForEach")
	case *SwitchStmt:
		b.WriteString("Switch")
	case *CaseStmt:
		b.WriteString("Case")
	case *DefaultStmt:
		b.WriteString("Default")
	case *BreakStmt:
		b.WriteString("Break")
	case *ContinueStmt:
		b.WriteString("Continue")
	case *ReturnStmt:
		b.WriteString("Return")
	case *TryStmt:
		b.WriteString("Try")
	case *CatchStmt:
		b.WriteString("Catch")
	case *ThrowStmt:
		b.WriteString("Throw")
	case *ExprStmt:
		b.WriteString("Expr")
		if n.Const {
			b.WriteString(" const")
		}
	case *AssignmentExpr:
		fmt.Fprintf(&b, "Assign %s", n.Op)
	case *BinaryMathExpr:
		fmt.Fprintf(&b, "BinaryMath %s", n.Op)
	case *ComparisonExpr:
		fmt.Fprintf(&b, "Comparison %s", n.Op)
	case *LogicalExpr:
		fmt.Fprintf(&b, "Logical %s", n.Op)
	case *TernaryExpr:
		b.WriteString("Ternary")
	case *TypeTestExpr:
		fmt.Fprintf(&b, "TypeTest %s %s", n.Op, typeString(n.Target))
	case *CastExpr:
		fmt.Fprintf(&b, "Cast %s", typeString(n.Target))
		if n.Explicit {
			b.WriteString(" explicit")
		}
	case *PrefixExpr:
		fmt.Fprintf(&b, "Prefix %s", n.Op)
	case *PostfixExpr:
		fmt.Fprintf(&b, "Postfix %s", n.Op)
	case *IndexExpr:
		b.WriteString("Index")
	case *SliceExpr:
		b.WriteString("Slice")
	case *MethodCallExpr:
		fmt.Fprintf(&b, "MethodCall %s", n.Name)
	case *FieldAccessExpr:
		fmt.Fprintf(&b, "FieldAccess %s", n.Name)
	case *IdentExpr:
		fmt.Fprintf(&b, "Ident %s", n.Name)
		if len(n.GenericArgs) > 0 {
			fmt.Fprintf(&b, "<%s>", types.TypeList(n.GenericArgs))
		}
	case *LiteralExpr:
		fmt.Fprintf(&b, "Literal %s", Token{Kind: n.Kind, Lit: n.Lit})
	case *NewExpr:
		fmt.Fprintf(&b, "New %s", typeString(n.Target))
		if n.Array {
			b.WriteString(" array")
		}
	case *ThisExpr:
		b.WriteString("This")
	case *BaseExpr:
		b.WriteString("Base")
	case *ClassRefExpr:
		b.WriteString("ClassRef")
	case *CommaExpr:
		b.WriteString("Comma")
	default:
		fmt.Fprintf(&b, "%T", node)
	}
	if e, ok := node.(Expr); ok && e.Type() != nil {
		fmt.Fprintf(&b, " : %s", e.Type())
	}
	fmt.Fprintf(&b, " @%s", node.Pos())
	return b.String()
}

func flag(set bool, name string) string {
	if set {
		return name
	}
	return ""
}

func writeFlags(b *strings.Builder, flags ...string) {
	for _, f := range flags {
		if f != "" {
			b.WriteString(" " + f)
		}
	}
}

func typeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
