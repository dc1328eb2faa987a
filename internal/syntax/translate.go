package syntax

// Translator is the code generation backend. It has one entry point per
// translatable node kind. Statement entry points write their output and
// return only an error; expression entry points return the emitted code.
//
// Translate and TranslateExpr are the only callers; they guarantee that
// the node handed to an entry point has been analyzed.
type Translator interface {
	TranslatePackage(*Package) error
	TranslateClass(*Class) error
	TranslateClassMember(*ClassMember) error

	TranslateBlock(*Block) error
	TranslateMethodBody(*MethodBody) error
	TranslateVariable(*Variable) error
	TranslateIf(*IfStmt) error
	TranslateWhile(*WhileStmt) error
	TranslateDo(*DoStmt) error
	TranslateFor(*ForStmt) error
	TranslateForEach(*ForEachStmt) error
	TranslateSwitch(*SwitchStmt) error
	TranslateBreak(*BreakStmt) error
	TranslateContinue(*ContinueStmt) error
	TranslateReturn(*ReturnStmt) error
	TranslateTry(*TryStmt) error
	TranslateThrow(*ThrowStmt) error
	TranslateExprStmt(*ExprStmt) error

	TranslateAssignmentExpr(*AssignmentExpr) (string, error)
	TranslateBinaryMathExpr(*BinaryMathExpr) (string, error)
	TranslateComparisonExpr(*ComparisonExpr) (string, error)
	TranslateLogicalExpr(*LogicalExpr) (string, error)
	TranslateTernaryExpr(*TernaryExpr) (string, error)
	TranslateTypeTestExpr(*TypeTestExpr) (string, error)
	TranslateCastExpr(*CastExpr) (string, error)
	TranslatePrefixExpr(*PrefixExpr) (string, error)
	TranslatePostfixExpr(*PostfixExpr) (string, error)
	TranslateIndexExpr(*IndexExpr) (string, error)
	TranslateSliceExpr(*SliceExpr) (string, error)
	TranslateMethodCallExpr(*MethodCallExpr) (string, error)
	TranslateFieldAccessExpr(*FieldAccessExpr) (string, error)
	TranslateIdentExpr(*IdentExpr) (string, error)
	TranslateLiteralExpr(*LiteralExpr) (string, error)
	TranslateNewExpr(*NewExpr) (string, error)
	TranslateThisExpr(*ThisExpr) (string, error)
	TranslateBaseExpr(*BaseExpr) (string, error)
	TranslateClassRefExpr(*ClassRefExpr) (string, error)
	TranslateCommaExpr(*CommaExpr) (string, error)
}

// Translate forwards the declaration or statement n to its entry point.
// Case, default and catch clauses are emitted by their enclosing
// statement and are never translated on their own.
func Translate(tr Translator, n Node) error {
	if !n.Analyzed() {
		return Internalf(n.Tok(), "Attempted to translate unanalyzed node %T.", n)
	}
	switch n := n.(type) {
	case *Package:
		return tr.TranslatePackage(n)
	case *Class:
		return tr.TranslateClass(n)
	case *ClassMember:
		return tr.TranslateClassMember(n)
	case *Block:
		return tr.TranslateBlock(n)
	case *MethodBody:
		return tr.TranslateMethodBody(n)
	case *Variable:
		return tr.TranslateVariable(n)
	case *IfStmt:
		return tr.TranslateIf(n)
	case *WhileStmt:
		return tr.TranslateWhile(n)
	case *DoStmt:
		return tr.TranslateDo(n)
	case *ForStmt:
		return tr.TranslateFor(n)
	case *ForEachStmt:
		return tr.TranslateForEach(n)
	case *SwitchStmt:
		return tr.TranslateSwitch(n)
	case *BreakStmt:
		return tr.TranslateBreak(n)
	case *ContinueStmt:
		return tr.TranslateContinue(n)
	case *ReturnStmt:
		return tr.TranslateReturn(n)
	case *TryStmt:
		return tr.TranslateTry(n)
	case *ThrowStmt:
		return tr.TranslateThrow(n)
	case *ExprStmt:
		return tr.TranslateExprStmt(n)
	}
	return Internalf(n.Tok(), "Node %T cannot be translated as a statement.", n)
}

// TranslateExpr forwards the expression e to its entry point. Expression
// roots translate as the expression they wrap.
func TranslateExpr(tr Translator, e Expr) (string, error) {
	if !e.Analyzed() {
		return "", Internalf(e.Tok(), "Attempted to translate unanalyzed node %T.", e)
	}
	switch e := e.(type) {
	case *ExprStmt:
		return TranslateExpr(tr, e.X)
	case *AssignmentExpr:
		return tr.TranslateAssignmentExpr(e)
	case *BinaryMathExpr:
		return tr.TranslateBinaryMathExpr(e)
	case *ComparisonExpr:
		return tr.TranslateComparisonExpr(e)
	case *LogicalExpr:
		return tr.TranslateLogicalExpr(e)
	case *TernaryExpr:
		return tr.TranslateTernaryExpr(e)
	case *TypeTestExpr:
		return tr.TranslateTypeTestExpr(e)
	case *CastExpr:
		return tr.TranslateCastExpr(e)
	case *PrefixExpr:
		return tr.TranslatePrefixExpr(e)
	case *PostfixExpr:
		return tr.TranslatePostfixExpr(e)
	case *IndexExpr:
		return tr.TranslateIndexExpr(e)
	case *SliceExpr:
		return tr.TranslateSliceExpr(e)
	case *MethodCallExpr:
		return tr.TranslateMethodCallExpr(e)
	case *FieldAccessExpr:
		return tr.TranslateFieldAccessExpr(e)
	case *IdentExpr:
		return tr.TranslateIdentExpr(e)
	case *LiteralExpr:
		return tr.TranslateLiteralExpr(e)
	case *NewExpr:
		return tr.TranslateNewExpr(e)
	case *ThisExpr:
		return tr.TranslateThisExpr(e)
	case *BaseExpr:
		return tr.TranslateBaseExpr(e)
	case *ClassRefExpr:
		return tr.TranslateClassRefExpr(e)
	case *CommaExpr:
		return tr.TranslateCommaExpr(e)
	}
	return "", Internalf(e.Tok(), "Node %T cannot be translated as an expression.", e)
}
