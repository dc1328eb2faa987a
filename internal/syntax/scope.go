package syntax

// ----------------------------------------------------------------------------
// Declaration search
//
// Search walks outward from a node: at each scope the scope's
// SearchScopeChildren are examined, then the search moves to
// ParentSearchScope. Aliases take precedence over every other declaration
// in the chain.

// FindAlias returns the innermost alias named name visible from n.
func FindAlias(n Node, name string, ignore Node) *Alias {
	for scope := n; scope != nil; scope = scope.ParentSearchScope() {
		for _, c := range scope.SearchScopeChildren() {
			if a, ok := c.(*Alias); ok && a.Ident == name && Node(a) != ignore {
				return a
			}
		}
	}
	return nil
}

// FindDeclaration returns the declaration named name visible from n,
// skipping ignore. An alias bound to a declaration yields that
// declaration; an alias bound to a type is returned as is.
func FindDeclaration(n Node, name string, ignore Node) Decl {
	if a := FindAlias(n, name, ignore); a != nil {
		if a.Decl != nil {
			return a.Decl
		}
		return a
	}
	return findDeclaration(n, name, ignore, nil)
}

// FindLocalDeclaration is like FindDeclaration but stops at the enclosing
// class member, so it only sees parameters and locals. Locals may shadow
// fields.
func FindLocalDeclaration(n Node, name string, ignore Node) Decl {
	var stop Node
	if m := FindMemberScope(n); m != nil {
		stop = m
	}
	return findDeclaration(n, name, ignore, stop)
}

func findDeclaration(n Node, name string, ignore, stop Node) Decl {
	for scope := n; scope != nil; scope = scope.ParentSearchScope() {
		for _, c := range scope.SearchScopeChildren() {
			if c == ignore {
				continue
			}
			if _, ok := c.(*Alias); ok {
				continue
			}
			if d, ok := c.(Decl); ok && d.Identifier() == name {
				return d
			}
		}
		if scope == stop {
			break
		}
	}
	return nil
}

// FindDataTypeDeclaration returns the class or alias named name visible
// from n, skipping ignore.
func FindDataTypeDeclaration(n Node, name string, ignore Node) Decl {
	if a := FindAlias(n, name, ignore); a != nil {
		return a
	}
	for scope := n; scope != nil; scope = scope.ParentSearchScope() {
		for _, c := range scope.SearchScopeChildren() {
			if cl, ok := c.(*Class); ok && cl.Ident == name && Node(cl) != ignore {
				return cl
			}
		}
	}
	return nil
}

// FindClassScope returns the innermost class enclosing n, or n itself if
// it is a class.
func FindClassScope(n Node) *Class {
	for scope := n; scope != nil; scope = scope.ParentSearchScope() {
		if c, ok := scope.(*Class); ok {
			return c
		}
	}
	return nil
}

// FindMemberScope returns the class member enclosing n, or nil.
func FindMemberScope(n Node) *ClassMember {
	for scope := n; scope != nil; scope = scope.ParentSearchScope() {
		switch s := scope.(type) {
		case *ClassMember:
			return s
		case *Class:
			return nil
		}
	}
	return nil
}

// FindPackage returns the root package of n's tree.
func FindPackage(n Node) *Package {
	for scope := n; scope != nil; scope = scope.ParentSearchScope() {
		if p, ok := scope.(*Package); ok {
			return p
		}
	}
	return nil
}
