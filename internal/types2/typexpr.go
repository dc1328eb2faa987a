package types2

import (
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// resolveType replaces the identifiers in t with the types they name, as
// seen from ctx. Classes named along the way have their inheritance bound;
// generic classes are instantiated. Array types also instantiate the
// runtime array class when it is declared.
func (c *Checker) resolveType(t types.Type, ctx syntax.Node) (types.Type, error) {
	switch t := t.(type) {
	case nil:
		return nil, c.internalf(ctx, "Attempted to resolve a missing data type.")

	case *types.Basic, *types.Object, *types.ClassRef:
		return t, nil

	case *types.Array:
		elem, err := c.resolveType(t.Elem(), ctx)
		if err != nil {
			return nil, err
		}
		arr := t
		if elem != t.Elem() {
			arr = types.NewArray(elem)
		}
		if types.IsVoid(elem) {
			return nil, c.errorf(syntax.UnknownTypeError, ctx, "Arrays of void are not permitted.")
		}
		return arr, nil

	case *types.Identifier:
		cls, alias, err := c.lookupType(t, ctx)
		if err != nil {
			return nil, err
		}
		if alias != nil {
			return alias, nil
		}
		return cls.ObjectType(), nil
	}
	return nil, c.internalf(ctx, "Unexpected data type %T.", t)
}

// lookupType finds the declaration named by id. It returns either a class
// (instantiated if generic) or, for generic parameter aliases, the bound
// type.
func (c *Checker) lookupType(id *types.Identifier, ctx syntax.Node) (*syntax.Class, types.Type, error) {
	args := make([]types.Type, len(id.Args()))
	for i, a := range id.Args() {
		r, err := c.resolveType(a, ctx)
		if err != nil {
			return nil, nil, err
		}
		args[i] = r
	}

	switch d := syntax.FindDataTypeDeclaration(ctx, id.Name(), nil).(type) {
	case *syntax.Alias:
		if len(args) > 0 {
			return nil, nil, c.errorf(syntax.UnknownTypeError, ctx, "Generic parameter '%s' cannot take generic arguments.", id.Name())
		}
		if d.Type != nil {
			return nil, d.Type, nil
		}
		if cls, ok := d.Decl.(*syntax.Class); ok {
			return cls, nil, c.bindClass(cls, ctx)
		}
	case *syntax.Class:
		cls, err := c.classFor(d, args, ctx)
		return cls, nil, err
	}
	return nil, nil, c.errorf(syntax.UnknownTypeError, ctx, "Unknown data type '%s'.", id)
}

// classFor checks that cls may be named from ctx with the given generic
// arguments and returns the class to use.
func (c *Checker) classFor(cls *syntax.Class, args []types.Type, ctx syntax.Node) (*syntax.Class, error) {
	if cls.Access == syntax.Private && cls.Pos().Filename() != ctx.Pos().Filename() {
		return nil, c.errorf(syntax.AccessViolationError, ctx, "Class '%s' is private and cannot be accessed from this file.", cls.Ident)
	}
	if cls.IsTemplate() {
		if len(args) == 0 {
			return nil, c.errorf(syntax.UnknownTypeError, ctx, "Generic class '%s' must be given generic arguments.", cls.Ident)
		}
		return c.instantiate(cls, args, ctx)
	}
	if len(args) > 0 {
		return nil, c.errorf(syntax.UnknownTypeError, ctx, "Class '%s' is not generic.", cls.Ident)
	}
	return cls, c.bindClass(cls, ctx)
}

// bindClass binds the inheritance of cls unless that is already under
// way; cycles are reported by inherit itself.
func (c *Checker) bindClass(cls *syntax.Class, ctx syntax.Node) error {
	if c.inheriting[cls] {
		return nil
	}
	return c.inherit(cls)
}

// instantiate returns the instance of the template tmpl for args. Each
// distinct argument list is instantiated once: the instance is a clone of
// the template whose generic parameters are aliases of the arguments.
func (c *Checker) instantiate(tmpl *syntax.Class, args []types.Type, ctx syntax.Node) (*syntax.Class, error) {
	if len(args) != len(tmpl.GenericParams) {
		return nil, c.errorf(syntax.UnknownTypeError, ctx,
			"Incorrect number of generic arguments given to class '%s', expected %d but got %d.",
			tmpl.Ident, len(tmpl.GenericParams), len(args))
	}
	for _, a := range args {
		if types.IsVoid(a) {
			return nil, c.errorf(syntax.UnknownTypeError, ctx, "Void cannot be used as a generic argument.")
		}
	}
	if inst := tmpl.Instance(args); inst != nil {
		return inst, nil
	}

	cl, err := syntax.Clone(tmpl)
	if err != nil {
		return nil, err
	}
	inst, ok := cl.(*syntax.Class)
	if !ok {
		return nil, c.internalf(tmpl, "Clone of class '%s' is not a class.", tmpl.Ident)
	}
	inst.GenericArgs = args
	for i, p := range tmpl.GenericParams {
		syntax.InsertChild(inst, i, syntax.NewAlias(p, p.Lit, args[i]))
	}
	tmpl.AddInstance(inst)
	if c.info != nil {
		c.info.Instances = append(c.info.Instances, inst)
	}
	c.log.Debug("instantiated generic class", "class", inst.Name(), "pos", ctx.Pos().String())

	if err := c.inherit(inst); err != nil {
		return nil, err
	}
	if err := c.signatures(inst); err != nil {
		return nil, err
	}
	c.pending = append(c.pending, inst)
	return inst, nil
}
