package build

import (
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

func (b *Builder) buildPatternForm(v sexpr.Value) error {
	if len(v.List) != 3 {
		return ArityError{Form: "pattern", Want: "2", Got: len(v.List) - 1}
	}
	nm, ok := name(v.List[1])
	if !ok {
		return ArityError{Form: "pattern", Want: "a name then an expression", Got: len(v.List) - 1}
	}
	id, err := b.buildPatternExpr(v.List[2])
	if err != nil {
		return err
	}
	b.patterns[nm] = id
	return nil
}

func (b *Builder) resolvePattern(v sexpr.Value) (store.PatternID, error) {
	nm, ok := name(v)
	if !ok {
		return 0, TypeMismatch{Expected: "pattern name", Got: v.String()}
	}
	id, ok := b.patterns[nm]
	if !ok {
		return 0, UndefinedName{Kind: "pattern", Name: nm}
	}
	return id, nil
}

func (b *Builder) buildPatternExpr(v sexpr.Value) (store.PatternID, error) {
	head, ok := v.Head()
	if !ok {
		return 0, ArityError{Form: "pattern expression", Want: "a tagged list", Got: len(v.List)}
	}
	args := v.List[1:]

	twoPatternArgs := func(form string) (store.PatternID, store.PatternID, error) {
		if len(args) != 2 {
			return 0, 0, ArityError{Form: form, Want: "2", Got: len(args)}
		}
		p0, err := b.resolvePattern(args[0])
		if err != nil {
			return 0, 0, err
		}
		p1, err := b.resolvePattern(args[1])
		if err != nil {
			return 0, 0, err
		}
		return p0, p1, nil
	}

	switch head {
	case "solid":
		if len(args) != 1 {
			return 0, ArityError{Form: "solid", Want: "1", Got: len(args)}
		}
		c, err := colorOf(args[0])
		if err != nil {
			return 0, err
		}
		return b.store.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: c}), nil

	case "gradient", "stripes", "checkers", "shells":
		p0, p1, err := twoPatternArgs(head)
		if err != nil {
			return 0, err
		}
		kind := map[string]store.PatternKind{
			"gradient": store.PatternGradient,
			"stripes":  store.PatternStripes,
			"checkers": store.PatternChecker,
			"shells":   store.PatternShells,
		}[head]
		return b.store.InternPattern(store.Pattern{Kind: kind, P0: p0, P1: p1}), nil

	case "blend":
		if len(args) != 3 {
			return 0, ArityError{Form: "blend", Want: "p0 p1 :t <number>", Got: len(args)}
		}
		p0, err := b.resolvePattern(args[0])
		if err != nil {
			return 0, err
		}
		p1, err := b.resolvePattern(args[1])
		if err != nil {
			return 0, err
		}
		opts, err := symbolOptions(args[2:], "blend")
		if err != nil {
			return 0, err
		}
		t, err := requireNumber(opts, "blend", "t")
		if err != nil {
			return 0, err
		}
		if err := rejectUnknown(opts, "blend", "t"); err != nil {
			return 0, err
		}
		return b.store.InternPattern(store.Pattern{Kind: store.PatternBlend, P0: p0, P1: p1, BlendT: t}), nil

	case "transform":
		if len(args) != 2 {
			return 0, ArityError{Form: "pattern transform", Want: "2", Got: len(args)}
		}
		xform, err := b.resolveTransform(args[0])
		if err != nil {
			return 0, err
		}
		child, err := b.resolvePattern(args[1])
		if err != nil {
			return 0, err
		}
		return b.store.InternPattern(store.Pattern{Kind: store.PatternTransform, Transform: xform, Child: child}), nil

	default:
		return 0, TypeMismatch{Expected: "a pattern kind (solid|gradient|stripes|checkers|shells|blend|transform)", Got: head}
	}
}
