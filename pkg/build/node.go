package build

import (
	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// buildNodeForm handles `(node <name> <nodeexpr>)`.
func (b *Builder) buildNodeForm(v sexpr.Value) error {
	if len(v.List) != 3 {
		return ArityError{Form: "node", Want: "2", Got: len(v.List) - 1}
	}
	nm, ok := name(v.List[1])
	if !ok {
		return ArityError{Form: "node", Want: "a name then an expression", Got: len(v.List) - 1}
	}
	id, err := b.buildNodeExpr(v.List[2])
	if err != nil {
		return err
	}
	b.nodes[nm] = id
	return nil
}

func (b *Builder) resolveNode(v sexpr.Value) (store.NodeID, error) {
	nm, ok := name(v)
	if !ok {
		return 0, TypeMismatch{Expected: "node name", Got: v.String()}
	}
	id, ok := b.nodes[nm]
	if !ok {
		return 0, UndefinedName{Kind: "node", Name: nm}
	}
	return id, nil
}

// buildNodeExpr lowers a node-expression list, e.g. `(sphere :radius 1)` or
// `(union a b)`, into a store node id.
func (b *Builder) buildNodeExpr(v sexpr.Value) (store.NodeID, error) {
	head, ok := v.Head()
	if !ok {
		return 0, ArityError{Form: "node expression", Want: "a tagged list", Got: len(v.List)}
	}
	args := v.List[1:]

	switch head {
	case "sphere":
		opts, err := symbolOptions(args, "sphere")
		if err != nil {
			return 0, err
		}
		r, err := requireNumber(opts, "sphere", "radius")
		if err != nil {
			return 0, err
		}
		if err := rejectUnknown(opts, "sphere", "radius"); err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodeSphere, Radius: r}), nil

	case "plane":
		opts, err := symbolOptions(args, "plane")
		if err != nil {
			return 0, err
		}
		n, err := requireVector(opts, "plane", "normal")
		if err != nil {
			return 0, err
		}
		if err := rejectUnknown(opts, "plane", "normal"); err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodePlane, Normal: n}), nil

	case "box":
		opts, err := symbolOptions(args, "box")
		if err != nil {
			return 0, err
		}
		w, err := requireNumber(opts, "box", "w")
		if err != nil {
			return 0, err
		}
		h, err := requireNumber(opts, "box", "h")
		if err != nil {
			return 0, err
		}
		d, err := requireNumber(opts, "box", "d")
		if err != nil {
			return 0, err
		}
		if err := rejectUnknown(opts, "box", "w", "h", "d"); err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodeBox, HalfExtents: halfExtents(w, h, d)}), nil

	case "torus":
		opts, err := symbolOptions(args, "torus")
		if err != nil {
			return 0, err
		}
		hole, err := requireNumber(opts, "torus", "hole")
		if err != nil {
			return 0, err
		}
		ring, err := requireNumber(opts, "torus", "ring")
		if err != nil {
			return 0, err
		}
		if err := rejectUnknown(opts, "torus", "hole", "ring"); err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodeTorus, Hole: hole, Ring: ring}), nil

	case "transform":
		if len(args) != 2 {
			return 0, ArityError{Form: "transform node", Want: "2", Got: len(args)}
		}
		xform, err := b.resolveTransform(args[0])
		if err != nil {
			return 0, err
		}
		child, err := b.resolveNode(args[1])
		if err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodeTransform, Transform: xform, Child: child}), nil

	case "paint":
		if len(args) != 2 {
			return 0, ArityError{Form: "paint node", Want: "2", Got: len(args)}
		}
		mat, err := b.resolveMaterial(args[0])
		if err != nil {
			return 0, err
		}
		child, err := b.resolveNode(args[1])
		if err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodePaint, Material: mat, Child: child}), nil

	case "invert":
		if len(args) != 1 {
			return 0, ArityError{Form: "invert node", Want: "1", Got: len(args)}
		}
		child, err := b.resolveNode(args[0])
		if err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodeInvert, Child: child}), nil

	case "group", "union", "intersect":
		children, err := b.resolveNodeList(args)
		if err != nil {
			return 0, err
		}
		kind := map[string]store.NodeKind{"group": store.NodeGroup, "union": store.NodeUnion, "intersect": store.NodeIntersect}[head]
		return b.store.InternNode(store.Node{Kind: kind, Children: children}), nil

	case "smooth_union":
		if len(args) < 3 || args[0].Kind != sexpr.ValueSymbol || args[0].Symbol != "k" {
			return 0, ArityError{Form: "smooth_union", Want: ":k <number> <node-name> <node-name>...", Got: len(args)}
		}
		k, err := numberOf(args[1])
		if err != nil {
			return 0, err
		}
		children, err := b.resolveNodeList(args[2:])
		if err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodeSmoothUnion, SmoothK: k, Children: children}), nil

	case "subtract":
		if len(args) != 2 {
			return 0, ArityError{Form: "subtract", Want: "2", Got: len(args)}
		}
		a, err := b.resolveNode(args[0])
		if err != nil {
			return 0, err
		}
		bb, err := b.resolveNode(args[1])
		if err != nil {
			return 0, err
		}
		return b.store.InternNode(store.Node{Kind: store.NodeSubtract, A: a, B: bb}), nil

	default:
		return 0, TypeMismatch{Expected: "a node kind (sphere|plane|box|torus|transform|paint|invert|group|union|smooth_union|intersect|subtract)", Got: head}
	}
}

func (b *Builder) resolveNodeList(args []sexpr.Value) ([]store.NodeID, error) {
	ids := make([]store.NodeID, 0, len(args))
	for _, a := range args {
		id, err := b.resolveNode(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func halfExtents(w, h, d float64) mathx.Vec3 {
	return mathx.NewVec3(w/2, h/2, d/2)
}
