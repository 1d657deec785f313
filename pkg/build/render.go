package build

import (
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// buildRenderForm handles `(render (file "out.png") :root <node-name>
// :camera <camera-name>)` and the `(ascii "label")` variant. An optional
// `:samples N` sets an N x N uniform sub-pixel grid; without it the sampler
// takes a single sample per pixel.
func (b *Builder) buildRenderForm(v sexpr.Value) error {
	if len(v.List) < 2 {
		return ArityError{Form: "render", Want: "a sink then options", Got: len(v.List) - 1}
	}
	sink := v.List[1]
	sinkHead, ok := sink.Head()
	if !ok {
		return ArityError{Form: "render sink", Want: "a tagged list", Got: len(sink.List)}
	}

	opts, err := symbolOptions(v.List[2:], "render")
	if err != nil {
		return err
	}
	if err := rejectUnknown(opts, "render", "root", "camera", "samples"); err != nil {
		return err
	}
	rootRef, err := requireValue(opts, "render", "root")
	if err != nil {
		return err
	}
	root, err := b.resolveNode(rootRef)
	if err != nil {
		return err
	}
	camRef, err := requireValue(opts, "render", "camera")
	if err != nil {
		return err
	}
	cam, err := b.resolveCamera(camRef)
	if err != nil {
		return err
	}
	samplerN, err := optionalNumber(opts, "samples", 1)
	if err != nil {
		return err
	}
	sampler := store.Sampler{NX: int(samplerN), NY: int(samplerN)}

	switch sinkHead {
	case "file":
		if len(sink.List) != 2 || sink.List[1].Kind != sexpr.ValueString {
			return ArityError{Form: "file sink", Want: "1 string path", Got: len(sink.List) - 1}
		}
		b.store.AddTarget(store.RenderTarget{
			Kind: store.TargetFile, Path: sink.List[1].Str,
			Root: root, Camera: cam, Sampler: sampler,
		})
		return nil

	case "ascii":
		if len(sink.List) != 2 || sink.List[1].Kind != sexpr.ValueString {
			return ArityError{Form: "ascii sink", Want: "1 string label", Got: len(sink.List) - 1}
		}
		b.store.AddTarget(store.RenderTarget{
			Kind: store.TargetASCII, Label: sink.List[1].Str,
			Root: root, Camera: cam, Sampler: sampler,
		})
		return nil

	default:
		return TypeMismatch{Expected: "a render sink (file|ascii)", Got: sinkHead}
	}
}
