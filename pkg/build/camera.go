package build

import (
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// buildCameraForm handles `(camera <name> :width 800 :height 600 :fov 90
// :transform <transform-name>)`. The camera's transform declares
// world-to-camera directly (spec §3); the builder stores it as declared, and
// pkg/camera uses its cached Inverse to map camera-space rays into the world.
func (b *Builder) buildCameraForm(v sexpr.Value) error {
	if len(v.List) < 2 {
		return ArityError{Form: "camera", Want: "a name then options", Got: len(v.List) - 1}
	}
	nm, ok := name(v.List[1])
	if !ok {
		return ArityError{Form: "camera", Want: "a name then options", Got: len(v.List) - 1}
	}
	opts, err := symbolOptions(v.List[2:], "camera")
	if err != nil {
		return err
	}
	if err := rejectUnknown(opts, "camera", "width", "height", "fov", "transform"); err != nil {
		return err
	}
	width, err := requireNumber(opts, "camera", "width")
	if err != nil {
		return err
	}
	height, err := requireNumber(opts, "camera", "height")
	if err != nil {
		return err
	}
	fov, err := requireNumber(opts, "camera", "fov")
	if err != nil {
		return err
	}
	xformRef, err := requireValue(opts, "camera", "transform")
	if err != nil {
		return err
	}
	xform, err := b.resolveTransform(xformRef)
	if err != nil {
		return err
	}

	cam := store.Camera{
		Width: int(width), Height: int(height),
		WorldToCamera: *b.store.GetTransform(xform),
		FovDegrees:    fov,
	}
	id := b.store.AddCamera(cam)
	b.cameras[nm] = id
	return nil
}

func (b *Builder) resolveCamera(v sexpr.Value) (store.CameraID, error) {
	nm, ok := name(v)
	if !ok {
		return 0, TypeMismatch{Expected: "camera name", Got: v.String()}
	}
	id, ok := b.cameras[nm]
	if !ok {
		return 0, UndefinedName{Kind: "camera", Name: nm}
	}
	return id, nil
}
