// Package camera turns a pinhole camera declaration and a sub-pixel sampler
// into primary rays (spec §4.H).
package camera

import (
	"math"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/store"
)

// PrimaryRays returns the sampler.NX*sampler.NY primary rays for pixel
// (px, py), one per sub-sample on the uniform grid, each transformed from
// camera space into world space by the inverse world-to-camera transform.
func PrimaryRays(cam *store.Camera, sampler store.Sampler, px, py int) []mathx.Ray {
	halfWidth := math.Tan((cam.FovDegrees * math.Pi / 180) / 2)
	aspect := float64(cam.Width) / float64(cam.Height)

	rays := make([]mathx.Ray, 0, sampler.NX*sampler.NY)
	for sy := 0; sy < sampler.NY; sy++ {
		for sx := 0; sx < sampler.NX; sx++ {
			u := (float64(px) + (float64(sx)+0.5)/float64(sampler.NX)) / float64(cam.Width)
			v := (float64(py) + (float64(sy)+0.5)/float64(sampler.NY)) / float64(cam.Height)

			ndcX := (2*u - 1) * halfWidth
			ndcY := (1 - 2*v) * halfWidth / aspect

			dirCamera := mathx.NewVec3(ndcX, ndcY, 1).MustNormalize()
			originCamera := mathx.NewVec3(0, 0, 0)

			worldToCam := cam.WorldToCamera
			origin := worldToCam.Inverse.TransformPoint(originCamera)
			dir := worldToCam.Inverse.TransformVector(dirCamera).MustNormalize()

			rays = append(rays, mathx.NewRay(origin, dir))
		}
	}
	return rays
}
