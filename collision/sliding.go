// SPDX-License-Identifier: GPL-2.0-or-later

package collision

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/bsp"
	"github.com/tmackgit/GameDev-sub001/conlog"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

const stopEpsilon = 0.1

// ClipVelocity removes the part of in which goes into the plane with normal n.
// An overbounce above 1 pushes a bit away from the plane.
func ClipVelocity(in, n vec.Vec3, overbounce float32) vec.Vec3 {
	backoff := vec.Dot(in, n) * overbounce
	out := vec.Sub(in, n.Scale(backoff))
	clip := func(f float32) float32 {
		if f > -stopEpsilon && f < stopEpsilon {
			return 0
		}
		return f
	}
	return vec.Vec3{clip(out.X), clip(out.Y), clip(out.Z)}
}

// project returns v without its component along n.
func project(v, n vec.Vec3) vec.Vec3 {
	return vec.Sub(v, n.Scale(vec.Dot(v, n)))
}

// SlidingEngine continues blocked motion along the struck surfaces.
type SlidingEngine struct {
	Engine
}

func NewSlidingEngine(tree *bsp.Tree, cfg Config) *SlidingEngine {
	return &SlidingEngine{Engine{tree: tree, cfg: cfg}}
}

func (e *SlidingEngine) Resolve(req MotionRequest) (Result, error) {
	if err := e.check(req); err != nil {
		return Result{Stuck: errors.Cause(err) == ErrStuck}, err
	}
	var r Result
	pos := req.Position
	remaining := req.Displacement

	for i := 0; i <= e.cfg.SlideIterations; i++ {
		if remaining == (vec.Vec3{}) {
			break
		}
		tr := e.tree.TraceCylinder(pos, vec.Add(pos, remaining), req.Shape, e.cfg.Epsilon)
		if tr.StartSolid {
			conlog.DPrintf("slide started in solid at %v\n", pos)
			break
		}
		left := vec.Sub(remaining, vec.Sub(tr.EndPos, pos))
		pos = tr.EndPos
		if !tr.Hit {
			break
		}
		n := tr.Plane.Normal
		r.touch(e.classify(n), n)
		if i == e.cfg.SlideIterations {
			// out of projections, the rest is dropped
			break
		}
		remaining = e.slide(left, r.Normals)
		if vec.Dot(remaining, req.Displacement) <= 0 {
			// turned back, stop dead to avoid oscillating in corners
			break
		}
	}

	r.Displacement = vec.Sub(pos, req.Position)
	e.probe(req, &r)
	return r, nil
}

// slide projects left onto the last struck plane, or onto the crease with the
// one before if they are not parallel.
func (e *SlidingEngine) slide(left vec.Vec3, normals []vec.Vec3) vec.Vec3 {
	n := normals[len(normals)-1]
	if len(normals) < 2 {
		return project(left, n)
	}
	prev := normals[len(normals)-2]
	if math32.Abs(vec.Dot(prev, n)) > 1-e.cfg.ParallelEpsilon {
		return project(left, n)
	}
	dir := vec.Cross(prev, n).Normalize()
	return dir.Scale(vec.Dot(dir, left))
}
