// SPDX-License-Identifier: GPL-2.0-or-later

package collision

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/bsp"
	"github.com/tmackgit/GameDev-sub001/conlog"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

// ErrStuck is returned when an object starts inside solid geometry.
// Callers should treat it as a map or spawn error, not retry next frame.
var ErrStuck = errors.New("object starts in solid")

type Cylinder = bsp.Cylinder

type Contact int

const (
	Floor Contact = 1 << iota
	Wall
	Ceiling
)

func (c Contact) String() string {
	var s []string
	if c&Floor != 0 {
		s = append(s, "floor")
	}
	if c&Wall != 0 {
		s = append(s, "wall")
	}
	if c&Ceiling != 0 {
		s = append(s, "ceiling")
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "|")
}

type MotionRequest struct {
	Position     vec.Vec3
	Displacement vec.Vec3
	Shape        Cylinder
}

type Result struct {
	// Displacement is the accepted part of the requested displacement,
	// including a floor snap.
	Displacement vec.Vec3
	Contacts     Contact
	// Normals holds the normals of the struck planes in the order they were hit.
	Normals []vec.Vec3
	// FloorHeight is valid if Contacts has Floor, CeilingHeight if it has Ceiling.
	FloorHeight   float32
	CeilingHeight float32
	Stuck         bool
}

type Config struct {
	// Epsilon is the distance kept to a struck plane.
	Epsilon float32
	// FloorNormal is the minimal normal.Y of a floor. Planes with
	// normal.Y < -FloorNormal are ceilings, everything else is a wall.
	FloorNormal float32
	// GroundProbe is how far below the bottom and above the top contacts
	// are searched after the move.
	GroundProbe float32
	// SlideIterations bounds the projections of the sliding engine.
	SlideIterations int
	// Two normals n1, n2 with |n1·n2| > 1-ParallelEpsilon are treated as one plane.
	ParallelEpsilon float32
}

func DefaultConfig() Config {
	return Config{
		Epsilon:         1.0 / 32,
		FloorNormal:     0.7,
		GroundProbe:     2,
		SlideIterations: 2,
		ParallelEpsilon: 0.001,
	}
}

type Resolver interface {
	Resolve(req MotionRequest) (Result, error)
}

// Engine stops motion at the first surface it hits.
// The tree is only read, so one Engine may serve many goroutines.
type Engine struct {
	tree *bsp.Tree
	cfg  Config
}

func NewEngine(tree *bsp.Tree, cfg Config) *Engine {
	return &Engine{tree: tree, cfg: cfg}
}

func (e *Engine) Tree() *bsp.Tree {
	return e.tree
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Resolve(req MotionRequest) (Result, error) {
	if err := e.check(req); err != nil {
		return Result{Stuck: errors.Cause(err) == ErrStuck}, err
	}
	var r Result
	end := vec.Add(req.Position, req.Displacement)
	tr := e.tree.TraceCylinder(req.Position, end, req.Shape, e.cfg.Epsilon)
	r.Displacement = vec.Sub(tr.EndPos, req.Position)
	if tr.Hit {
		r.touch(e.classify(tr.Plane.Normal), tr.Plane.Normal)
	}
	e.probe(req, &r)
	return r, nil
}

func (e *Engine) check(req MotionRequest) error {
	if err := req.Shape.Validate(); err != nil {
		return err
	}
	if e.tree.CylinderInSolid(req.Position, req.Shape) {
		conlog.DPrintf("stuck at %v\n", req.Position)
		return errors.Wrapf(ErrStuck, "position %v", req.Position)
	}
	return nil
}

func (e *Engine) classify(n vec.Vec3) Contact {
	switch {
	case n.Y > e.cfg.FloorNormal:
		return Floor
	case n.Y < -e.cfg.FloorNormal:
		return Ceiling
	}
	return Wall
}

func (r *Result) touch(c Contact, n vec.Vec3) {
	r.Contacts |= c
	r.Normals = append(r.Normals, n)
}

// probe looks for floor and ceiling around the moved position. A floor closer
// than GroundProbe is snapped to unless the request moves upwards. The sweep
// above already stopped the cylinder at anything within the step, so only the
// GroundProbe band past the end is searched, not the whole vertical extent.
func (e *Engine) probe(req MotionRequest, r *Result) {
	if e.cfg.GroundProbe <= 0 {
		return
	}
	c := req.Shape
	pos := vec.Add(req.Position, r.Displacement)
	probe := vec.Vec3{0, e.cfg.GroundProbe, 0}
	// on a slope the surface below the center is up to a radius further away
	reach := e.cfg.GroundProbe + c.Radius + 2*e.cfg.Epsilon

	down := e.tree.TraceCylinder(pos, vec.Sub(pos, probe), c, e.cfg.Epsilon)
	if down.Hit && !down.StartSolid && down.Plane.Normal.Y > e.cfg.FloorNormal {
		r.Contacts |= Floor
		if req.Displacement.Y <= 0 {
			r.Displacement = vec.Add(r.Displacement, vec.Sub(down.EndPos, pos))
			pos = down.EndPos
		}
		r.FloorHeight = pos.Y + c.Bottom
		if h, ok := e.tree.IntersectSegment(pos, vec.Vec3{pos.X, pos.Y + c.Bottom - reach, pos.Z}); ok {
			r.FloorHeight = h.Point.Y
		}
	}

	up := e.tree.TraceCylinder(pos, vec.Add(pos, probe), c, e.cfg.Epsilon)
	if up.Hit && !up.StartSolid && up.Plane.Normal.Y < -e.cfg.FloorNormal {
		r.Contacts |= Ceiling
		r.CeilingHeight = pos.Y + c.Top
		if h, ok := e.tree.IntersectSegment(pos, vec.Vec3{pos.X, pos.Y + c.Top + reach, pos.Z}); ok {
			r.CeilingHeight = h.Point.Y
		}
	}
}
