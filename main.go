package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tmackgit/GameDev-sub001/bsp"
	"github.com/tmackgit/GameDev-sub001/collision"
	"github.com/tmackgit/GameDev-sub001/commandline"
	"github.com/tmackgit/GameDev-sub001/conlog"
	"github.com/tmackgit/GameDev-sub001/cvar"
	"github.com/tmackgit/GameDev-sub001/cvars"
	"github.com/tmackgit/GameDev-sub001/level"
	"github.com/tmackgit/GameDev-sub001/math/vec"
	"github.com/tmackgit/GameDev-sub001/move"
	"github.com/tmackgit/GameDev-sub001/render"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func execConfig(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "exec")
	}
	defer f.Close()
	return errors.Wrapf(cvar.Exec(f), "exec %s", name)
}

func buildOptions() bsp.BuildOptions {
	return bsp.BuildOptions{
		SplitPenalty:  int(cvars.BSPSplitPenalty.Value()),
		MaxCandidates: int(cvars.BSPMaxCandidates.Value()),
	}
}

func collisionConfig() collision.Config {
	c := collision.DefaultConfig()
	c.Epsilon = cvars.CollisionEpsilon.Value()
	c.FloorNormal = cvars.CollisionFloorNormal.Value()
	c.GroundProbe = cvars.CollisionGroundProbe.Value()
	c.SlideIterations = int(cvars.CollisionSlideIterations.Value())
	return c
}

func moveParams() move.Params {
	return move.Params{
		Gravity:     cvars.ServerGravity.Value(),
		MaxVelocity: cvars.ServerMaxVelocity.Value(),
		StepSize:    cvars.ServerStepSize.Value(),
		NoStep:      cvars.ServerNoStep.Bool(),
	}
}

func run() error {
	conlog.SetDeveloper(cvars.Developer.Bool)
	if commandline.Developer() {
		cvars.Developer.SetByString("1")
	}
	if name := commandline.Exec(); name != "" {
		if err := execConfig(name); err != nil {
			return err
		}
	}

	polys, err := level.ByName(commandline.Level())
	if err != nil {
		return err
	}
	start := time.Now()
	tree := bsp.Build(polys, buildOptions())
	st := tree.Stats()
	slog.Info("bsp built",
		"level", commandline.Level(),
		"polygons", len(polys),
		"nodes", st.Nodes,
		"leafs", st.Leafs,
		"surfaces", st.Surfaces,
		"splits", st.Splits,
		"depth", st.Depth,
		"bevels", st.Bevels,
		"checksum", fmt.Sprintf("%04x", tree.Checksum()),
		"took", time.Since(start))
	for _, r := range tree.Rejected() {
		slog.Warn("polygon rejected", "index", r.Index, "err", r.Err)
	}

	engine := collision.NewSlidingEngine(tree, collisionConfig())
	s := newSim(move.NewMover(engine, moveParams()), tree)
	s.run(commandline.Frames())
	slog.Info("simulation done",
		"frames", s.clock.FrameCount(),
		"time", s.clock.Time(),
		"bodies", len(s.bodies),
		"floor", s.contacts[collision.Floor],
		"wall", s.contacts[collision.Wall],
		"ceiling", s.contacts[collision.Ceiling],
		"stuck", s.stuck)

	p := s.player()
	cam := render.NewCamera(p.Origin, vec.Add(p.Origin, vec.Vec3{100, 0, 1}), 90, 640, 480)
	drawn, clipped := render.Count(render.DrawList(tree, cam))
	slog.Info("draw list", "eye", p.Origin, "polygons", drawn, "clipped", clipped)

	if commandline.Stats() {
		return dumpStats(tree, s, drawn, clipped)
	}
	return nil
}

func dumpStats(tree *bsp.Tree, s *sim, drawn, clipped int) error {
	st := tree.Stats()
	p := s.player()
	v, err := structpb.NewStruct(map[string]any{
		"bsp": map[string]any{
			"nodes":      st.Nodes,
			"leafs":      st.Leafs,
			"solidLeafs": st.SolidLeafs,
			"surfaces":   st.Surfaces,
			"splits":     st.Splits,
			"dropped":    st.Dropped,
			"rejected":   st.Rejected,
			"depth":      st.Depth,
			"bevels":     st.Bevels,
			"checksum":   fmt.Sprintf("%04x", tree.Checksum()),
		},
		"simulation": map[string]any{
			"frames":   s.clock.FrameCount(),
			"time":     s.clock.Time(),
			"bodies":   len(s.bodies),
			"stuck":    s.stuck,
			"floor":    s.contacts[collision.Floor],
			"wall":     s.contacts[collision.Wall],
			"ceiling":  s.contacts[collision.Ceiling],
			"player":   []any{p.Origin.X, p.Origin.Y, p.Origin.Z},
			"onGround": p.OnGround,
		},
		"render": map[string]any{
			"polygons": drawn,
			"clipped":  clipped,
		},
	})
	if err != nil {
		return errors.Wrap(err, "stats")
	}
	b, err := protojson.MarshalOptions{Multiline: true}.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "stats")
	}
	_, err = os.Stdout.Write(append(b, '\n'))
	return err
}
