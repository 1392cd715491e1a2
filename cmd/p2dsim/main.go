// Command p2dsim steps a physics2d world headless and reports contact events.
//
//	p2dsim -scene testdata/falling_ball.yaml -steps 900 -png out.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/physics2d"
	"github.com/gekko3d/physics2d/debugdraw"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "p2dsim:", err)
		os.Exit(1)
	}
}

// eventLogger reports contact events with the scene names of both bodies.
type eventLogger struct {
	world  *physics2d.World
	logger physics2d.Logger
	step   *int
}

func (e *eventLogger) name(h physics2d.BodyHandle) string {
	b, err := e.world.Body(h)
	if err != nil {
		return h.String()
	}
	if s, ok := b.UserData.(string); ok && s != "" {
		return s
	}
	return h.String()
}

func (e *eventLogger) BeginContact(c physics2d.Contact) {
	e.logger.Infof("step %d: begin %s <-> %s", *e.step, e.name(c.BodyA()), e.name(c.BodyB()))
}

func (e *eventLogger) EndContact(c physics2d.Contact) {
	e.logger.Infof("step %d: end %s <-> %s", *e.step, e.name(c.BodyA()), e.name(c.BodyB()))
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("p2dsim", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "World config YAML (built-in defaults when empty)")
	scenePath := fs.String("scene", "", "Scene YAML with the bodies to simulate")
	steps := fs.Int("steps", 600, "Number of steps to run")
	dt := fs.Float64("dt", 1.0/60.0, "Fixed time step in seconds")
	pngPath := fs.String("png", "", "Write a debug snapshot of the final state to this PNG file")
	debug := fs.Bool("debug", false, "Enable per-step debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenePath == "" {
		return errors.New("missing -scene")
	}
	if *steps < 0 {
		return fmt.Errorf("invalid -steps %d", *steps)
	}

	cfg := physics2d.DefaultConfig()
	if *configPath != "" {
		loaded, err := physics2d.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	scene, err := LoadScene(*scenePath)
	if err != nil {
		return err
	}

	logger := physics2d.NewWriterLogger("p2dsim", *debug || cfg.Debug, out, out)
	counter := physics2d.NewContactCounter()
	step := 0
	events := &eventLogger{logger: logger, step: &step}
	world, err := physics2d.NewWorld(cfg,
		physics2d.WithLogger(logger),
		physics2d.WithContactListener(counter),
		physics2d.WithContactListener(events),
	)
	if err != nil {
		return err
	}
	events.world = world

	handles, err := scene.Populate(world)
	if err != nil {
		return err
	}
	logger.Infof("loaded %d bodies from %s", len(handles), *scenePath)

	for step = 1; step <= *steps; step++ {
		for _, ex := range scene.Explosions {
			if ex.Step == step {
				n := world.ApplyExplosion(ex.Center, ex.Radius, ex.Power)
				logger.Infof("step %d: explosion at %v pushed %d bodies", step, ex.Center, n)
			}
		}
		if err := world.Step(float32(*dt)); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
	}

	fmt.Fprintf(out, "contacts begun=%d ended=%d active=%d\n", counter.Begins(), counter.Ends(), world.ContactManager().Count())
	world.EachBody(func(h physics2d.BodyHandle, b *physics2d.Body) bool {
		fmt.Fprintf(out, "%-12s %-9s pos=(%.2f, %.2f) vel=(%.2f, %.2f) angle=%.2f\n",
			b.UserData, b.Type, b.Position.X(), b.Position.Y(),
			b.LinearVelocity.X(), b.LinearVelocity.Y(), b.Angle)
		return true
	})

	if *pngPath != "" {
		opts := debugdraw.DefaultOptions()
		opts.Counter = counter
		if err := writeSnapshot(*pngPath, world, opts); err != nil {
			return err
		}
		logger.Infof("wrote %s", *pngPath)
	}
	return nil
}

func writeSnapshot(path string, w *physics2d.World, opts debugdraw.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := debugdraw.WritePNG(f, debugdraw.Render(w, opts)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
