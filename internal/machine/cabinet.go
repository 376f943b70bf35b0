// cabinet.go - wires the CPU core, the arcade I/O bridge and a host video
// backend into one runnable unit, and supervises the frame loop goroutine
// against caller cancellation with x/sync/errgroup.

package machine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"invaders8080/internal/arcadeio"
	"invaders8080/internal/cpu8080"
	"invaders8080/internal/logging"
	"invaders8080/internal/video"
)

// Cabinet is a fully wired Space Invaders machine: one 8080 core, its
// shift-register I/O bridge, the frame scheduler, and a host video
// backend.
type Cabinet struct {
	CPU       *cpu8080.State8080
	IO        *arcadeio.ShiftIO
	Scheduler *Scheduler
	Display   video.Output
}

// NewCabinet constructs a Cabinet from an already-loaded CPU, an I/O
// bridge and a display backend.
func NewCabinet(cpu *cpu8080.State8080, io *arcadeio.ShiftIO, display video.Output) *Cabinet {
	return &Cabinet{
		CPU:       cpu,
		IO:        io,
		Scheduler: NewScheduler(cpu, io),
		Display:   display,
	}
}

// Run starts the display backend and drives the frame loop until the
// backend reports a quit key, the context is cancelled, or the CPU
// returns a fatal error (e.g. an unimplemented opcode). It returns that
// error, or nil on an ordinary quit.
func (c *Cabinet) Run(ctx context.Context, cfg video.DisplayConfig) error {
	if err := c.Display.Start(cfg); err != nil {
		return err
	}
	defer c.Display.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.frameLoop(ctx)
	})
	return g.Wait()
}

func (c *Cabinet) frameLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		keys := c.Display.PollKeys()
		if keys.Quit {
			return nil
		}

		frame, err := c.Scheduler.RunFrame(keys)
		if err != nil {
			return err
		}
		if err := c.Display.Present(frame); err != nil {
			// Present failures are host-side: log and go on with the next frame.
			logging.Default().Errorf("present: %v", err)
		}
		c.Scheduler.Pace()
	}
}
