// scheduler.go - the 60Hz frame scheduler: half-frame/full-frame RST
// cadence, rasterisation with 90-degree rotation, input polling and
// wall-clock pacing.

package machine

import (
	"time"

	"invaders8080/internal/arcadeio"
	"invaders8080/internal/cpu8080"
	"invaders8080/internal/input"
	"invaders8080/internal/video"
)

const (
	// CyclesPerFrame is 4MHz / 60Hz.
	CyclesPerFrame     = 66_667
	cyclesPerHalfFrame = CyclesPerFrame / 2

	targetFrameDuration = time.Second / 60
)

// Scheduler drives one CPU against one arcade I/O bridge at the cabinet's
// native 60Hz cadence.
type Scheduler struct {
	cpu *cpu8080.State8080
	io  *arcadeio.ShiftIO

	executedCycles uint64
	frameIndex     uint64

	frame    video.Frame
	lastTick time.Time
}

// NewScheduler wires a CPU and its I/O bridge together; cpu must already
// be loaded.
func NewScheduler(cpu *cpu8080.State8080, io *arcadeio.ShiftIO) *Scheduler {
	return &Scheduler{cpu: cpu, io: io}
}

// RunFrame executes exactly one 60Hz frame: CPU steps up to the
// mid-screen boundary, RST 1, CPU steps to the end-of-frame boundary,
// RST 2, rasterisation, and key polling. It returns the rendered frame.
// Cycle surplus from an instruction that overruns a boundary is carried
// forward automatically because targets are computed from the nominal
// schedule (frameIndex*CyclesPerFrame), not from cycles actually spent.
func (s *Scheduler) RunFrame(keys video.KeyState) (*video.Frame, error) {
	frameStart := s.frameIndex * CyclesPerFrame
	halfTarget := frameStart + cyclesPerHalfFrame
	fullTarget := frameStart + CyclesPerFrame

	if err := s.runUntil(halfTarget); err != nil {
		return nil, err
	}
	s.cpu.RaiseInterrupt(1)

	if err := s.runUntil(fullTarget); err != nil {
		return nil, err
	}
	s.cpu.RaiseInterrupt(2)

	s.frameIndex++

	video.RasterizeRotated(s.cpu.VideoRAM(), &s.frame)

	s.io.SetPort1(input.Port1(keys))
	s.io.SetPort2(input.Port2(keys))

	return &s.frame, nil
}

func (s *Scheduler) runUntil(target uint64) error {
	for s.executedCycles < target {
		cycles, err := s.cpu.Step(s.io)
		if err != nil {
			return err
		}
		s.executedCycles += uint64(cycles)
	}
	return nil
}

// Pace sleeps so total wall-clock time since the previous call is close
// to 1/60s; an over-budget frame skips the sleep with no catch-up.
func (s *Scheduler) Pace() {
	now := time.Now()
	if s.lastTick.IsZero() {
		s.lastTick = now
		return
	}
	elapsed := now.Sub(s.lastTick)
	if elapsed < targetFrameDuration {
		time.Sleep(targetFrameDuration - elapsed)
	}
	s.lastTick = time.Now()
}
