//go:build headless

package video

// HeadlessOutput is a no-op sink used by tests and CI.
type HeadlessOutput struct {
	frameCount uint64
	lastKeys   KeyState
}

func NewOutput() (Output, error) {
	return &HeadlessOutput{}, nil
}

func (h *HeadlessOutput) Start(cfg DisplayConfig) error { return nil }

func (h *HeadlessOutput) Present(frame *Frame) error {
	h.frameCount++
	return nil
}

func (h *HeadlessOutput) PollKeys() KeyState { return h.lastKeys }

func (h *HeadlessOutput) Stop() error { return nil }

func (h *HeadlessOutput) Close() error { return nil }

// FrameCount reports how many frames have been presented, for test
// assertions that the scheduler is actually driving the output.
func (h *HeadlessOutput) FrameCount() uint64 { return h.frameCount }
