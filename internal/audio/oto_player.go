//go:build !headless

// oto_player.go - synthesises and plays the arcade cabinet's
// sound-trigger bits as short square-wave tones through oto.

package audio

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate  = 44100
	toneSamples = sampleRate / 10 // 100ms per triggered bit
	amplitude   = 0.2
)

type tone struct {
	freq        float64
	phase       float64
	samplesLeft int
}

// OtoPlayer renders each newly-set sound-trigger bit as a fixed-length
// square wave and mixes all active tones into the stream oto pulls from.
type OtoPlayer struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	tones  []tone
	last   [8]byte // last value written per port, indexed by port number
}

// NewPlayer opens an oto playback context and starts it running; Trigger
// calls feed it tones as sound-trigger ports are written.
func NewPlayer() (Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &OtoPlayer{ctx: ctx}
	p.player = ctx.NewPlayer(p)
	p.player.Play()
	return p, nil
}

// Read implements io.Reader for the oto player: it mixes every active
// tone into buf, a 32-bit float PCM buffer.
func (p *OtoPlayer) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(buf) / 4
	for i := 0; i < n; i++ {
		var sample float32
		kept := p.tones[:0]
		for _, t := range p.tones {
			if t.samplesLeft <= 0 {
				continue
			}
			if t.phase < 0.5 {
				sample += amplitude
			} else {
				sample -= amplitude
			}
			t.phase += t.freq / sampleRate
			if t.phase >= 1 {
				t.phase -= 1
			}
			t.samplesLeft--
			kept = append(kept, t)
		}
		p.tones = kept

		bits := math.Float32bits(sample)
		buf[i*4+0] = byte(bits)
		buf[i*4+1] = byte(bits >> 8)
		buf[i*4+2] = byte(bits >> 16)
		buf[i*4+3] = byte(bits >> 24)
	}
	return n * 4, nil
}

// Trigger queues one tone per bit that transitioned from 0 to 1 since the
// last write to this port, the same rising-edge convention the cabinet's
// discrete sound board used to fire its one-shot effects.
func (p *OtoPlayer) Trigger(port, value byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.last[port]
	p.last[port] = value
	rising := value &^ prev

	for bit := 0; bit < 8; bit++ {
		if rising&(1<<uint(bit)) != 0 {
			p.tones = append(p.tones, tone{
				freq:        220.0 * float64(bit+1) * float64(port),
				samplesLeft: toneSamples,
			})
		}
	}
}

func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil {
		return nil
	}
	return p.player.Close()
}
