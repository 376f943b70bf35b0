//go:build !headless

// backend_ebiten.go - ebiten-backed video output: an ebiten.Game
// implementation whose Update samples held keys and whose Draw blits the
// host-side framebuffer into an *ebiten.Image, run on its own goroutine
// via ebiten.RunGame, with a channel used to block Start until the first
// Update call so the caller knows the window is actually up.

package video

import (
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

type EbitenOutput struct {
	mu         sync.RWMutex
	frame      Frame
	started    bool
	firstDraw  sync.Once
	readyChan  chan struct{}
	scale      int
	title      string
	fullscreen bool
	keys       KeyState
}

func NewOutput() (Output, error) {
	return &EbitenOutput{
		scale:     2,
		title:     "Space Invaders",
		readyChan: make(chan struct{}),
	}, nil
}

func (e *EbitenOutput) Start(cfg DisplayConfig) error {
	e.mu.Lock()
	if cfg.Scale > 0 {
		e.scale = cfg.Scale
	}
	if cfg.Title != "" {
		e.title = cfg.Title
	}
	e.fullscreen = cfg.Fullscreen
	e.started = true
	e.mu.Unlock()

	ebiten.SetWindowSize(Width*e.scale, Height*e.scale)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetVsyncEnabled(true)
	if e.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		if err := ebiten.RunGame(e); err != nil {
			fmt.Printf("ebiten run error: %v\n", err)
		}
	}()

	<-e.readyChan
	return nil
}

func (e *EbitenOutput) Present(frame *Frame) error {
	e.mu.Lock()
	e.frame = *frame
	e.mu.Unlock()
	return nil
}

func (e *EbitenOutput) PollKeys() KeyState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.keys
}

func (e *EbitenOutput) Stop() error {
	e.mu.Lock()
	e.started = false
	e.mu.Unlock()
	return nil
}

func (e *EbitenOutput) Close() error { return e.Stop() }

// Update implements ebiten.Game: it samples the keys the cabinet cares
// about and terminates the loop on window close.
func (e *EbitenOutput) Update() error {
	e.firstDraw.Do(func() { close(e.readyChan) })

	if ebiten.IsWindowBeingClosed() {
		e.mu.Lock()
		e.keys.Quit = true
		e.mu.Unlock()
		return ebiten.Termination
	}

	e.mu.Lock()
	e.keys = KeyState{
		Coin:    ebiten.IsKeyPressed(ebiten.KeyC),
		P1Start: ebiten.IsKeyPressed(ebiten.Key1),
		P2Start: ebiten.IsKeyPressed(ebiten.Key2),
		P1Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		P1Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		P1Fire:  ebiten.IsKeyPressed(ebiten.KeySpace),
		P2Left:  ebiten.IsKeyPressed(ebiten.KeyA),
		P2Right: ebiten.IsKeyPressed(ebiten.KeyD),
		P2Fire:  ebiten.IsKeyPressed(ebiten.KeyW),
	}
	e.mu.Unlock()

	if !e.started {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game: it blits the presented frame, upscaled
// with nearest-neighbour via x/image/draw to honour the integer --scale
// flag without introducing filtering artifacts on a 1bpp source.
func (e *EbitenOutput) Draw(screen *ebiten.Image) {
	e.mu.RLock()
	frame := e.frame
	e.mu.RUnlock()

	src := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			px := frame[y*Width+x]
			off := src.PixOffset(x, y)
			src.Pix[off+0] = byte(px >> 16)
			src.Pix[off+1] = byte(px >> 8)
			src.Pix[off+2] = byte(px)
			src.Pix[off+3] = 0xFF
		}
	}

	bounds := screen.Bounds()
	scaled := image.NewRGBA(bounds)
	draw.NearestNeighbor.Scale(scaled, bounds, src, src.Bounds(), draw.Src, nil)
	screen.WritePixels(scaled.Pix)
}

func (e *EbitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
