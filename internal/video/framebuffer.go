// framebuffer.go - the 224x256 1bpp-sourced, 90-degree-rotated framebuffer.

package video

const (
	Width  = 224
	Height = 256

	// VRAMBytes is the size of the 1bpp video RAM window the rasteriser
	// reads, starting at cpu8080 address 0x2400.
	VRAMBytes = 0x1C00

	colorOff uint32 = 0x00000000
	colorOn  uint32 = 0x00FFFFFF
)

// Frame is a 224x256 buffer of 0x00RRGGBB pixels, indexed [y*Width+x].
type Frame [Width * Height]uint32

// RasterizeRotated maps a linear 1bpp video-RAM window onto Frame with the
// cabinet's physical 90-degree counter-clockwise rotation: bit index
// i*8+j maps to display coordinates x=(8*i+j)/256, y=255-((8*i+j)%256).
func RasterizeRotated(vram []byte, dst *Frame) {
	for i := 0; i < len(vram) && i < VRAMBytes; i++ {
		b := vram[i]
		for j := 0; j < 8; j++ {
			bitIndex := 8*i + j
			x := bitIndex / Height
			y := Height - 1 - bitIndex%Height
			color := colorOff
			if b&(1<<uint(j)) != 0 {
				color = colorOn
			}
			dst[y*Width+x] = color
		}
	}
}
