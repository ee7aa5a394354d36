package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Noxitanius/govoxel/game"
	"github.com/Noxitanius/govoxel/world"
)

// Debug map palette.
var (
	debugBackground = color.RGBA{18, 18, 20, 255}
	debugEmpty      = color.RGBA{25, 25, 30, 255}
	debugDirt       = color.RGBA{110, 80, 45, 255}
	debugStone      = color.RGBA{130, 130, 135, 255}
	debugTarget     = color.RGBA{255, 230, 120, 255}
	debugPlayer     = color.RGBA{80, 200, 255, 255}
	debugViewLine   = color.RGBA{255, 80, 80, 255}
	debugHUDText    = color.RGBA{220, 220, 220, 255}
)

// debugCell is the edge length of one world column on the map, in pixels.
const debugCell = 12

// DebugView renders a top-down diagnostic map of the game: one cell per
// world column colored by its highest solid block, the targeted block
// outlined, the player as a marker with a view direction line, and a small
// text HUD.
type DebugView struct {
	// HUD disables the text overlay when false.
	HUD bool
}

// NewDebugView returns a debug view with the HUD enabled.
func NewDebugView() *DebugView {
	return &DebugView{HUD: true}
}

// Draw renders the map into the target, replacing its contents.
func (v *DebugView) Draw(target *PixmapTarget, g *game.Game) {
	target.Clear(debugBackground)

	width := target.Width()
	height := target.Height()
	size := g.WorldSize()
	grid := size * debugCell

	offX := max(width-grid, 0) / 2
	offY := max(height-grid, 0) / 2

	img := target.Image()

	// World columns, highest solid block wins.
	for z := range size {
		for x := range size {
			c := debugEmpty
			if b, ok := g.HighestSolid(x, z); ok {
				switch b {
				case world.Dirt:
					c = debugDirt
				case world.Stone:
					c = debugStone
				}
			}
			fillRect(img, offX+x*debugCell, offY+z*debugCell, debugCell, debugCell, c)
		}
	}

	// Targeted block.
	if tx, _, tz, ok := g.TargetBlock(); ok {
		rectOutline(img, offX+tx*debugCell, offY+tz*debugCell, debugCell, debugCell, debugTarget)
	}

	// Player marker.
	px, pz := g.PlayerXZ()
	pxi := offX + int(px*debugCell)
	pzi := offY + int(pz*debugCell)
	fillRect(img, pxi-2, pzi-2, 5, 5, debugPlayer)

	// View direction, sampled along the ray so the line bends with the
	// integer truncation the same way the cells do.
	dx, dz := g.PlayerDirXZ()
	if l := dx*dx + dz*dz; l > 1e-8 {
		inv := 1 / sqrtf(l)
		dx *= inv
		dz *= inv
	} else {
		dx, dz = 0, 1
	}
	lastX, lastY := pxi, pzi
	for i := 1; i <= 30; i++ {
		t := float32(i) * 0.35
		lx := offX + int((px+dx*t)*debugCell)
		ly := offY + int((pz+dz*t)*debugCell)
		drawLine(img, lastX, lastY, lx, ly, debugViewLine)
		lastX, lastY = lx, ly
	}

	if v.HUD {
		v.drawHUD(img, g)
	}
}

func (v *DebugView) drawHUD(img *image.RGBA, g *game.Game) {
	p := g.Player()
	lines := []string{
		fmt.Sprintf("pos %.2f %.2f %.2f", p.Pos.X, p.Pos.Y, p.Pos.Z),
		fmt.Sprintf("vy %.2f ground %v", p.VelY, p.OnGround),
	}
	if tx, ty, tz, ok := g.TargetBlock(); ok {
		lines = append(lines, fmt.Sprintf("target %d %d %d", tx, ty, tz))
	} else {
		lines = append(lines, "target -")
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(debugHUDText),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		d.Dot = fixed.P(4, 14+i*14)
		d.DrawString(line)
	}
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for yy := range h {
		for xx := range w {
			putPixel(img, x+xx, y+yy, c)
		}
	}
}

func rectOutline(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for xx := range w {
		putPixel(img, x+xx, y, c)
		putPixel(img, x+xx, y+h-1, c)
	}
	for yy := range h {
		putPixel(img, x, y+yy, c)
		putPixel(img, x+w-1, y+yy, c)
	}
}

// drawLine draws a Bresenham line clipped to the image bounds.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		putPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func putPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	img.SetRGBA(x, y, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
