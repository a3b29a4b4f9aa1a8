package frontend

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/shapesort/sorter"
)

var (
	skyColor     = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	beltColor    = color.RGBA{0x55, 0x55, 0x55, 0xff}
	railColor    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	stripeColor  = color.RGBA{0x77, 0x77, 0x77, 0xff}
	dishColor    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	outlineColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
	basketColor  = color.RGBA{0xff, 0xff, 0xff, 0x80}
	goldColor    = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	shadeColor   = color.RGBA{0x00, 0x00, 0x00, 0x4c}
)

const (
	dishRadius   = 35
	beltHalf     = 40
	stripeGap    = 40
	basketRadius = 45
)

var whiteSubImage *ebiten.Image

// white returns a one pixel white source for DrawTriangles, created on
// first use inside the game loop.
func white() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// fillPath fills path with clr scaled by alpha.
func fillPath(screen *ebiten.Image, path *vector.Path, clr color.RGBA, alpha float64) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff * float32(alpha)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r*a, g*a, b*a, a
	}
	screen.DrawTriangles(vs, is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawShape draws kind centred on at, scaled by scale.
func drawShape(screen *ebiten.Image, kind sorter.ShapeKind, at sorter.Vec2, scale float64, tint color.RGBA) {
	if scale <= 0 {
		return
	}
	x, y := float32(at.X), float32(at.Y)
	size := kind.Extent()
	w, h := float32(size.X*scale), float32(size.Y*scale)

	switch kind {
	case sorter.Circle:
		vector.DrawFilledCircle(screen, x, y, w/2, tint, true)
		vector.StrokeCircle(screen, x, y, w/2, 2, outlineColor, true)
	case sorter.Triangle:
		var path vector.Path
		path.MoveTo(x, y-h/2)
		path.LineTo(x+w/2, y+h/2)
		path.LineTo(x-w/2, y+h/2)
		path.Close()
		fillPath(screen, &path, tint, 1)
	case sorter.Square, sorter.Rectangle:
		vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, tint, true)
		vector.StrokeRect(screen, x-w/2, y-h/2, w, h, 2, outlineColor, true)
	}
}

// drawStar draws a five pointed star of outer radius r.
func drawStar(screen *ebiten.Image, at sorter.Vec2, r, alpha float64) {
	var path vector.Path
	for i := range 10 {
		radius := r
		if i%2 == 1 {
			radius = r * 0.45
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		px := float32(at.X + radius*math.Cos(angle))
		py := float32(at.Y + radius*math.Sin(angle))
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()
	fillPath(screen, &path, goldColor, alpha)
}

// drawConveyor draws the belt with stripes shifted by offset pixels.
func drawConveyor(screen *ebiten.Image, field sorter.Size, laneY, offset float64) {
	w := float32(field.Width)
	top := float32(laneY - beltHalf)
	vector.DrawFilledRect(screen, 0, top, w, 2*beltHalf, beltColor, false)

	shift := math.Mod(offset, stripeGap)
	for x := -shift; x < field.Width; x += stripeGap {
		vector.StrokeLine(screen, float32(x), top, float32(x)+beltHalf/2, top+2*beltHalf, 3, stripeColor, true)
	}

	vector.DrawFilledRect(screen, 0, top-4, w, 4, railColor, false)
	vector.DrawFilledRect(screen, 0, top+2*beltHalf, w, 4, railColor, false)
}

func drawCarrier(screen *ebiten.Image, at sorter.Vec2) {
	x, y := float32(at.X), float32(at.Y)
	vector.DrawFilledCircle(screen, x, y, dishRadius, dishColor, true)
	vector.StrokeCircle(screen, x, y, dishRadius, 2, outlineColor, true)
}

// drawBasket draws the basket ring with a faint preview of the kind it takes.
func drawBasket(screen *ebiten.Image, b sorter.Basket, captureRadius float64) {
	x, y := float32(b.Position.X), float32(b.Position.Y)
	vector.DrawFilledCircle(screen, x, y, basketRadius, basketColor, true)
	vector.StrokeCircle(screen, x, y, basketRadius, 4, outlineColor, true)
	vector.StrokeCircle(screen, x, y, float32(captureRadius), 1, shadeColor, true)
	drawShape(screen, b.Kind, b.Position, 0.6, color.RGBA{0xff, 0xff, 0xff, 0x80})

	label := b.Kind.String()
	ebitenutil.DebugPrintAt(screen, label, int(x)-len(label)*3, int(y)+basketRadius+4)
}

func shade(screen *ebiten.Image, field sorter.Size) {
	vector.DrawFilledRect(screen, 0, 0, float32(field.Width), float32(field.Height), shadeColor, false)
}
