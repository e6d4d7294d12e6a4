package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Compose draws photo at full size and then every placement, in order, on a
// surface the size of the photo. images is keyed by Placement.Image.
func Compose(photo image.Image, placements []Placement, images map[string]image.Image) (*image.RGBA, error) {
	pb := photo.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, pb.Dx(), pb.Dy()))
	draw.Draw(dst, dst.Bounds(), photo, pb.Min, draw.Src)

	for _, p := range placements {
		src, ok := images[p.Image]
		if !ok {
			return nil, fmt.Errorf("item %s: image %q not loaded", p.ItemID, p.Image)
		}
		if src.Bounds().Empty() {
			return nil, fmt.Errorf("item %s: image %q is empty", p.ItemID, p.Image)
		}
		xdraw.CatmullRom.Transform(dst, itemTransform(p, src.Bounds()), src, src.Bounds(), xdraw.Over, nil)
	}
	return dst, nil
}

// itemTransform maps source pixels onto the destination: centre the source
// on the origin, scale it to the placement size, rotate it clockwise, then
// move it to the placement centre.
func itemTransform(p Placement, sr image.Rectangle) f64.Aff3 {
	sw, sh := float64(sr.Dx()), float64(sr.Dy())
	sx, sy := p.Width/sw, p.Height/sh
	ox := float64(sr.Min.X) + sw/2
	oy := float64(sr.Min.Y) + sh/2

	theta := float64(p.Rotation) * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	a, b := cos*sx, -sin*sy
	d, e := sin*sx, cos*sy
	return f64.Aff3{
		a, b, p.CenterX - (a*ox + b*oy),
		d, e, p.CenterY - (d*ox + e*oy),
	}
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns "<prefix>-<unix-ms>.png".
func Filename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%d.png", prefix, t.UnixMilli())
}
