package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"
)

// ErrNoCropArea reports a region with no area to extract.
var ErrNoCropArea = errors.New("crop region has no area")

// DecodeError wraps a source image that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Region describes the extraction window over the source image.
// X and Y are the top-left offset in source pixels, Width and Height
// the output dimensions, Rotation the clockwise rotation in degrees
// applied around the window's center.
type Region struct {
	X        float64
	Y        float64
	Width    int
	Height   int
	Rotation float64
}

const jpegQuality = 92

// Crop extracts the region from the encoded source image and returns
// the result as a JPEG data URI. The region is validated before the
// source is decoded, so a zero-area region never pays the decode cost.
func Crop(src []byte, region Region) (string, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return "", ErrNoCropArea
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return "", &DecodeError{Err: err}
	}

	out := image.NewRGBA(image.Rect(0, 0, region.Width, region.Height))

	if region.Rotation == 0 {
		origin := image.Pt(int(math.Round(region.X)), int(math.Round(region.Y)))
		draw.Draw(out, out.Bounds(), img, img.Bounds().Min.Add(origin), draw.Src)
	} else {
		rotateInto(out, img, region)
	}

	var buf bytes.Buffer
	buf.WriteString("data:image/jpeg;base64,")

	encoder := base64.NewEncoder(base64.StdEncoding, &buf)
	if err := jpeg.Encode(encoder, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.String(), nil
}

// rotateInto samples the source through the inverse of the region's
// rotation. Each output pixel is mapped back to a source coordinate by
// rotating around the window center; pixels that land outside the
// source stay black, matching a canvas drawn past its image bounds.
func rotateInto(out *image.RGBA, src image.Image, region Region) {
	theta := region.Rotation * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	halfW := float64(region.Width) / 2
	halfH := float64(region.Height) / 2
	bounds := src.Bounds()

	for dy := 0; dy < region.Height; dy++ {
		for dx := 0; dx < region.Width; dx++ {
			vx := float64(dx) + 0.5 - halfW
			vy := float64(dy) + 0.5 - halfH

			sx := vx*cos + vy*sin + halfW + region.X
			sy := -vx*sin + vy*cos + halfH + region.Y

			px := bounds.Min.X + int(math.Floor(sx))
			py := bounds.Min.Y + int(math.Floor(sy))

			if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
				out.Set(dx, dy, color.Black)
				continue
			}
			out.Set(dx, dy, src.At(px, py))
		}
	}
}
