package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/nfnt/resize"
)

// Thumbnail downscales the encoded source image so its longest side is
// at most maxEdge pixels, preserving aspect ratio, and re-encodes it as
// JPEG. Images already within the bound are re-encoded unchanged.
func Thumbnail(src []byte, maxEdge uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) > maxEdge || uint(bounds.Dy()) > maxEdge {
		if bounds.Dx() >= bounds.Dy() {
			img = resize.Resize(maxEdge, 0, img, resize.Lanczos3)
		} else {
			img = resize.Resize(0, maxEdge, img, resize.Lanczos3)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
