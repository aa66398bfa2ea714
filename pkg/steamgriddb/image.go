package steamgriddb

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg" // registered for image.Decode
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registers webp with image.Decode
)

// SquareIcon decodes an image, center-crops it to a square and scales it to
// size x size pixels, returning PNG bytes. Steam expects shortcut icons at a
// fixed small size; anything else renders blurry in the library list.
func SquareIcon(data []byte, size int) ([]byte, error) {
	img, err := decodeFirstFrame(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon: %w", err)
	}

	square := centerCrop(img)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), square, square.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeFirstFrame decodes an image, extracting only the first frame for
// animated GIFs.
func decodeFirstFrame(data []byte) (image.Image, error) {
	if bytes.HasPrefix(data, []byte("GIF8")) {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if len(g.Image) == 0 {
			return nil, fmt.Errorf("empty GIF")
		}
		return g.Image[0], nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// centerCrop returns the largest centered square region of the image.
func centerCrop(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == h {
		return img
	}

	side := w
	if h < side {
		side = h
	}
	x0 := bounds.Min.X + (w-side)/2
	y0 := bounds.Min.Y + (h-side)/2
	rect := image.Rect(x0, y0, x0+side, y0+side)

	cropped := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(cropped, cropped.Bounds(), img, rect.Min, draw.Src)
	return cropped
}
