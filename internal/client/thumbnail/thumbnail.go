//go:generate go run go.uber.org/mock/mockgen -source=thumbnail.go -destination=../../mocks/mock_scaler.go -package=mocks

// Package thumbnail produces preview images for uploads.
//
// The Scaler contract is callback based: Scale returns immediately and
// reports the data URL of the thumbnail, or an error, to done exactly once.
package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"

	"github.com/dmitrijs2005/imagedrop/internal/client/models"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image")
	ErrInvalidSize      = errors.New("thumbnail size must be positive")
)

// Scaler turns an image data URL into a thumbnail data URL no larger than
// width x height.
type Scaler interface {
	Scale(ctx context.Context, image string, width, height int, done func(thumbnail string, err error))
}

// ImageScaler decodes PNG, JPEG, GIF, BMP and WebP data URLs and renders PNG
// thumbnails. Each call runs in its own goroutine.
type ImageScaler struct {
	wg sync.WaitGroup
}

func NewImageScaler() *ImageScaler {
	return &ImageScaler{}
}

func (s *ImageScaler) Scale(ctx context.Context, img string, width, height int, done func(string, error)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := ctx.Err(); err != nil {
			done("", err)
			return
		}
		done(Thumbnail(img, width, height))
	}()
}

// Wait blocks until every Scale call so far has reported.
func (s *ImageScaler) Wait() {
	s.wg.Wait()
}

// Thumbnail is the synchronous core of ImageScaler.Scale.
func Thumbnail(dataURL string, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", ErrInvalidSize
	}

	_, raw, ok := models.DecodeDataURL(dataURL)
	if !ok {
		return "", fmt.Errorf("%w: not a base64 data URL", ErrUnsupportedImage)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	w, h := Fit(src.Bounds().Dx(), src.Bounds().Dy(), width, height)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return models.EncodeDataURL("image/png", buf.Bytes()), nil
}

// Fit returns the size of a srcW x srcH image scaled down, keeping its aspect
// ratio, to fit in maxW x maxH. Images that already fit are left as they are.
// Neither side is ever smaller than one pixel.
func Fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= maxW && srcH <= maxH {
		return max(srcW, 1), max(srcH, 1)
	}
	scale := min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	w := int(float64(srcW)*scale + 0.5)
	h := int(float64(srcH)*scale + 0.5)
	return max(w, 1), max(h, 1)
}
