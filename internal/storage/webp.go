package storage

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	webpQuality   = 80
)

// NormalizeImage re-encodes an upload as webp, downscaling oversized
// pictures first. Bytes that do not decode as an image pass through
// untouched; normalization is opportunistic, never a gate.
func NormalizeImage(filename string, data []byte) (string, []byte) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return filename, data
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageWidth {
		height := bounds.Dy() * maxImageWidth / bounds.Dx()
		scaled := image.NewRGBA(image.Rect(0, 0, maxImageWidth, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return filename, data
	}

	name := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
	return name, buf.Bytes()
}
