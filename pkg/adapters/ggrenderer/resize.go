package ggrenderer

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales an image to the given dimensions with Catmull-Rom
// resampling. Used for debug-sink thumbnails.
func Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
