package ports

import (
	"image"
)

// VideoDecoder reads rendered frames back out of produced MP4 data. The
// output rate is fixed, so a frame's timestamp follows from its index.
type VideoDecoder interface {
	// ReadFrames decodes every frame of the video in display order.
	ReadFrames(data []byte) ([]image.Image, error)
}
