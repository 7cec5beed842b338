package ports

import (
	"image"
)

// VideoCodec identifies a compressed video format.
type VideoCodec string

const (
	CodecAVC  VideoCodec = "avc"
	CodecHEVC VideoCodec = "hevc"
	CodecVP9  VideoCodec = "vp9"
	CodecAV1  VideoCodec = "av1"
	CodecVP8  VideoCodec = "vp8"
)

// CodecPriority is the probe order used when selecting an encoder: the first
// codec the runtime can actually encode wins.
var CodecPriority = []VideoCodec{CodecAVC, CodecHEVC, CodecVP9, CodecAV1, CodecVP8}

// VideoEncoder abstracts the external encode-and-mux primitive. Frames must
// be submitted with strictly increasing timestamps; the pipeline never calls
// EncodeFrame concurrently.
type VideoEncoder interface {
	// Begin initializes the encoder for the given dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame submits a single frame at the given timestamp.
	EncodeFrame(img image.Image, timestampMs int) error

	// End finalizes the container and returns the video file bytes.
	End() ([]byte, error)

	// Abort discards all state without producing output. Safe to call after
	// a failed Begin or EncodeFrame; no partial file survives.
	Abort()
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Bitrate int // target bitrate in kbps
	Quality int // CRF value, 0-63 (lower is higher quality)
}
