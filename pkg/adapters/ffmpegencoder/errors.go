package ffmpegencoder

import "errors"

var (
	// ErrFFmpegNotFound means no ffmpeg binary could be located.
	ErrFFmpegNotFound = errors.New("ffmpeg not found")

	// ErrNoFrames means End was called before any frame was submitted.
	ErrNoFrames = errors.New("no frames to encode")

	// ErrCodecUnsupported means the requested codec cannot be encoded into
	// the MP4 container by this build.
	ErrCodecUnsupported = errors.New("codec not supported")
)
