// Package codecselect picks the first encodable codec from the documented
// probe order and returns a ready encoder for it.
package codecselect

import (
	"fmt"

	"github.com/user/patterncard/pkg/adapters/ffmpegencoder"
	"github.com/user/patterncard/pkg/pipeline"
	"github.com/user/patterncard/pkg/ports"
)

// Info describes the outcome of codec selection.
type Info struct {
	// Codec is the codec actually selected.
	Codec ports.VideoCodec
	// RequestedCodec is what the caller asked for ("" means automatic).
	RequestedCodec ports.VideoCodec
	// FallbackUsed indicates the requested codec was unavailable and a
	// lower-priority one was chosen instead.
	FallbackUsed bool
}

// Options configures selection behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Logger is used to log fallback warnings. May be nil.
	Logger ports.Logger
}

// New probes for codecs in priority order (avc, hevc, vp9, av1, vp8) and
// returns an encoder for the first one this runtime can encode. When
// preferred is non-empty it is tried first. If nothing is encodable the
// error wraps pipeline.ErrUnsupportedPlatform.
func New(preferred ports.VideoCodec, opts Options) (ports.VideoEncoder, Info, error) {
	if opts.FFmpegPath != "" {
		ffmpegencoder.SetFFmpegPath(opts.FFmpegPath)
	}

	info := Info{RequestedCodec: preferred}

	if preferred != "" && ffmpegencoder.Supports(preferred) {
		info.Codec = preferred
		return ffmpegencoder.New(preferred), info, nil
	}

	for _, codec := range ports.CodecPriority {
		if codec == preferred {
			continue // already probed
		}
		if ffmpegencoder.Supports(codec) {
			if preferred != "" {
				info.FallbackUsed = true
				if opts.Logger != nil {
					opts.Logger.Warn("Codec %s not available, falling back to %s", preferred, codec)
				}
			}
			info.Codec = codec
			return ffmpegencoder.New(codec), info, nil
		}
	}

	return nil, Info{}, fmt.Errorf("%w: probed %v", pipeline.ErrUnsupportedPlatform, ports.CodecPriority)
}
