package ffmpegencoder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/patterncard/pkg/ports"
)

const sampleEncoderOutput = `Encoders:
 V..... = Video
 A..... = Audio
 S..... = Subtitle
 .F.... = Frame-level multithreading
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
 V....D libx265              libx265 H.265 / HEVC (codec hevc)
 V....D libvpx-vp9           libvpx VP9 (codec vp9)
 V....D libaom-av1           libaom AV1 (codec av1)
 A....D aac                  AAC (Advanced Audio Coding)
 S..... webvtt               WebVTT subtitle
`

func TestParseEncoderList(t *testing.T) {
	names := parseEncoderList([]byte(sampleEncoderOutput))

	for _, want := range []string{"libx264", "libx265", "libvpx-vp9", "libaom-av1"} {
		if !names[want] {
			t.Errorf("expected encoder %q to be detected", want)
		}
	}
	// Audio and subtitle encoders are not video encoders
	if names["aac"] {
		t.Error("expected audio encoder to be skipped")
	}
	if names["webvtt"] {
		t.Error("expected subtitle encoder to be skipped")
	}
	// Legend lines before the separator must not leak in
	if names["="] || names["Video"] {
		t.Error("expected legend lines to be skipped")
	}
}

func TestParseEncoderListNoSeparator(t *testing.T) {
	out := "V....D libx264  libx264 H.264\n"
	if names := parseEncoderList([]byte(out)); len(names) != 0 {
		t.Errorf("expected nothing without a separator, got %v", names)
	}
}

func TestEncoderNamesHaveNoVP8(t *testing.T) {
	// VP8 has no standard MP4 sample entry, so it must never probe as
	// supported regardless of what ffmpeg offers.
	if _, ok := encoderNames[ports.CodecVP8]; ok {
		t.Error("expected no encoder mapping for vp8")
	}
	if Supports(ports.CodecVP8) {
		t.Error("expected vp8 to be unsupported")
	}
}

func TestSelectEncoderNameUnknownCodec(t *testing.T) {
	if _, err := selectEncoderName(ports.CodecVP8); !errors.Is(err, ErrCodecUnsupported) {
		t.Errorf("expected ErrCodecUnsupported, got %v", err)
	}
	if _, err := selectEncoderName(ports.VideoCodec("mpeg2")); !errors.Is(err, ErrCodecUnsupported) {
		t.Errorf("expected ErrCodecUnsupported, got %v", err)
	}
}

func TestFindFFmpegCustomPath(t *testing.T) {
	defer SetFFmpegPath("")

	fake := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}

	SetFFmpegPath(fake)
	got, err := FindFFmpeg()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fake {
		t.Errorf("expected %q, got %q", fake, got)
	}

	SetFFmpegPath(filepath.Join(t.TempDir(), "missing"))
	if _, err := FindFFmpeg(); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound for missing custom path, got %v", err)
	}
}
