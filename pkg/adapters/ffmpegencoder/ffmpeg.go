// Package ffmpegencoder implements the video encode primitive over an
// external ffmpeg process. ffmpeg produces the compressed bitstream; for AVC
// and AV1 the elementary stream is muxed into MP4 in-process, for the
// remaining codecs ffmpeg writes the container itself.
package ffmpegencoder

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/user/patterncard/pkg/ports"
)

var customFFmpegPath string

// SetFFmpegPath overrides ffmpeg discovery with an explicit binary path.
func SetFFmpegPath(path string) {
	customFFmpegPath = path
}

// FindFFmpeg searches for ffmpeg. Priority: SetFFmpegPath, FFMPEG_PATH env,
// PATH, common install locations.
func FindFFmpeg() (string, error) {
	if customFFmpegPath != "" {
		if _, err := os.Stat(customFFmpegPath); err == nil {
			return customFFmpegPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, customFFmpegPath)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// encoderNames maps each codec to the ffmpeg encoder names usable for it,
// in preference order. VP8 is absent: it has no standard MP4 sample entry,
// and MP4 is the one container this tool writes.
var encoderNames = map[ports.VideoCodec][]string{
	ports.CodecAVC:  {"libx264", "libopenh264"},
	ports.CodecHEVC: {"libx265"},
	ports.CodecVP9:  {"libvpx-vp9"},
	ports.CodecAV1:  {"libaom-av1", "libsvtav1"},
}

var (
	probeOnce   sync.Once
	probeResult map[string]bool
	probeErr    error
)

// Supports reports whether this runtime can encode the given codec: an
// ffmpeg binary must exist and expose a matching encoder, and the codec
// must have an MP4 mapping.
func Supports(codec ports.VideoCodec) bool {
	names, ok := encoderNames[codec]
	if !ok {
		return false
	}
	available, err := availableEncoders()
	if err != nil {
		return false
	}
	for _, name := range names {
		if available[name] {
			return true
		}
	}
	return false
}

// availableEncoders runs `ffmpeg -encoders` once and caches the name set.
func availableEncoders() (map[string]bool, error) {
	probeOnce.Do(func() {
		path, err := FindFFmpeg()
		if err != nil {
			probeErr = err
			return
		}
		out, err := exec.Command(path, "-hide_banner", "-encoders").Output()
		if err != nil {
			probeErr = fmt.Errorf("probe encoders: %w", err)
			return
		}
		probeResult = parseEncoderList(out)
	})
	return probeResult, probeErr
}

// parseEncoderList extracts encoder names from `ffmpeg -encoders` output.
// Lines look like ` V....D libx264   libx264 H.264 / AVC ...` after a
// `------` separator.
func parseEncoderList(out []byte) map[string]bool {
	names := map[string]bool{}
	seenSeparator := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !seenSeparator {
			if strings.HasPrefix(line, "---") {
				seenSeparator = true
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.HasPrefix(fields[0], "V") {
			names[fields[1]] = true
		}
	}
	return names
}

// selectEncoderName picks the concrete ffmpeg encoder for a codec.
func selectEncoderName(codec ports.VideoCodec) (string, error) {
	names, ok := encoderNames[codec]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCodecUnsupported, codec)
	}
	available, err := availableEncoders()
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if available[name] {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: no ffmpeg encoder for %s", ErrCodecUnsupported, codec)
}
