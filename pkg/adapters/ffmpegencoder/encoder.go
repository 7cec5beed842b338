package ffmpegencoder

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/patterncard/pkg/ports"
)

// outputMode selects how the compressed bitstream reaches the MP4 file.
type outputMode int

const (
	// modeAnnexB: ffmpeg emits an H.264 Annex B elementary stream, muxed
	// into MP4 in-process with mp4ff.
	modeAnnexB outputMode = iota
	// modeIVF: ffmpeg emits an IVF-framed AV1 stream, muxed with mp4ff.
	modeIVF
	// modeMP4: ffmpeg writes the MP4 container itself.
	modeMP4
)

// tempSuffix is the temp-file extension for a mode. ffmpeg infers the output
// muxer from it when no -f flag wins, so it must match the stream format.
func tempSuffix(mode outputMode) string {
	switch mode {
	case modeAnnexB:
		return ".h264"
	case modeIVF:
		return ".ivf"
	default:
		return ".mp4"
	}
}

// Encoder implements ports.VideoEncoder by piping raw RGBA frames into an
// ffmpeg process.
type Encoder struct {
	codec ports.VideoCodec

	mu         sync.Mutex
	width      int
	height     int
	fps        float64
	opts       ports.EncoderOptions
	mode       outputMode
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	tempPath   string
	frameCount int
	lastTsMs   int
	closed     bool
}

// New creates an encoder producing the given codec in an MP4 container.
func New(codec ports.VideoCodec) *Encoder {
	return &Encoder{codec: codec}
}

// Codec returns the codec this encoder produces.
func (e *Encoder) Codec() ports.VideoCodec { return e.codec }

// Begin locates ffmpeg, opens the output target and starts the encode
// process at fixed bitrate settings.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}
	encoderName, err := selectEncoderName(e.codec)
	if err != nil {
		return err
	}

	e.width = width
	e.height = height
	e.fps = fps
	e.opts = opts
	e.frameCount = 0
	e.lastTsMs = -1
	e.closed = false
	e.stderr.Reset()

	switch e.codec {
	case ports.CodecAVC:
		e.mode = modeAnnexB
	case ports.CodecAV1:
		e.mode = modeIVF
	default:
		e.mode = modeMP4
	}

	tmpFile, err := os.CreateTemp("", "patterncard_*"+tempSuffix(e.mode))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	e.tempPath = tmpFile.Name()
	tmpFile.Close()

	args := e.buildArgs(encoderName)

	e.cmd = exec.Command(ffmpegPath, args...)
	e.cmd.Stderr = &e.stderr
	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	return nil
}

func (e *Encoder) buildArgs(encoderName string) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", e.width, e.height),
		"-r", fmt.Sprintf("%.3f", e.fps),
		"-i", "pipe:0",
		"-c:v", encoderName,
		"-pix_fmt", "yuv420p",
	}

	quality := e.opts.Quality
	if quality <= 0 || quality > 63 {
		quality = 28
	}

	switch e.codec {
	case ports.CodecAVC:
		// x264 CRF tops out at 51; rescale our 0-63 range.
		args = append(args, "-preset", "fast", "-crf", fmt.Sprintf("%d", quality*51/63))
		if e.opts.Bitrate > 0 {
			args = append(args, "-maxrate", fmt.Sprintf("%dk", e.opts.Bitrate), "-bufsize", fmt.Sprintf("%dk", e.opts.Bitrate*2))
		}
		// AUD insertion marks access unit boundaries for the muxer.
		args = append(args,
			"-profile:v", "main",
			"-bsf:v", "h264_metadata=aud=insert",
			"-f", "h264")
	case ports.CodecAV1:
		args = append(args, "-crf", fmt.Sprintf("%d", quality))
		if strings.HasPrefix(encoderName, "libaom") {
			args = append(args, "-cpu-used", "8", "-b:v", "0")
		}
		args = append(args, "-f", "ivf")
	case ports.CodecHEVC:
		args = append(args, "-crf", fmt.Sprintf("%d", quality*51/63), "-tag:v", "hvc1", "-movflags", "+faststart", "-f", "mp4")
	case ports.CodecVP9:
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-b:v", "0", "-movflags", "+faststart", "-f", "mp4")
	}

	if e.opts.Bitrate > 0 && e.codec != ports.CodecAVC && e.codec != ports.CodecVP9 && e.codec != ports.CodecAV1 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", e.opts.Bitrate))
	}

	return append(args, e.tempPath)
}

// EncodeFrame submits one frame. Timestamps must be strictly increasing;
// the frame rate itself is fixed, so the timestamp is validated rather than
// forwarded.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil || e.closed {
		return fmt.Errorf("encoder not initialized")
	}
	if timestampMs <= e.lastTsMs {
		return fmt.Errorf("timestamp %d not after %d", timestampMs, e.lastTsMs)
	}
	e.lastTsMs = timestampMs

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) || rgba.Stride != 4*e.width {
		rgba = image.NewRGBA(image.Rect(0, 0, e.width, e.height))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	if _, err := e.stdin.Write(rgba.Pix); err != nil {
		return fmt.Errorf("write frame: %w (%s)", err, stderrTail(&e.stderr))
	}
	e.frameCount++
	return nil
}

// End finishes the stream, waits for ffmpeg, and returns the MP4 bytes.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil || e.closed {
		return nil, fmt.Errorf("encoder not initialized")
	}
	if e.frameCount == 0 {
		e.abortLocked()
		return nil, ErrNoFrames
	}
	e.closed = true

	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		os.Remove(e.tempPath)
		return nil, fmt.Errorf("ffmpeg: %w (%s)", err, stderrTail(&e.stderr))
	}

	data, err := os.ReadFile(e.tempPath)
	os.Remove(e.tempPath)
	if err != nil {
		return nil, fmt.Errorf("read encoded output: %w", err)
	}

	switch e.mode {
	case modeAnnexB:
		return muxAVC(data, e.width, e.height, e.fps)
	case modeIVF:
		return muxAV1(data, e.width, e.height, e.fps)
	default:
		return data, nil
	}
}

// Abort kills the encode process and removes all temporary state. No
// partial output survives.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.abortLocked()
}

func (e *Encoder) abortLocked() {
	if e.cmd != nil && !e.closed {
		if e.stdin != nil {
			e.stdin.Close()
		}
		if e.cmd.Process != nil {
			e.cmd.Process.Kill()
			e.cmd.Wait()
		}
	}
	if e.tempPath != "" {
		os.Remove(e.tempPath)
		e.tempPath = ""
	}
	e.closed = true
}

// stderrTail returns the last line of ffmpeg's stderr for diagnostics.
func stderrTail(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	if len(s) > 200 {
		s = s[len(s)-200:]
	}
	return s
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
