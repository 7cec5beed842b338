// Package ffmpegdecoder reads frames back out of exported MP4 files by
// piping them through an ffmpeg process. It exists to verify pipeline
// output, so callers must gate on ffmpeg availability.
package ffmpegdecoder

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/patterncard/pkg/adapters/ffmpegencoder"
	"github.com/user/patterncard/pkg/ports"
)

// Decoder implements ports.VideoDecoder over an external ffmpeg process.
type Decoder struct{}

// New creates a decoder.
func New() *Decoder { return &Decoder{} }

// ReadFrames decodes every frame of the video into RGBA images. Frame
// dimensions are taken from the MP4 sample entry, so the input must be a
// parseable MP4 with a video track.
func (d *Decoder) ReadFrames(data []byte) ([]image.Image, error) {
	width, height, err := videoDimensions(data)
	if err != nil {
		return nil, err
	}

	ffmpegPath, err := ffmpegencoder.FindFFmpeg()
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "patterncard_*.mp4")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	var stderr bytes.Buffer
	cmd := exec.Command(ffmpegPath,
		"-i", tmpPath,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	frameSize := width * height * 4
	var frames []image.Image
	for {
		pix := make([]byte, frameSize)
		if _, err := io.ReadFull(stdout, pix); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			cmd.Wait()
			return nil, fmt.Errorf("read frame: %w", err)
		}
		frames = append(frames, &image.RGBA{
			Pix:    pix,
			Stride: 4 * width,
			Rect:   image.Rect(0, 0, width, height),
		})
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %w (%s)", err, lastLine(&stderr))
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames decoded (%s)", lastLine(&stderr))
	}
	return frames, nil
}

// videoDimensions reads the frame size from the first video sample entry.
func videoDimensions(data []byte) (int, int, error) {
	mp4File, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode mp4: %w", err)
	}

	var traks []*mp4.TrakBox
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		traks = mp4File.Init.Moov.Traks
	} else if mp4File.Moov != nil {
		traks = mp4File.Moov.Traks
	}

	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
				return int(vse.Width), int(vse.Height), nil
			}
		}
	}
	return 0, 0, fmt.Errorf("no video track found")
}

func lastLine(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	if len(s) > 200 {
		s = s[len(s)-200:]
	}
	return s
}

// Ensure Decoder implements ports.VideoDecoder
var _ ports.VideoDecoder = (*Decoder)(nil)
