// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/patterncard/pkg/adapters/ggrenderer"
	"github.com/user/patterncard/pkg/ports"
)

// thumbnailSize is the edge length of saved frame thumbnails.
// Full-size frames would be prohibitively large at 30 fps.
const thumbnailSize = 256

// Sink saves debug output to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveScenePlanJSON saves the expanded scene plan as JSON.
func (s *Sink) SaveScenePlanJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "plan.json")
	return s.fs.WriteFile(path, data)
}

// SaveFrame saves a rendered frame as a PNG thumbnail.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	thumb := ggrenderer.Resize(img, thumbnailSize, thumbnailSize)
	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return fmt.Errorf("encode frame thumbnail: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%06d.png", index))
	return s.fs.WriteFile(path, buf.Bytes())
}

// SaveToken saves the share token for the exported collection.
func (s *Sink) SaveToken(tok string) error {
	path := filepath.Join(s.baseDir, "token.txt")
	return s.fs.WriteFile(path, []byte(tok))
}
