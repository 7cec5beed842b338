// Package codecdetect identifies the video codec of produced MP4 data.
// Used by diagnostics and tests to verify exported files.
package codecdetect

import (
	"bytes"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/patterncard/pkg/ports"
)

// DetectFromBytes returns the codec of the first video track in MP4 data.
func DetectFromBytes(data []byte) (ports.VideoCodec, error) {
	mp4File, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		for _, trak := range mp4File.Init.Moov.Traks {
			if codec, ok := detectFromTrack(trak); ok {
				return codec, nil
			}
		}
	}
	if mp4File.Moov != nil {
		for _, trak := range mp4File.Moov.Traks {
			if codec, ok := detectFromTrack(trak); ok {
				return codec, nil
			}
		}
	}

	return "", fmt.Errorf("no video track found")
}

func detectFromTrack(trak *mp4.TrakBox) (ports.VideoCodec, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return "", false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return "", false
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return ports.CodecAVC, true
		case "hvc1", "hev1":
			return ports.CodecHEVC, true
		case "vp09":
			return ports.CodecVP9, true
		case "av01":
			return ports.CodecAV1, true
		}
	}
	return "", false
}
