package ffmpegencoder

import (
	"bytes"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"
)

// muxAVC wraps an H.264 Annex B elementary stream into a fragmented MP4.
func muxAVC(stream []byte, width, height int, fps float64) ([]byte, error) {
	nalus := splitAnnexB(stream)
	units := groupAccessUnits(nalus)
	if len(units) == 0 {
		return nil, ErrNoFrames
	}

	sps, pps := extractParameterSets(nalus)
	if sps == nil || pps == nil {
		return nil, fmt.Errorf("missing SPS/PPS in stream")
	}

	avcC, err := mp4.CreateAvcC([][]byte{sps}, [][]byte{pps}, true)
	if err != nil {
		return nil, fmt.Errorf("create avcC: %w", err)
	}

	timescale := uint32(fps * 1000)
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak

	avc1 := mp4.CreateVisualSampleEntryBox("avc1", uint16(width), uint16(height), avcC)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(avc1)
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)

	frag, err := mp4.CreateFragment(1, 1)
	if err != nil {
		return nil, fmt.Errorf("create fragment: %w", err)
	}

	sampleDur := uint32(float64(timescale) / fps)
	for i, au := range units {
		flags := mp4.NonSyncSampleFlags
		if au.isKeyframe {
			flags = mp4.SyncSampleFlags
		}
		data := sampleData(au)

		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: flags,
				Size:  uint32(len(data)),
				Dur:   sampleDur,
			},
			DecodeTime: uint64(i) * uint64(sampleDur),
			Data:       data,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "avc1", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}
	if err := frag.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode fragment: %w", err)
	}
	return buf.Bytes(), nil
}
