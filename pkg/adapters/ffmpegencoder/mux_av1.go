package ffmpegencoder

import (
	"bytes"
	"fmt"

	"github.com/Eyevinn/mp4ff/av1"
	"github.com/Eyevinn/mp4ff/mp4"
)

// muxAV1 wraps an IVF-framed AV1 stream into a fragmented MP4.
func muxAV1(stream []byte, width, height int, fps float64) ([]byte, error) {
	frames, err := parseIVF(stream)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	var seqHdr []byte
	for _, f := range frames {
		if hdr := extractSequenceHeaderOBU(f.data); hdr != nil {
			seqHdr = hdr
			break
		}
	}

	av1C := &mp4.Av1CBox{
		CodecConfRec: av1.CodecConfRec{
			Version:            1,
			SeqProfile:         0,
			SeqLevelIdx0:       8, // level 4.0
			ChromaSubsamplingX: 1, // 4:2:0
			ChromaSubsamplingY: 1,
			ConfigOBUs:         seqHdr,
		},
	}

	timescale := uint32(fps * 1000)
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak

	av01 := mp4.CreateVisualSampleEntryBox("av01", uint16(width), uint16(height), av1C)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(av01)
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)

	frag, err := mp4.CreateFragment(1, 1)
	if err != nil {
		return nil, fmt.Errorf("create fragment: %w", err)
	}

	sampleDur := uint32(float64(timescale) / fps)
	for i, f := range frames {
		flags := mp4.NonSyncSampleFlags
		if obuContainsSequenceHeader(f.data) {
			flags = mp4.SyncSampleFlags
		}
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: flags,
				Size:  uint32(len(f.data)),
				Dur:   sampleDur,
			},
			DecodeTime: uint64(i) * uint64(sampleDur),
			Data:       f.data,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "av01", "mp41"})
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
