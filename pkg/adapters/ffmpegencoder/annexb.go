package ffmpegencoder

import "encoding/binary"

// H.264 NAL unit types this muxer cares about.
const (
	naluNonIDR = 1
	naluIDR    = 5
	naluSEI    = 6
	naluSPS    = 7
	naluPPS    = 8
	naluAUD    = 9
)

// accessUnit is one decoded picture's worth of NAL units.
type accessUnit struct {
	nalus      [][]byte
	isKeyframe bool
}

// splitAnnexB splits an Annex B byte stream on 3- and 4-byte start codes.
func splitAnnexB(data []byte) [][]byte {
	var nalus [][]byte
	start := -1

	i := 0
	for i+2 < len(data) {
		if data[i] == 0 && data[i+1] == 0 {
			codeLen := 0
			if data[i+2] == 1 {
				codeLen = 3
			} else if i+3 < len(data) && data[i+2] == 0 && data[i+3] == 1 {
				codeLen = 4
			}
			if codeLen > 0 {
				if start >= 0 && i > start {
					nalus = append(nalus, data[start:i])
				}
				i += codeLen
				start = i
				continue
			}
		}
		i++
	}
	if start >= 0 && start < len(data) {
		nalus = append(nalus, data[start:])
	}
	return nalus
}

// groupAccessUnits groups a NALU stream into access units. The encoder is
// run with AUD insertion, so delimiters mark every boundary; if a stream
// somehow lacks them, each VCL NALU starts a new unit (single-slice frames,
// which is what the rawvideo pipeline produces).
func groupAccessUnits(nalus [][]byte) []accessUnit {
	hasAUD := false
	for _, n := range nalus {
		if len(n) > 0 && n[0]&0x1F == naluAUD {
			hasAUD = true
			break
		}
	}

	var units []accessUnit
	var current *accessUnit

	flush := func() {
		if current != nil && len(current.nalus) > 0 {
			units = append(units, *current)
		}
		current = &accessUnit{}
	}
	current = &accessUnit{}

	for _, n := range nalus {
		if len(n) == 0 {
			continue
		}
		typ := n[0] & 0x1F

		if hasAUD {
			if typ == naluAUD {
				flush()
				continue // delimiter itself is not carried into the sample
			}
		} else if typ == naluNonIDR || typ == naluIDR {
			if len(current.nalus) > 0 && hasVCL(current.nalus) {
				flush()
			}
		}

		current.nalus = append(current.nalus, n)
		if typ == naluIDR {
			current.isKeyframe = true
		}
	}
	flush()
	return units
}

func hasVCL(nalus [][]byte) bool {
	for _, n := range nalus {
		if len(n) > 0 {
			if typ := n[0] & 0x1F; typ == naluNonIDR || typ == naluIDR {
				return true
			}
		}
	}
	return false
}

// extractParameterSets returns the first SPS and PPS in the stream.
func extractParameterSets(nalus [][]byte) (sps, pps []byte) {
	for _, n := range nalus {
		if len(n) == 0 {
			continue
		}
		switch n[0] & 0x1F {
		case naluSPS:
			if sps == nil {
				sps = n
			}
		case naluPPS:
			if pps == nil {
				pps = n
			}
		}
		if sps != nil && pps != nil {
			return
		}
	}
	return
}

// sampleData converts an access unit to the length-prefixed AVCC layout
// used inside MP4 samples. Parameter sets live in the avcC box, not the
// samples, so SPS/PPS NALUs are dropped here.
func sampleData(au accessUnit) []byte {
	size := 0
	for _, n := range au.nalus {
		if typ := n[0] & 0x1F; typ == naluSPS || typ == naluPPS {
			continue
		}
		size += 4 + len(n)
	}

	out := make([]byte, 0, size)
	for _, n := range au.nalus {
		if typ := n[0] & 0x1F; typ == naluSPS || typ == naluPPS {
			continue
		}
		out = binary.BigEndian.AppendUint32(out, uint32(len(n)))
		out = append(out, n...)
	}
	return out
}
