package ffmpegencoder

import (
	"encoding/binary"
	"fmt"
)

// ivfFrame is one compressed frame from an IVF-framed stream.
type ivfFrame struct {
	data []byte
	pts  uint64
}

const ivfHeaderSize = 32

// parseIVF splits an IVF file into frames. Truncated trailing bytes are
// dropped rather than failing the whole stream.
func parseIVF(data []byte) ([]ivfFrame, error) {
	if len(data) < ivfHeaderSize || string(data[:4]) != "DKIF" {
		return nil, fmt.Errorf("not an IVF stream")
	}
	headerSize := int(binary.LittleEndian.Uint16(data[6:8]))
	if headerSize < ivfHeaderSize {
		headerSize = ivfHeaderSize
	}

	var frames []ivfFrame
	offset := headerSize
	for offset+12 <= len(data) {
		size := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		pts := binary.LittleEndian.Uint64(data[offset+4 : offset+12])
		offset += 12
		if offset+size > len(data) {
			break
		}
		frames = append(frames, ivfFrame{data: data[offset : offset+size], pts: pts})
		offset += size
	}
	return frames, nil
}

// AV1 OBU types relevant to keyframe detection and codec configuration.
const obuSequenceHeader = 1

// obuContainsSequenceHeader reports whether a temporal unit carries a
// sequence header OBU, which marks it as a random access point.
func obuContainsSequenceHeader(data []byte) bool {
	return extractSequenceHeaderOBU(data) != nil
}

// extractSequenceHeaderOBU returns the sequence header OBU (including its
// header bytes) from an AV1 temporal unit, or nil.
func extractSequenceHeaderOBU(data []byte) []byte {
	offset := 0
	for offset < len(data) {
		header := data[offset]
		obuType := (header >> 3) & 0x0F
		hasExtension := header&0x04 != 0
		hasSizeField := header&0x02 != 0

		start := offset
		offset++
		if hasExtension {
			if offset >= len(data) {
				return nil
			}
			offset++
		}

		var size int
		if hasSizeField {
			var ok bool
			size, offset, ok = readLeb128(data, offset)
			if !ok {
				return nil
			}
		} else {
			size = len(data) - offset
		}

		end := offset + size
		if end > len(data) {
			end = len(data)
		}
		if obuType == obuSequenceHeader {
			return data[start:end]
		}
		offset = end
	}
	return nil
}

// readLeb128 reads a LEB128-encoded value, returning the value, the new
// offset and whether the read stayed in bounds.
func readLeb128(data []byte, offset int) (int, int, bool) {
	value := 0
	for i := 0; i < 8; i++ {
		if offset >= len(data) {
			return 0, offset, false
		}
		b := data[offset]
		offset++
		value |= int(b&0x7F) << (i * 7)
		if b&0x80 == 0 {
			return value, offset, true
		}
	}
	return value, offset, true
}
