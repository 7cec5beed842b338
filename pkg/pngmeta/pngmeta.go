// Package pngmeta embeds and extracts keyed text values in PNG files at the
// chunk level. It never touches pixel data: writing splices one tEXt chunk
// in right after the IHDR chunk, reading walks the chunk list.
package pngmeta

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// TokenKey is the chunk keyword under which the application stores its share
// token in exported images.
const TokenKey = "patterncard"

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// The IHDR chunk is fixed-size, so the insertion point for a new chunk is a
// constant offset: 8-byte signature + 8-byte chunk header + 13-byte body +
// 4-byte CRC.
const ihdrEnd = 8 + 8 + 13 + 4

// Write returns a copy of png with a tEXt chunk `key\0value` spliced in
// after IHDR. The original chunks are untouched and follow the new chunk;
// the result is a structurally valid PNG. The input is assumed to be a
// well-formed PNG at least IHDR long.
func Write(png []byte, key, value string) []byte {
	body := make([]byte, 0, len(key)+1+len(value))
	body = append(body, key...)
	body = append(body, 0)
	body = append(body, value...)

	chunk := make([]byte, 0, 12+len(body))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(body)))
	chunk = append(chunk, "tEXt"...)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(png)+len(chunk))
	out = append(out, png[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, png[ihdrEnd:]...)
	return out
}

// Read walks the chunk list looking for a tEXt chunk keyed by key and
// returns its value. A missing key, a non-PNG input, or a truncated file all
// yield ok=false; Read never fails hard and does not verify chunk CRCs.
func Read(png []byte, key string) (string, bool) {
	if len(png) < ihdrEnd || !bytes.Equal(png[:8], signature) {
		return "", false
	}

	offset := 8
	for offset+8 <= len(png) {
		length := int(binary.BigEndian.Uint32(png[offset : offset+4]))
		typ := string(png[offset+4 : offset+8])

		bodyStart := offset + 8
		bodyEnd := bodyStart + length
		if length < 0 || bodyEnd > len(png) {
			return "", false
		}

		if typ == "tEXt" {
			body := png[bodyStart:bodyEnd]
			if i := bytes.IndexByte(body, 0); i >= 0 && string(body[:i]) == key {
				return string(body[i+1:]), true
			}
		}
		if typ == "IEND" {
			return "", false
		}

		offset = bodyEnd + 4 // skip CRC
	}
	return "", false
}
