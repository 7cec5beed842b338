// Package token implements the versioned, diff-compressed serialization of a
// card collection into a URL-safe string.
//
// A token is a base64 JSON envelope. Version 4 (current) carries the active
// config as a diff against the baseline preset and each item's config as a
// diff against the active config, keyed by a stable short-alias table.
// Versions 1 through 3 remain decodable: v2/v3 carry complete minified
// per-item configs, v1 a single global config shared by every item.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/user/patterncard/pkg/geometry"
	"github.com/user/patterncard/pkg/pattern"
)

// CurrentVersion is the envelope version this package writes.
const CurrentVersion = 4

// ErrDecode marks any malformed-token failure. Callers treat it as a
// recoverable negative result, never as a crash.
var ErrDecode = errors.New("token: decode failed")

// Decoded is the reconstructed state carried by a token.
type Decoded struct {
	Config   geometry.Config
	Items    []DecodedItem
	TimingMs int
}

// DecodedItem is one reconstructed card. Unknown carries alias keys a legacy
// payload held that this version does not understand; they are preserved
// verbatim rather than dropped.
type DecodedItem struct {
	ID          int
	Name        string
	Description string
	Data        []int
	Config      geometry.Config
	Unknown     map[string]any
}

type envelope struct {
	Version    int            `json:"version"`
	TimingMs   int            `json:"timingMs,omitempty"`
	GlobalDiff map[string]any `json:"globalDiff,omitempty"`
	Config     map[string]any `json:"config,omitempty"` // v1 only
	Items      []wireItem     `json:"items"`
}

type wireItem struct {
	ID          *int           `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Data        string         `json:"data"`
	ItemDiff    map[string]any `json:"itemDiff,omitempty"` // v4 only
	Config      map[string]any `json:"config,omitempty"`   // v2/v3 only
}

// Encode serializes the active config plus all items into a v4 token.
// Sequence values are written as single digits; values above 9 clamp to 9,
// a documented limit kept for compatibility with previously shared tokens.
func Encode(active geometry.Config, items []pattern.Item, timingMs int) (string, error) {
	env := envelope{
		Version:    CurrentVersion,
		TimingMs:   timingMs,
		GlobalDiff: diff(active, geometry.Baseline()),
	}

	for _, it := range items {
		id := it.ID
		w := wireItem{
			ID:          &id,
			Name:        it.Name,
			Description: it.Description,
			Data:        encodeDigits(it.Data),
		}
		if d := diff(it.Config, active); len(d) > 0 {
			w.ItemDiff = d
		}
		env.Items = append(env.Items, w)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reconstructs the state carried by a token of any known version.
// Every failure wraps ErrDecode; Decode never panics.
func Decode(tok string) (*Decoded, error) {
	data, err := decodeBase64(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	switch env.Version {
	case 4:
		return decodeV4(env), nil
	case 2, 3:
		return decodeV2V3(env), nil
	case 1:
		return decodeV1(env), nil
	default:
		return nil, fmt.Errorf("%w: unknown version %d", ErrDecode, env.Version)
	}
}

func decodeV4(env envelope) *Decoded {
	globalBase := apply(geometry.Baseline(), env.GlobalDiff)

	out := &Decoded{Config: globalBase, TimingMs: timingOrDefault(env.TimingMs)}
	for _, w := range env.Items {
		cfg := globalBase
		if len(w.ItemDiff) > 0 {
			cfg = apply(globalBase, w.ItemDiff)
		}
		out.Items = append(out.Items, DecodedItem{
			ID:          itemID(w.ID),
			Name:        w.Name,
			Description: w.Description,
			Data:        decodeDigits(w.Data),
			Config:      cfg,
		})
	}
	return out
}

func decodeV2V3(env envelope) *Decoded {
	// v3 added timingMs to the envelope; v2 tokens fall back to the default.
	out := &Decoded{Config: geometry.Baseline(), TimingMs: timingOrDefault(env.TimingMs)}
	for i, w := range env.Items {
		cfg, unknown := applyFull(w.Config)
		if i == 0 {
			out.Config = cfg
		}
		out.Items = append(out.Items, DecodedItem{
			ID:          itemID(w.ID),
			Name:        w.Name,
			Description: w.Description,
			Data:        decodeDigits(w.Data),
			Config:      cfg,
			Unknown:     unknown,
		})
	}
	return out
}

func decodeV1(env envelope) *Decoded {
	cfg, unknown := applyFull(env.Config)

	out := &Decoded{Config: cfg, TimingMs: timingOrDefault(env.TimingMs)}
	for _, w := range env.Items {
		out.Items = append(out.Items, DecodedItem{
			ID:      itemID(w.ID),
			Name:    w.Name,
			Data:    decodeDigits(w.Data),
			Config:  cfg,
			Unknown: unknown,
		})
	}
	return out
}

// decodeBase64 accepts both URL-safe and standard alphabets, padded or not,
// since tokens sourced from older share links vary.
func decodeBase64(tok string) ([]byte, error) {
	tok = strings.TrimSpace(tok)
	if data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(tok, "=")); err == nil {
		return data, nil
	}
	return base64.StdEncoding.DecodeString(tok)
}

func encodeDigits(data []int) string {
	var b strings.Builder
	for _, v := range data {
		if v < 0 {
			v = 0
		}
		if v > 9 {
			v = 9
		}
		b.WriteByte(byte('0' + v))
	}
	return b.String()
}

func decodeDigits(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, int(r-'0'))
		} else {
			out = append(out, 0)
		}
	}
	return out
}

// itemID returns the carried id, or an unpredictable placeholder when the
// payload lacks one. Placeholders are not stable across decodes.
func itemID(id *int) int {
	if id != nil {
		return *id
	}
	return 1_000_000 + rand.Intn(9_000_000)
}

func timingOrDefault(ms int) int {
	if ms <= 0 {
		return pattern.DefaultTimingMs
	}
	return ms
}
