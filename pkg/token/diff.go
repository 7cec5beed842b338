package token

import (
	"math"

	"github.com/user/patterncard/pkg/geometry"
)

// diff returns the alias-keyed fields of cfg that differ from base. Both
// sides go through aliasMap first, so numeric comparison happens after
// rounding and an empty result really means "identical for wire purposes".
func diff(cfg, base geometry.Config) map[string]any {
	cm := aliasMap(cfg)
	bm := aliasMap(base)

	out := map[string]any{}
	for alias, v := range cm {
		if bm[alias] != v {
			out[alias] = v
		}
	}
	return out
}

// apply overlays an alias-keyed diff onto base and returns the result.
// Unknown aliases are ignored so that a token written by a future revision
// that added and later removed a field still decodes.
func apply(base geometry.Config, d map[string]any) geometry.Config {
	cfg := base
	for alias, v := range d {
		setAlias(&cfg, alias, v)
	}
	return cfg
}

// applyFull reconstructs a complete config from a full alias-keyed object,
// falling back to the baseline preset for anything the object does not
// carry. Aliases this version does not know are reported back to the caller
// so legacy decode paths can preserve them verbatim.
func applyFull(obj map[string]any) (geometry.Config, map[string]any) {
	cfg := geometry.Baseline()
	var unknown map[string]any
	for alias, v := range obj {
		if !setAlias(&cfg, alias, v) {
			if unknown == nil {
				unknown = map[string]any{}
			}
			unknown[alias] = v
		}
	}
	return cfg, unknown
}

func round3(v float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	return math.Round(v*1000) / 1000
}
