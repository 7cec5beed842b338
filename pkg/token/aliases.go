package token

import "github.com/user/patterncard/pkg/geometry"

// fieldCodec binds one config field to its wire alias, with accessors for
// both encode and decode so the binding is stated exactly once.
type fieldCodec struct {
	field string
	alias string
	get   func(c *geometry.Config) any
	set   func(c *geometry.Config, v any) bool
}

func boolField(field, alias string, ptr func(*geometry.Config) *bool) fieldCodec {
	return fieldCodec{field, alias,
		func(c *geometry.Config) any { return *ptr(c) },
		func(c *geometry.Config, v any) bool { return setBool(ptr(c), v) }}
}

// floatField rounds on encode so float noise never produces a spurious diff
// entry.
func floatField(field, alias string, ptr func(*geometry.Config) *float64) fieldCodec {
	return fieldCodec{field, alias,
		func(c *geometry.Config) any { return round3(*ptr(c)) },
		func(c *geometry.Config, v any) bool { return setFloat(ptr(c), v) }}
}

// intField encodes as float64, matching what JSON decode hands back.
func intField(field, alias string, ptr func(*geometry.Config) *int) fieldCodec {
	return fieldCodec{field, alias,
		func(c *geometry.Config) any { return float64(*ptr(c)) },
		func(c *geometry.Config, v any) bool { return setInt(ptr(c), v) }}
}

func stringField(field, alias string, ptr func(*geometry.Config) *string) fieldCodec {
	return fieldCodec{field, alias,
		func(c *geometry.Config) any { return *ptr(c) },
		func(c *geometry.Config, v any) bool { return setString(ptr(c), v) }}
}

// fieldCodecs is the normative alias table; everything else in this file is
// derived from it. The table is append-only. An alias, once assigned to a
// field, must never be reassigned to a different field in any later token
// version or older tokens decode into the wrong fields.
var fieldCodecs = []fieldCodec{
	boolField("showFrame", "sf", func(c *geometry.Config) *bool { return &c.ShowFrame }),
	floatField("frameMargin", "fm", func(c *geometry.Config) *float64 { return &c.FrameMargin }),
	floatField("frameWidth", "fw", func(c *geometry.Config) *float64 { return &c.FrameWidth }),
	floatField("cardCorner", "cc", func(c *geometry.Config) *float64 { return &c.CardCorner }),
	boolField("showGuides", "sg", func(c *geometry.Config) *bool { return &c.ShowGuides }),
	floatField("canvasScale", "cv", func(c *geometry.Config) *float64 { return &c.CanvasScale }),
	floatField("frameInset", "fi", func(c *geometry.Config) *float64 { return &c.FrameInset }),
	floatField("frameTone", "ft", func(c *geometry.Config) *float64 { return &c.FrameTone }),

	stringField("hullType", "ht", func(c *geometry.Config) *string { return (*string)(&c.HullType) }),
	intField("hullSides", "hn", func(c *geometry.Config) *int { return &c.HullSides }),
	floatField("hullRadius", "hr", func(c *geometry.Config) *float64 { return &c.HullRadius }),
	floatField("hullRotation", "ha", func(c *geometry.Config) *float64 { return &c.HullRotation }),
	floatField("hullTwist", "hw", func(c *geometry.Config) *float64 { return &c.HullTwist }),
	floatField("hullSkew", "hk", func(c *geometry.Config) *float64 { return &c.HullSkew }),
	floatField("hullDepth", "hd", func(c *geometry.Config) *float64 { return &c.HullDepth }),
	floatField("hullSmoothing", "hm", func(c *geometry.Config) *float64 { return &c.HullSmoothing }),
	floatField("hullPointiness", "hp", func(c *geometry.Config) *float64 { return &c.HullPointiness }),
	boolField("showHull", "sh", func(c *geometry.Config) *bool { return &c.ShowHull }),

	stringField("lobeType", "lt", func(c *geometry.Config) *string { return (*string)(&c.LobeType) }),
	intField("lobeCount", "lc", func(c *geometry.Config) *int { return &c.LobeCount }),
	floatField("petalLength", "pl", func(c *geometry.Config) *float64 { return &c.PetalLength }),
	floatField("petalWidth", "pw", func(c *geometry.Config) *float64 { return &c.PetalWidth }),
	floatField("petalCurve", "pc", func(c *geometry.Config) *float64 { return &c.PetalCurve }),
	floatField("petalOverlap", "po", func(c *geometry.Config) *float64 { return &c.PetalOverlap }),
	floatField("coreRadius", "cr", func(c *geometry.Config) *float64 { return &c.CoreRadius }),
	intField("ringCount", "rn", func(c *geometry.Config) *int { return &c.RingCount }),
	floatField("ringSpacing", "rs", func(c *geometry.Config) *float64 { return &c.RingSpacing }),
	floatField("spiralFactor", "sp", func(c *geometry.Config) *float64 { return &c.SpiralFactor }),
	boolField("mirrorPattern", "mr", func(c *geometry.Config) *bool { return &c.MirrorPattern }),
	floatField("seedScale", "se", func(c *geometry.Config) *float64 { return &c.SeedScale }),

	floatField("strokeWidth", "sw", func(c *geometry.Config) *float64 { return &c.StrokeWidth }),
	stringField("strokeStyle", "ss", func(c *geometry.Config) *string { return (*string)(&c.StrokeStyle) }),
	floatField("strokeOpacity", "so", func(c *geometry.Config) *float64 { return &c.StrokeOpacity }),
	floatField("fillOpacity", "fo", func(c *geometry.Config) *float64 { return &c.FillOpacity }),
	floatField("huePhase", "hu", func(c *geometry.Config) *float64 { return &c.HuePhase }),
	floatField("hueSpread", "hs", func(c *geometry.Config) *float64 { return &c.HueSpread }),
	floatField("saturation", "sa", func(c *geometry.Config) *float64 { return &c.Saturation }),
	floatField("lightness", "li", func(c *geometry.Config) *float64 { return &c.Lightness }),
	boolField("blendInk", "bi", func(c *geometry.Config) *bool { return &c.BlendInk }),

	intField("sequenceLength", "sl", func(c *geometry.Config) *int { return &c.SequenceLength }),
}

var (
	fieldAliases = map[string]string{}
	codecByAlias = map[string]fieldCodec{}
)

func init() {
	for _, fc := range fieldCodecs {
		fieldAliases[fc.field] = fc.alias
		codecByAlias[fc.alias] = fc
	}
}

// aliasMap flattens a config into its alias-keyed wire representation.
// Integers stay integral, other numbers are rounded to 3 decimals so float
// noise never produces a spurious diff entry.
func aliasMap(c geometry.Config) map[string]any {
	m := make(map[string]any, len(fieldCodecs))
	for _, fc := range fieldCodecs {
		m[fc.alias] = fc.get(&c)
	}
	return m
}

// setAlias writes one alias-keyed wire value into a config. Returns false for
// an alias this version does not know, or a value of the wrong shape.
func setAlias(c *geometry.Config, alias string, value any) bool {
	fc, ok := codecByAlias[alias]
	if !ok {
		return false
	}
	return fc.set(c, value)
}

func setFloat(dst *float64, v any) bool {
	f, ok := v.(float64)
	if !ok {
		return false
	}
	*dst = f
	return true
}

func setInt(dst *int, v any) bool {
	f, ok := v.(float64)
	if !ok {
		return false
	}
	*dst = int(f)
	return true
}

func setBool(dst *bool, v any) bool {
	b, ok := v.(bool)
	if !ok {
		return false
	}
	*dst = b
	return true
}

func setString(dst *string, v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	*dst = s
	return true
}
