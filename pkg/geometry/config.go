// Package geometry defines the pattern card geometry configuration.
package geometry

// LobeType selects the inner-pattern petal family.
type LobeType string

const (
	LobeSunflower LobeType = "sunflower"
	LobeDharma    LobeType = "dharma"
	LobeLotus     LobeType = "lotus"
)

// HullType selects the outer hull shape.
type HullType string

const (
	HullCircle  HullType = "circle"
	HullPolygon HullType = "polygon"
	HullStar    HullType = "star"
)

// StrokeStyle selects the line style for hull and petal outlines.
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

// Config is the full set of parameters that drive a pattern card rendering.
// Every field is always populated; decoding falls back to Baseline() for any
// field a payload does not carry. Value ranges are enforced by the editing
// surface, not here.
type Config struct {
	// Frame / display
	ShowFrame   bool    `json:"showFrame"`
	FrameMargin float64 `json:"frameMargin"` // 0..0.25, fraction of canvas
	FrameWidth  float64 `json:"frameWidth"`  // stroke width in canvas units
	CardCorner  float64 `json:"cardCorner"`  // corner radius, 0..0.2
	ShowGuides  bool    `json:"showGuides"`
	CanvasScale float64 `json:"canvasScale"` // 0.5..1.5
	FrameInset  float64 `json:"frameInset"`  // 0..0.1
	FrameTone   float64 `json:"frameTone"`   // 0..1, frame gray level

	// Hull geometry
	HullType       HullType `json:"hullType"`
	HullSides      int      `json:"hullSides"` // 3..24
	HullRadius     float64  `json:"hullRadius"`
	HullRotation   float64  `json:"hullRotation"` // degrees
	HullTwist      float64  `json:"hullTwist"`
	HullSkew       float64  `json:"hullSkew"`
	HullDepth      float64  `json:"hullDepth"` // star inner/outer ratio
	HullSmoothing  float64  `json:"hullSmoothing"`
	HullPointiness float64  `json:"hullPointiness"`
	ShowHull       bool     `json:"showHull"`

	// Inner pattern design
	LobeType      LobeType `json:"lobeType"`
	LobeCount     int      `json:"lobeCount"` // 1..64
	PetalLength   float64  `json:"petalLength"`
	PetalWidth    float64  `json:"petalWidth"`
	PetalCurve    float64  `json:"petalCurve"`
	PetalOverlap  float64  `json:"petalOverlap"`
	CoreRadius    float64  `json:"coreRadius"`
	RingCount     int      `json:"ringCount"` // 1..8
	RingSpacing   float64  `json:"ringSpacing"`
	SpiralFactor  float64  `json:"spiralFactor"`
	MirrorPattern bool     `json:"mirrorPattern"`
	SeedScale     float64  `json:"seedScale"`

	// Style / stroke
	StrokeWidth   float64     `json:"strokeWidth"`
	StrokeStyle   StrokeStyle `json:"strokeStyle"`
	StrokeOpacity float64     `json:"strokeOpacity"` // 0..1
	FillOpacity   float64     `json:"fillOpacity"`   // 0..1
	HuePhase      float64     `json:"huePhase"`      // 0..360
	HueSpread     float64     `json:"hueSpread"`     // 0..360
	Saturation    float64     `json:"saturation"`    // 0..1
	Lightness     float64     `json:"lightness"`     // 0..1
	BlendInk      bool        `json:"blendInk"`

	// Sequence
	SequenceLength int `json:"sequenceLength"` // 1..32
}

// Baseline returns the root preset of the diff-inheritance chain. Tokens only
// carry fields that differ from these values, so changing any of them breaks
// previously shared tokens.
func Baseline() Config {
	return Config{
		ShowFrame:   true,
		FrameMargin: 0.06,
		FrameWidth:  2,
		CardCorner:  0.04,
		ShowGuides:  false,
		CanvasScale: 1,
		FrameInset:  0.02,
		FrameTone:   0.85,

		HullType:       HullPolygon,
		HullSides:      6,
		HullRadius:     0.42,
		HullRotation:   0,
		HullTwist:      0,
		HullSkew:       0,
		HullDepth:      0.5,
		HullSmoothing:  0.2,
		HullPointiness: 0.5,
		ShowHull:       true,

		LobeType:      LobeSunflower,
		LobeCount:     12,
		PetalLength:   0.3,
		PetalWidth:    0.12,
		PetalCurve:    0.5,
		PetalOverlap:  0.25,
		CoreRadius:    0.08,
		RingCount:     3,
		RingSpacing:   0.1,
		SpiralFactor:  0,
		MirrorPattern: false,
		SeedScale:     1,

		StrokeWidth:   1.5,
		StrokeStyle:   StrokeSolid,
		StrokeOpacity: 1,
		FillOpacity:   0.35,
		HuePhase:      210,
		HueSpread:     90,
		Saturation:    0.6,
		Lightness:     0.55,
		BlendInk:      false,

		SequenceLength: 8,
	}
}
