package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/user/patterncard/pkg/geometry"
)

func TestFieldCodecTableHasNoDuplicates(t *testing.T) {
	// The derived lookups silently collapse duplicate fields or aliases, so
	// their sizes must match the table itself.
	if len(fieldAliases) != len(fieldCodecs) {
		t.Errorf("table has %d entries but %d distinct fields", len(fieldCodecs), len(fieldAliases))
	}
	if len(codecByAlias) != len(fieldCodecs) {
		t.Errorf("table has %d entries but %d distinct aliases", len(fieldCodecs), len(codecByAlias))
	}
}

func TestFieldCodecRoundTrip(t *testing.T) {
	// What get emits for one config must write back through set so the same
	// entry serves encode and decode.
	cfg := geometry.Baseline()
	cfg.HullSides = 9
	cfg.MirrorPattern = true
	cfg.HuePhase = 123.456

	for _, fc := range fieldCodecs {
		restored := geometry.Baseline()
		if !fc.set(&restored, fc.get(&cfg)) {
			t.Errorf("%s: set rejected its own get value", fc.field)
			continue
		}
		if got := fc.get(&restored); got != fc.get(&cfg) {
			t.Errorf("%s: round trip produced %v, want %v", fc.field, got, fc.get(&cfg))
		}
	}
}

func TestFieldAliasesAreUnique(t *testing.T) {
	seen := map[string]string{}
	for field, alias := range fieldAliases {
		if len(alias) != 2 {
			t.Errorf("alias %q for %s is not two characters", alias, field)
		}
		if prev, ok := seen[alias]; ok {
			t.Errorf("alias %q assigned to both %s and %s", alias, prev, field)
		}
		seen[alias] = field
	}
}

func TestAliasMapCoversEveryAlias(t *testing.T) {
	m := aliasMap(geometry.Baseline())
	if len(m) != len(fieldAliases) {
		t.Fatalf("aliasMap has %d entries, alias table has %d", len(m), len(fieldAliases))
	}
	for field, alias := range fieldAliases {
		if _, ok := m[alias]; !ok {
			t.Errorf("aliasMap missing alias %q (%s)", alias, field)
		}
	}
}

func TestSetAliasAcceptsEveryAlias(t *testing.T) {
	// Every value aliasMap emits must be writable back through setAlias.
	m := aliasMap(geometry.Baseline())
	for alias, v := range m {
		cfg := geometry.Baseline()
		if !setAlias(&cfg, alias, v) {
			t.Errorf("setAlias rejected alias %q with value %v", alias, v)
		}
	}
}

func TestSetAliasRejectsUnknownAndWrongShape(t *testing.T) {
	cfg := geometry.Baseline()
	if setAlias(&cfg, "zz", 1.0) {
		t.Error("expected unknown alias to be rejected")
	}
	if setAlias(&cfg, "hu", "not a number") {
		t.Error("expected wrong-shaped value to be rejected")
	}
	if setAlias(&cfg, "sf", 1.0) {
		t.Error("expected non-bool for bool field to be rejected")
	}
}

func TestDiffApplyInverse(t *testing.T) {
	base := geometry.Baseline()

	cfg := base
	cfg.HullType = geometry.HullStar
	cfg.HullSides = 5
	cfg.LobeType = geometry.LobeLotus
	cfg.SpiralFactor = 0.125
	cfg.MirrorPattern = true
	cfg.StrokeStyle = geometry.StrokeDashed

	d := diff(cfg, base)
	if len(d) != 6 {
		t.Errorf("expected 6 diff entries, got %v", d)
	}

	if got := apply(base, d); !cmp.Equal(cfg, got) {
		t.Errorf("apply(diff) did not restore config:\n%s", cmp.Diff(cfg, got))
	}
}

func TestDiffIdenticalIsEmpty(t *testing.T) {
	base := geometry.Baseline()
	if d := diff(base, base); len(d) != 0 {
		t.Errorf("expected empty diff, got %v", d)
	}
}

func TestDiffRoundsFloatNoise(t *testing.T) {
	base := geometry.Baseline()
	cfg := base
	// Differences past the third decimal are wire-invisible.
	cfg.HullRadius = base.HullRadius + 0.00001
	if d := diff(cfg, base); len(d) != 0 {
		t.Errorf("expected float noise to round away, got %v", d)
	}
}

func TestRound3(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{5, 5},
		{0.12345, 0.123},
		{0.9996, 1},
		{-0.12345, -0.123},
	}
	for _, c := range cases {
		if got := round3(c.in); got != c.want {
			t.Errorf("round3(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
