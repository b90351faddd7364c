package main

import (
	"testing"

	"github.com/lixenwraith/hydrate/config"
	"github.com/lixenwraith/hydrate/hydration"
	"github.com/lixenwraith/hydrate/render"
)

func TestResolveOptions(t *testing.T) {
	cfg, err := config.FromMap(map[string]string{
		"HYDRATE_DURATION_MINUTES": "90",
		"HYDRATE_BODY_VARIANT":     "slim",
	})
	if err != nil {
		t.Fatal(err)
	}

	opts, err := resolveOptions(cfg, 0, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if opts.DurationMinutes != 90 || opts.Variant != hydration.VariantSlim || opts.Mode != render.ModeOutline {
		t.Errorf("Environment not applied: %+v", opts)
	}

	opts, err = resolveOptions(cfg, 500, "muscular", "volume")
	if err != nil {
		t.Fatal(err)
	}
	if opts.DurationMinutes != 240 || opts.Variant != hydration.VariantMuscular || opts.Mode != render.ModeVolume {
		t.Errorf("Flags did not override: %+v", opts)
	}

	for _, bad := range []struct {
		duration   int
		body, mode string
	}{
		{-10, "", ""},
		{0, "tall", ""},
		{0, "", "hologram"},
	} {
		if _, err := resolveOptions(cfg, bad.duration, bad.body, bad.mode); err == nil {
			t.Errorf("Expected error for %+v", bad)
		}
	}
}
