package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"left": {"in1": 10, "in2": 11, "enable": 12}}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Left.In1 != 10 || cfg.Left.Enable != 12 {
		t.Errorf("Expected left motor pins to be kept, got %+v", cfg.Left)
	}
	if cfg.Left.CycleTicks != 600 || cfg.Right.CycleTicks != 600 {
		t.Errorf("Expected default cycle ticks 600, got %d/%d", cfg.Left.CycleTicks, cfg.Right.CycleTicks)
	}
	if cfg.Battery.ReferenceMillivolts != 3300 {
		t.Errorf("Expected reference 3300mV, got %d", cfg.Battery.ReferenceMillivolts)
	}
	if cfg.Battery.DividerNum != 4 || cfg.Battery.DividerDen != 1 {
		t.Errorf("Expected 4/1 divider, got %d/%d", cfg.Battery.DividerNum, cfg.Battery.DividerDen)
	}
	if cfg.Battery.Samples != 4 || cfg.Battery.CutoffCount != 3 {
		t.Errorf("Unexpected sampling defaults: %+v", cfg.Battery)
	}
	if cfg.Display.Width != 16 || cfg.Display.Height != 2 {
		t.Errorf("Expected 16x2 display, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"battery": {"divider_num": 3, "divider_den": 2, "samples": 8, "cutoff_millivolts": 5500}}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Battery.DividerNum != 3 || cfg.Battery.DividerDen != 2 {
		t.Errorf("Expected 3/2 divider, got %d/%d", cfg.Battery.DividerNum, cfg.Battery.DividerDen)
	}
	if cfg.Battery.Samples != 8 || cfg.Battery.CutoffMillivolts != 5500 {
		t.Errorf("Explicit battery values overwritten: %+v", cfg.Battery)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	if _, err := LoadConfig([]byte(`{"left": `)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Left.Enable == cfg.Right.Enable {
		t.Error("Left and right motors share an enable pin")
	}
	if cfg.Battery.CutoffMillivolts == 0 {
		t.Error("Expected default config to enable the cutoff")
	}
}
