package params

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	p := Default()
	if p.MetalThickness != "1/8" {
		t.Errorf("thickness = %q, want 1/8", p.MetalThickness)
	}
	if p.Voltage != 18 || p.WireSpeed != 200 {
		t.Errorf("got %vV / %v IPM, want 18V / 200 IPM", p.Voltage, p.WireSpeed)
	}
	if p.Tried == nil {
		t.Error("expected empty, non-nil tried map")
	}
}

func TestSetParameterKeepsPreviousOnBadInput(t *testing.T) {
	p := Default()
	tests := []struct {
		name  string
		key   string
		text  string
		wantV float64
		wantW float64
	}{
		{"valid voltage", KeyVoltage, "22", 22, 200},
		{"decimal voltage", KeyVoltage, " 19.5 ", 19.5, 200},
		{"empty voltage", KeyVoltage, "", 18, 200},
		{"garbage voltage", KeyVoltage, "abc", 18, 200},
		{"NaN voltage", KeyVoltage, "NaN", 18, 200},
		{"inf wire speed", KeyWireSpeed, "Inf", 18, 200},
		{"valid wire speed", KeyWireSpeed, "350", 18, 350},
		{"unknown key", "stickOut", "3", 18, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.SetParameter(tt.key, tt.text)
			if got.Voltage != tt.wantV || got.WireSpeed != tt.wantW {
				t.Errorf("SetParameter(%q, %q) = %vV/%v IPM, want %vV/%v IPM",
					tt.key, tt.text, got.Voltage, got.WireSpeed, tt.wantV, tt.wantW)
			}
		})
	}
	if p.Voltage != 18 {
		t.Error("SetParameter must not mutate the receiver")
	}
}

func TestSetParameterThickness(t *testing.T) {
	p := Default().SetParameter(KeyMetalThickness, "3/16")
	if p.MetalThickness != "3/16" {
		t.Errorf("thickness = %q, want 3/16", p.MetalThickness)
	}
	if got := p.SetParameter(KeyMetalThickness, "  "); got.MetalThickness != "3/16" {
		t.Errorf("blank thickness replaced value: %q", got.MetalThickness)
	}
}

func TestToggleTried(t *testing.T) {
	p := Default()
	p1 := p.ToggleTried("clean_surface_thoroughly")
	if !p1.Tried["clean_surface_thoroughly"] {
		t.Fatal("expected id to be tried after first toggle")
	}
	if len(p.Tried) != 0 {
		t.Error("ToggleTried must not mutate the receiver's map")
	}
	p2 := p1.ToggleTried("clean_surface_thoroughly")
	if p2.Tried["clean_surface_thoroughly"] {
		t.Error("expected id to be cleared after second toggle")
	}

	// Ids outside any catalog are accepted.
	p3 := p.ToggleTried("something_custom")
	if !p3.Tried["something_custom"] {
		t.Error("expected unknown id to be added")
	}
}

func TestWithPresetDiscardsManualEdits(t *testing.T) {
	p := Default().SetParameter(KeyVoltage, "25").SetParameter(KeyWireSpeed, "90")
	got := p.WithPreset("1/4", 22, 300)
	want := Parameters{MetalThickness: "1/4", Voltage: 22, WireSpeed: 300, Tried: map[string]bool{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WithPreset mismatch (-want +got):\n%s", diff)
	}
}

func TestTriedIDsSorted(t *testing.T) {
	p := Default().MarkTried("voltage", "a_first", "").ToggleTried("zz")
	p = p.ToggleTried("zz")
	want := []string{"a_first", "voltage"}
	if diff := cmp.Diff(want, p.TriedIDs()); diff != "" {
		t.Errorf("TriedIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	p := New("1/8", 18, 200)
	if got, want := p.Summary(), `1/8" • 18V • 200 IPM`; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	p.Voltage = 18.5
	if got, want := p.Summary(), `1/8" • 18.5V • 200 IPM`; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestThicknessInches(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1/8", 0.125, false},
		{"1/4", 0.25, false},
		{"0.5", 0.5, false},
		{"1/0", 0, true},
		{"a/b", 0, true},
		{"1/2/3", 0, true},
	}
	for _, tt := range tests {
		got, err := ThicknessInches(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ThicknessInches(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ThicknessInches(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
