package pipeline

import (
	"testing"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/terrain"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		view    string
		format  string
		wantErr bool
	}{
		{ViewMap, "svg", false},
		{ViewMap, "png", false},
		{ViewMap, "pdf", false},
		{ViewMap, "dot", true},
		{ViewNeighbors, "dot", false},
		{ViewNeighbors, "svg", false},
		{ViewMap, "SVG", true}, // case-sensitive
		{ViewMap, "", true},
		{"globe", "svg", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.view, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.view, tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats(ViewMap, []string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats(ViewMap, []string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(ViewMap, nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateViewAndJitter(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"map view", ValidateView("map"), false},
		{"neighbors view", ValidateView("neighbors"), false},
		{"unknown view", ValidateView("globe"), true},
		{"uniform jitter", ValidateJitter("uniform"), false},
		{"simplex jitter", ValidateJitter("simplex"), false},
		{"unknown jitter", ValidateJitter("perlin"), true},
		{"empty jitter", ValidateJitter(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", tt.err, tt.wantErr)
			}
			if tt.err != nil && !errors.Is(tt.err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %s, want INVALID_CONFIG", errors.GetCode(tt.err))
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	opts := Options{}
	opts.SetDefaults()

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size should be %vx%v, got %vx%v", DefaultWidth, DefaultHeight, opts.Width, opts.Height)
	}
	if opts.Points != DefaultPoints {
		t.Errorf("Points should be %d, got %d", DefaultPoints, opts.Points)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", DefaultIterations, opts.Iterations)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.CoastStep != terrain.DefaultCoastStep {
		t.Errorf("CoastStep should be %v, got %v", terrain.DefaultCoastStep, opts.CoastStep)
	}
	if opts.ElevationStep != terrain.DefaultElevationStep {
		t.Errorf("ElevationStep should be %v, got %v", terrain.DefaultElevationStep, opts.ElevationStep)
	}
	if opts.Jitter != JitterUniform || opts.View != ViewMap {
		t.Errorf("Jitter/View should be uniform/map, got %s/%s", opts.Jitter, opts.View)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Zero is meaningful for these.
	if opts.Noise != 0 || opts.Rivers != 0 || opts.Threshold != 0 {
		t.Errorf("Noise/Rivers/Threshold should stay zero, got %v/%d/%v", opts.Noise, opts.Rivers, opts.Threshold)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Noise != DefaultNoise {
		t.Errorf("Noise should be %v, got %v", DefaultNoise, opts.Noise)
	}
	if opts.Rivers != DefaultRivers {
		t.Errorf("Rivers should be %d, got %d", DefaultRivers, opts.Rivers)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("DefaultOptions should validate: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		code   errors.Code
	}{
		{"negative width", func(o *Options) { o.Width = -1 }, errors.ErrCodeInvalidInput},
		{"too few points", func(o *Options) { o.Points = 2 }, errors.ErrCodeInvalidInput},
		{"negative iterations", func(o *Options) { o.Iterations = -1 }, errors.ErrCodeInvalidInput},
		{"unknown jitter", func(o *Options) { o.Jitter = "perlin" }, errors.ErrCodeInvalidConfig},
		{"negative rivers", func(o *Options) { o.Rivers = -1 }, errors.ErrCodeInvalidConfig},
		{"negative river steps", func(o *Options) { o.MaxRiverSteps = -1 }, errors.ErrCodeInvalidConfig},
		{"negative scale", func(o *Options) { o.Scale = -2 }, errors.ErrCodeInvalidConfig},
		{"dot on map", func(o *Options) { o.Formats = []string{"dot"} }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsStageOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Fill = true
	opts.Threshold = 120
	opts.SeaLevel = 2
	opts.MaxRiverSteps = 50

	coast := opts.CoastOptions()
	if !coast.Fill || coast.Noise != 1 || coast.Threshold != 120 || coast.StepSize != 20 {
		t.Errorf("CoastOptions() = %+v", coast)
	}
	elev := opts.ElevationOptions()
	if elev.StepSize != 10 || elev.SeaLevel != 2 {
		t.Errorf("ElevationOptions() = %+v", elev)
	}
	rivers := opts.RiverOptions()
	if rivers.Count != 5 || rivers.MaxSteps != 50 {
		t.Errorf("RiverOptions() = %+v", rivers)
	}

	if _, ok := opts.NewJitter(terrain.NewSource(1)).(terrain.UniformJitter); !ok {
		t.Error("uniform jitter expected by default")
	}
	opts.Jitter = JitterSimplex
	if _, ok := opts.NewJitter(nil).(*terrain.SimplexJitter); !ok {
		t.Error("simplex jitter expected")
	}
}
