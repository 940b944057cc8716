package config

// Presets holds named scenarios for five of the built-in systems
// (lorenz has none), at parameters chosen to be forgiving of a first run
// (short enough to finish quickly, loose enough tolerances to always
// converge).
var Presets = map[string]map[string]*Scenario{
	"quadratic": {
		"default": {
			System: "quadratic", ScalarFam: "float64", Order: 12,
			Dt0: 0.01, Tmax: 20.0, AbsTol: 1e-12, RelTol: 0,
			MaxSteps:  DefaultMaxStep,
			InitState: InitStateConfig{X0: 1.0},
		},
	},
	"constant_drift": {
		"default": {
			System: "constant_drift", ScalarFam: "float64", Order: 4,
			Dt0: 0.1, Tmax: 10.0, AbsTol: 1e-9, RelTol: 0,
			MaxSteps:  DefaultMaxStep,
			InitState: InitStateConfig{X0: 0.0},
		},
	},
	"pendulum": {
		"small_angle": {
			System: "pendulum", ScalarFam: "float64", Order: 16,
			Dt0: 0.01, Tmax: 20.0, AbsTol: 1e-11, RelTol: 0,
			MaxSteps:  DefaultMaxStep,
			InitState: InitStateConfig{Theta0: 0.2, Omega0: 0.0},
		},
		"large_swing": {
			System: "pendulum", ScalarFam: "float64", Order: 16,
			Dt0: 0.01, Tmax: 20.0, AbsTol: 1e-11, RelTol: 0,
			MaxSteps:  DefaultMaxStep,
			InitState: InitStateConfig{Theta0: 2.5, Omega0: 0.0},
			Variational: VariationalConfig{Enabled: true, ReorthInterval: 2.0, UseMGS: true},
		},
	},
	"complex_oscillator": {
		"default": {
			System: "complex_oscillator", ScalarFam: "complex128", Order: 12,
			Dt0: 0.02, Tmax: 10.0, AbsTol: 1e-10, RelTol: 0,
			MaxSteps:  DefaultMaxStep,
			InitState: InitStateConfig{X0: 1.0, V0: 0.0},
		},
	},
	"kepler": {
		"circular": {
			System: "kepler", ScalarFam: "float64", Order: 20,
			Dt0: 0.001, Tmax: 6.283185307179586, AbsTol: 1e-13, RelTol: 0,
			MaxSteps:  DefaultMaxStep,
			InitState: InitStateConfig{PosX: 1.0, PosY: 0.0, VelX: 0.0, VelY: 1.0},
			Variational: VariationalConfig{Enabled: true, ReorthInterval: 1.0, UseMGS: true},
		},
	},
}

func GetPreset(system, preset string) *Scenario {
	byName, ok := Presets[system]
	if !ok {
		return nil
	}
	sc, ok := byName[preset]
	if !ok {
		return nil
	}
	return sc
}

func ListPresets(system string) []string {
	byName, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
