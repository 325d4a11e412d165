package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/dfrxsec/internal/constants"
	"github.com/wildstyl3r/dfrxsec/internal/utils"
)

var (
	ErrMissingParameter = errors.New("config: parameter found neither in local nor in global registry")
	ErrNoRuns           = errors.New("config: no runs provided")
	ErrUnknownRun       = errors.New("config: unknown run")
	ErrUnits            = errors.New("config: unit conflict")
	ErrAmbiguous        = errors.New("config: ambiguous run parameters")
	ErrMissingDeps      = errors.New("config: required dependent parameters not found")
)

// Registry is a flat name to value mapping of numeric model parameters.
type Registry map[string]float64

// ParameterStore is the two-level lookup the cross-section algorithms are
// configured from.
type ParameterStore interface {
	Local(name string) (float64, bool)
	Global(name string) (float64, bool)
}

// Resolver pairs an algorithm-local registry with the shared global one.
type Resolver struct {
	LocalRegistry  Registry
	GlobalRegistry Registry
}

func (r Resolver) Local(name string) (float64, bool) {
	v, ok := r.LocalRegistry[name]
	return v, ok
}

func (r Resolver) Global(name string) (float64, bool) {
	v, ok := r.GlobalRegistry[name]
	return v, ok
}

// Resolve returns the local value of localName if present, else the global
// value of globalName.
func Resolve(store ParameterStore, localName, globalName string) (float64, error) {
	if v, ok := store.Local(localName); ok {
		return v, nil
	}
	if v, ok := store.Global(globalName); ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q (global %q)", ErrMissingParameter, localName, globalName)
}

var defaultGlobals = Registry{
	"DFR-Ma":   1.0, // [GeV]
	"DFR-Beta": 7.0, // [GeV^-2]
}

type Config struct {
	OutputDir  string
	Global     Registry
	Algorithms map[string]Registry
	Runs       map[string]RunParameters
	RunParameters

	InputUnits  []string
	OutputUnits []string

	isDefinedMap map[string]struct{}
	meta         toml.MetaData
}

type RunParameters struct {
	Algorithm   string
	Energies    []float64 // [GeV]
	EnergyMin   float64   // [GeV]
	EnergyMax   float64   // [GeV]
	EnergySteps int

	Z           int
	N           int
	HitNucleon  string // "p" or "n"
	FreeNucleon bool

	Integrator string // "grid" or "gauss"
	NX         int
	NY         int
	GaussNodes int
	Threads    int
	LeptonMass float64 // [GeV]

	PionTable  string // "fit", two-column text file or LXCat file
	PionCharge int
	SliceX     float64

	MakeDir bool
}

// Default returns a configuration holding only the built-in global registry.
func Default() Config {
	global := make(Registry, len(defaultGlobals))
	for k, v := range defaultGlobals {
		global[k] = v
	}
	return Config{
		Global:       global,
		Algorithms:   map[string]Registry{},
		Runs:         map[string]RunParameters{},
		InputUnits:   slices.Clone(defaultUnits),
		OutputUnits:  slices.Clone(defaultUnits),
		isDefinedMap: map[string]struct{}{},
	}
}

func (c *Config) isDefined(path []string) bool {
	if _, sureDefined := c.isDefinedMap[strings.Join(path, "#")]; sureDefined {
		return true
	} else {
		return c.meta.IsDefined(path...)
	}
}

// Store returns the parameter store of the named algorithm.
func (c *Config) Store(algorithm string) ParameterStore {
	return Resolver{LocalRegistry: c.Algorithms[algorithm], GlobalRegistry: c.Global}
}

// AddRun registers a run built outside of the configuration file; fields
// lists the parameters that count as locally defined.
func (c *Config) AddRun(name string, run RunParameters, fields ...string) {
	if c.Runs == nil {
		c.Runs = map[string]RunParameters{}
	}
	if c.isDefinedMap == nil {
		c.isDefinedMap = map[string]struct{}{}
	}
	c.Runs[name] = run
	for _, field := range fields {
		c.isDefinedMap[strings.Join([]string{"Runs", name, field}, "#")] = struct{}{}
	}
}

func LoadConfig(configFileName string) (Config, error) {
	config := Default()
	meta, err := toml.DecodeFile(strings.TrimSuffix(configFileName, ".toml")+".toml", &config)
	if err != nil {
		return config, err
	}
	config.meta = meta
	for name, value := range defaultGlobals {
		if _, some := config.Global[name]; !some {
			config.Global[name] = value
		}
	}

	var unitsConflict []string
	config.InputUnits, unitsConflict = checkUnits(config.InputUnits)
	if len(unitsConflict) > 0 {
		return config, fmt.Errorf("%w: input units %v", ErrUnits, unitsConflict)
	}
	if len(config.OutputUnits) == 0 {
		config.OutputUnits = config.InputUnits
	}
	config.OutputUnits, unitsConflict = checkUnits(config.OutputUnits)
	if len(unitsConflict) > 0 {
		return config, fmt.Errorf("%w: output units %v", ErrUnits, unitsConflict)
	}

	if len(config.Runs) == 0 {
		return config, ErrNoRuns
	}
	return config, nil
}

var defaultValues = map[string]any{ // natural units
	"Algorithm":   "ReinDFR",
	"Energies":    []float64{1, 2, 5, 10, 20, 50, 100},
	"Z":           1,
	"N":           0,
	"HitNucleon":  "p",
	"FreeNucleon": false,
	"Integrator":  "grid",
	"NX":          300,
	"NY":          300,
	"GaussNodes":  64,
	"Threads":     1,
	"LeptonMass":  constants.MuonMass,
	"PionTable":   "fit",
	"PionCharge":  0,
	"SliceX":      0.1,
	"MakeDir":     true,
}

var fieldsXor = map[string][]string{
	"Energies":  {"EnergyMin"},
	"EnergyMin": {"Energies"},
}

var fieldsAnd = map[string][]string{
	"EnergyMin": {"EnergyMax", "EnergySteps"},
}

var valueUnits = map[string][]UnitElement{
	"Energies":   {{Class: Energy, Power: 1}},
	"EnergyMin":  {{Class: Energy, Power: 1}},
	"EnergyMax":  {{Class: Energy, Power: 1}},
	"LeptonMass": {{Class: Energy, Power: 1}},
}

func (rp *RunParameters) toNatural(parameterNames, units []string) {
	rpReflect := reflect.ValueOf(rp).Elem()
	for _, name := range parameterNames {
		classes, some := valueUnits[name]
		if !some {
			continue
		}
		field := rpReflect.FieldByName(name)
		switch {
		case field.CanFloat():
			field.SetFloat(Natural(field.Float(), classes, units, true))
		case field.Kind() == reflect.Slice:
			converted := make([]float64, field.Len())
			for i := range converted {
				converted[i] = Natural(field.Index(i).Float(), classes, units, true)
			}
			field.Set(reflect.ValueOf(converted))
		}
	}
}

/*
field value priority:
1. local (Runs.<name>)
2. global (top level)
3. default
a field defined at a higher level excludes its xor alternatives from the lower ones
*/

// Unify resolves the parameters of the named run and converts them to
// natural units.
func (c *Config) Unify(runName string) (RunParameters, error) {
	run, some := c.Runs[runName]
	if !some {
		return run, fmt.Errorf("%w: %q", ErrUnknownRun, runName)
	}

	var discoveredParameters []string
	excluded := map[string]struct{}{}

	runReflect := reflect.ValueOf(&run).Elem()
	runType := runReflect.Type()
	for i := range runReflect.NumField() {
		fieldName := runType.Field(i).Name
		if c.isDefined([]string{"Runs", runName, fieldName}) {
			discoveredParameters = append(discoveredParameters, fieldName)
			for _, x := range fieldsXor[fieldName] {
				excluded[x] = struct{}{}
			}
		}
	}
	for _, field := range discoveredParameters {
		for _, x := range fieldsXor[field] {
			if slices.Contains(discoveredParameters, x) {
				return run, fmt.Errorf("%w: %s and %s in run %q", ErrAmbiguous, field, x, runName)
			}
		}
	}

	globalReflect := reflect.ValueOf(&c.RunParameters).Elem()
	for i := range globalReflect.NumField() {
		fieldName := runType.Field(i).Name
		if _, x := excluded[fieldName]; x || slices.Contains(discoveredParameters, fieldName) {
			continue
		}
		if c.isDefined([]string{fieldName}) {
			runReflect.Field(i).Set(globalReflect.Field(i))
			discoveredParameters = append(discoveredParameters, fieldName)
			for _, xAlternative := range fieldsXor[fieldName] {
				excluded[xAlternative] = struct{}{}
			}
		}
	}

	run.toNatural(discoveredParameters, c.InputUnits)

	for fieldName, value := range defaultValues {
		if _, x := excluded[fieldName]; !x && !slices.Contains(discoveredParameters, fieldName) {
			if energies, isSlice := value.([]float64); isSlice {
				value = slices.Clone(energies)
			}
			runReflect.FieldByName(fieldName).Set(reflect.ValueOf(value))
			discoveredParameters = append(discoveredParameters, fieldName)
		}
	}

	var missing []string
	for _, field := range discoveredParameters {
		for _, requirement := range fieldsAnd[field] {
			if !slices.Contains(discoveredParameters, requirement) {
				missing = append(missing, requirement)
			}
		}
	}
	if len(missing) > 0 {
		return run, fmt.Errorf("%w: %v in run %q", ErrMissingDeps, missing, runName)
	}

	if slices.Contains(discoveredParameters, "EnergyMin") {
		switch {
		case run.EnergySteps < 1:
			return run, fmt.Errorf("%w: EnergySteps = %d in run %q", ErrMissingDeps, run.EnergySteps, runName)
		case run.EnergySteps == 1:
			run.Energies = []float64{run.EnergyMin}
		default:
			run.Energies = floats.Span(make([]float64, run.EnergySteps), run.EnergyMin, run.EnergyMax)
		}
	}
	if run.Threads < 1 {
		run.Threads = 1
	}
	return run, nil
}

// RunNames returns the run names in natural order.
func (c *Config) RunNames() []string {
	names := make([]string, 0, len(c.Runs))
	for name := range c.Runs {
		names = append(names, name)
	}
	utils.NaturalSort(names)
	return names
}
