package kepler

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _keplerconfig{
		solverTolerance: RootFindingTolerance,
		solverMaxIters:  MaxIterations,
		classifyTol:     eccentricityε,
		outputDir:       ".",
	}
)

// _keplerconfig is a "hidden" struct, just use `keplerConfig`
type _keplerconfig struct {
	solverTolerance float64
	solverMaxIters  uint
	classifyTol     float64
	outputDir       string
}

// keplerConfig returns the propagation configuration. When the KEPLER_CONFIG
// environment variable points at a directory holding a conf.toml, its
// settings override the package defaults; otherwise the defaults apply.
func keplerConfig() _keplerconfig {
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv("KEPLER_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}
	if viper.IsSet("solver.tolerance") {
		config.solverTolerance = viper.GetFloat64("solver.tolerance")
	}
	if viper.IsSet("solver.max_iterations") {
		config.solverMaxIters = uint(viper.GetInt("solver.max_iterations"))
	}
	if viper.IsSet("solver.classification_tolerance") {
		config.classifyTol = viper.GetFloat64("solver.classification_tolerance")
	}
	if viper.IsSet("general.output_path") {
		config.outputDir = viper.GetString("general.output_path")
	}
	cfgLoaded = true
	return config
}
