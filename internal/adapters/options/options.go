// Package options loads the tool's own settings: how many workers may run
// tasks, how progress is shown and how logs are printed.
package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/composite/internal/adapters/detector"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/zerr"
)

// Keys and the flags bound to them.
const (
	KeyWorkers  = "workers"
	KeyOutput   = "output"
	KeyLogJSON  = "log.json"
	FlagWorkers = "workers"
	FlagOutput  = "output"
	FlagLogJSON = "log-json"
	envPrefix   = "COMPOSITE"
)

// Options are the resolved tool options.
type Options struct {
	Workers int    `mapstructure:"workers"`
	Output  string `mapstructure:"output"`
	Log     Log    `mapstructure:"log"`
}

// Log configures the logger.
type Log struct {
	JSON bool `mapstructure:"json"`
}

// RegisterFlags adds the option flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Int(FlagWorkers, 0, "maximum number of tasks running at once (default: number of CPUs)")
	flags.String(FlagOutput, detector.ValueAuto, "progress display: auto, tui or linear")
	flags.Bool(FlagLogJSON, false, "print logs as JSON")
}

// Load resolves options for the root build in rootDir. Flags that were set
// win over COMPOSITE_* environment variables, which win over
// .composite/config.yaml, which wins over the defaults. flags may be nil.
func Load(rootDir string, flags *pflag.FlagSet) (*Options, error) {
	v := newViper()

	v.SetConfigName(domain.OptionsFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(domain.DefaultToolPath(rootDir))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, wrap(err, filepath.Join(domain.DefaultToolPath(rootDir), domain.OptionsFileName+".yaml"))
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, wrap(err, "flags")
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, wrap(err, "unmarshal")
	}
	if opts.Workers < 1 {
		err := fmt.Errorf("workers must be at least 1, got %d", opts.Workers)
		return nil, wrap(err, KeyWorkers)
	}
	if !detector.Valid(opts.Output) {
		err := fmt.Errorf("unknown output %q", opts.Output)
		return nil, wrap(err, KeyOutput)
	}
	return &opts, nil
}

// LogJSONFromEnv reports whether the environment asks for JSON logs. It lets
// the logger pick its format before the options of a build are loaded.
func LogJSONFromEnv() bool {
	return newViper().GetBool(KeyLogJSON)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyOutput, detector.ValueAuto)
	v.SetDefault(KeyLogJSON, false)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags binds only flags the user set, so an unset flag's zero value
// does not hide the environment or the file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range map[string]string{KeyWorkers: FlagWorkers, KeyOutput: FlagOutput, KeyLogJSON: FlagLogJSON} {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func wrap(err error, source string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrOptionsLoadFailed.Error()), "source", source)
}
