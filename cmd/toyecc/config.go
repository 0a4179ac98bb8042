package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
	"github.com/smallyu/go-toyecc/internal/log"
	"github.com/smallyu/go-toyecc/pkg/ecc"
)

const envPrefix = "TOYECC"

// Defaults are y^2 = x^3 + 7 over F_223 with G = (15, 86).
const (
	defaultA         = 0
	defaultB         = 7
	defaultPrime     = 223
	defaultGX        = 15
	defaultGY        = 86
	defaultGroup     = curves.NameToy223
	defaultLogLevel  = log.LogLevelError
	defaultLogOutput = "stderr"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"config":     "config",
	"a":          "curve.a",
	"b":          "curve.b",
	"prime":      "curve.prime",
	"gx":         "generator.x",
	"gy":         "generator.y",
	"group":      "group",
	"log-level":  "log.level",
	"log-output": "log.output",
}

type config struct {
	A, B, Prime int64
	GX, GY      int64
	Group       string
	LogLevel    string
	LogOutput   string

	curve *ecc.Curve
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	// For environment variables, curve.prime is TOYECC_CURVE_PRIME
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// load resolves flags, environment and the optional config file, in that
// order of precedence, and initializes logging.
func (c *config) load(v *viper.Viper) error {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	c.A = v.GetInt64("curve.a")
	c.B = v.GetInt64("curve.b")
	c.Prime = v.GetInt64("curve.prime")
	c.GX = v.GetInt64("generator.x")
	c.GY = v.GetInt64("generator.y")
	c.Group = v.GetString("group")
	c.LogLevel = v.GetString("log.level")
	c.LogOutput = v.GetString("log.output")

	switch c.LogLevel {
	case log.LogLevelDebug, log.LogLevelInfo, log.LogLevelWarn, log.LogLevelError:
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if err := log.InitE(c.LogLevel, c.LogOutput, nil); err != nil {
		return err
	}
	log.Debugw("configuration loaded", "a", c.A, "b", c.B, "prime", c.Prime, "group", c.Group)
	return nil
}

// Curve returns the configured curve, building it on first use.
func (c *config) Curve() (*ecc.Curve, error) {
	if c.curve != nil {
		return c.curve, nil
	}
	curve, err := ecc.NewCurve(c.A, c.B, c.Prime)
	if err != nil {
		return nil, kindError(err)
	}
	c.curve = curve
	return curve, nil
}

// Generator returns the configured generator point.
func (c *config) Generator() (ecc.Point, error) {
	curve, err := c.Curve()
	if err != nil {
		return ecc.Point{}, err
	}
	g, err := curve.Point(c.GX, c.GY)
	if err != nil {
		return ecc.Point{}, kindError(err)
	}
	return g, nil
}

// kindError prefixes err with its ecc error kind.
func kindError(err error) error {
	return fmt.Errorf("%s: %w", ecc.KindName(err), err)
}
