package augment

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// gainTransitionFile mirrors the YAML document. Pointers distinguish absent
// keys from zero values.
type gainTransitionFile struct {
	MinGainDB    *float64 `yaml:"min_gain_db"`
	MaxGainDB    *float64 `yaml:"max_gain_db"`
	MinGainInDB  *float64 `yaml:"min_gain_in_db"`
	MaxGainInDB  *float64 `yaml:"max_gain_in_db"`
	MinDuration  *float64 `yaml:"min_duration"`
	MaxDuration  *float64 `yaml:"max_duration"`
	DurationUnit *string  `yaml:"duration_unit"`
	P            *float64 `yaml:"p"`
}

// LoadGainTransitionConfig reads a YAML gain transition configuration from r.
//
// Absent keys take their defaults. The deprecated min_gain_in_db and
// max_gain_in_db keys are accepted in place of min_gain_db and max_gain_db,
// with a warning on log; giving both spellings of the same bound is an error.
// The returned config has been validated.
func LoadGainTransitionConfig(r io.Reader, log logrus.FieldLogger) (GainTransitionConfig, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var f gainTransitionFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return GainTransitionConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	cfg := DefaultGainTransitionConfig()

	var err error
	if cfg.MinGainDB, err = resolveDeprecated(log, "min_gain_db", f.MinGainDB, "min_gain_in_db", f.MinGainInDB, cfg.MinGainDB); err != nil {
		return GainTransitionConfig{}, err
	}
	if cfg.MaxGainDB, err = resolveDeprecated(log, "max_gain_db", f.MaxGainDB, "max_gain_in_db", f.MaxGainInDB, cfg.MaxGainDB); err != nil {
		return GainTransitionConfig{}, err
	}

	if f.MinDuration != nil {
		cfg.MinDuration = *f.MinDuration
	}
	if f.MaxDuration != nil {
		cfg.MaxDuration = *f.MaxDuration
	}
	if f.DurationUnit != nil {
		cfg.DurationUnit = DurationUnit(*f.DurationUnit)
	}
	if f.P != nil {
		cfg.P = *f.P
	}

	if err := cfg.Validate(); err != nil {
		return GainTransitionConfig{}, err
	}
	return cfg, nil
}

// ParseGainTransitionConfig is LoadGainTransitionConfig over a byte slice.
func ParseGainTransitionConfig(data []byte, log logrus.FieldLogger) (GainTransitionConfig, error) {
	return LoadGainTransitionConfig(bytes.NewReader(data), log)
}

func resolveDeprecated(log logrus.FieldLogger, key string, current *float64, legacyKey string, legacy *float64, def float64) (float64, error) {
	switch {
	case current != nil && legacy != nil:
		return 0, fmt.Errorf("%w: passing both %s and %s is not supported, use only %s",
			ErrInvalidConfiguration, key, legacyKey, key)
	case current != nil:
		return *current, nil
	case legacy != nil:
		log.WithFields(logrus.Fields{
			"key":         legacyKey,
			"replacement": key,
		}).Warn("deprecated configuration key")
		return *legacy, nil
	default:
		return def, nil
	}
}
