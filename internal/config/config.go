// Package config reads the description of a dataset schema and of a filter
// pipeline from a TOML document.
//
//	name = "weather"
//	class = "play"
//
//	[[attribute]]
//	name = "temperature"
//	type = "numeric"
//
//	[[attribute]]
//	name = "play"
//	type = "nominal"
//	labels = ["yes", "no"]
//
//	[[filter]]
//	kind = "ros"
//	percent = 30
//	seed = 42
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
	"github.com/chaisql/sift/internal/filter/dedup"
	"github.com/chaisql/sift/internal/filter/enn"
	"github.com/chaisql/sift/internal/filter/ros"
	"github.com/chaisql/sift/internal/neighbor"
	"github.com/chaisql/sift/internal/stream"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Filter kinds.
const (
	KindROS   = "ros"
	KindENN   = "enn"
	KindDedup = "dedup"
)

// Config describes a dataset and the filters to run over it.
type Config struct {
	// Name of the dataset.
	Name string `toml:"name"`
	// Class is the name of the class attribute. Defaults to the last attribute.
	Class      string      `toml:"class"`
	Attributes []Attribute `toml:"attribute"`
	Filters    []Filter    `toml:"filter"`
}

// Attribute describes one column of the dataset.
type Attribute struct {
	Name string `toml:"name"`
	// Type is one of "numeric", "nominal" or "date".
	Type   string   `toml:"type"`
	Labels []string `toml:"labels"`
	// Format is the layout of date attributes.
	Format string `toml:"format"`
}

// Filter describes one stage of the pipeline. Unset fields keep the
// defaults of the filter.
type Filter struct {
	Kind string `toml:"kind"`

	// ros
	Percent *float64 `toml:"percent"`
	Seed    *int64   `toml:"seed"`

	// enn
	K      *int   `toml:"k"`
	Metric string `toml:"metric"`

	// dedup
	Invert   *bool `toml:"invert"`
	UseClass *bool `toml:"use_class"`

	// Options are command line style options, such as ["-P", "30"],
	// applied after the fields above.
	Options []string `toml:"options"`
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %q", path)
	}

	if err := checkUndecoded(md); err != nil {
		return nil, errors.Wrapf(err, "invalid config %q", path)
	}

	return &cfg, nil
}

// Parse reads a configuration from a TOML document.
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := checkUndecoded(md); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}

	return errors.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Schema builds the schema described by the configuration.
func (c *Config) Schema() (*dataset.Schema, error) {
	if len(c.Attributes) == 0 {
		return nil, errors.New("no attribute defined")
	}

	attrs := make([]dataset.Attribute, len(c.Attributes))
	classIndex := len(attrs) - 1
	for i, a := range c.Attributes {
		kind, err := dataset.ParseKind(a.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %q", a.Name)
		}

		switch kind {
		case dataset.KindNominal:
			attrs[i] = dataset.NewNominalAttribute(a.Name, a.Labels...)
		case dataset.KindDate:
			attrs[i] = dataset.NewDateAttribute(a.Name, a.Format)
		default:
			attrs[i] = dataset.NewNumericAttribute(a.Name)
		}

		if c.Class != "" && a.Name == c.Class {
			classIndex = i
		}
	}

	if c.Class != "" && attrs[classIndex].Name != c.Class {
		return nil, errors.Errorf("class attribute %q not found", c.Class)
	}

	return dataset.NewSchema(c.Name, classIndex, attrs...)
}

// Pipeline creates a new stream running the configured filters in order.
// Each call returns new filter instances.
func (c *Config) Pipeline(logger *zap.Logger) (*stream.Stream, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var s stream.Stream
	for i, fc := range c.Filters {
		algo, err := fc.Algorithm()
		if err != nil {
			return nil, errors.Wrapf(err, "filter %d", i)
		}

		s.Pipe(filter.New(algo, filter.WithLogger(logger.With(zap.Int("stage", i)))))
	}

	return &s, nil
}

// Algorithm creates the algorithm described by fc.
func (fc *Filter) Algorithm() (filter.Algorithm, error) {
	var algo filter.Algorithm

	switch strings.ToLower(fc.Kind) {
	case KindROS:
		var opts []ros.Option
		if fc.Percent != nil {
			opts = append(opts, ros.WithPercentage(*fc.Percent))
		}
		if fc.Seed != nil {
			opts = append(opts, ros.WithSeed(*fc.Seed))
		}

		o, err := ros.New(opts...)
		if err != nil {
			return nil, err
		}
		algo = o
	case KindENN:
		var opts []enn.Option
		if fc.K != nil {
			opts = append(opts, enn.WithK(*fc.K))
		}
		if fc.Metric != "" {
			m, err := neighbor.ParseMetric(fc.Metric)
			if err != nil {
				return nil, filter.NewConfigError("metric", fc.Metric, "unknown metric")
			}
			opts = append(opts, enn.WithMetric(m))
		}

		c, err := enn.New(opts...)
		if err != nil {
			return nil, err
		}
		algo = c
	case KindDedup:
		var opts []dedup.Option
		if fc.Invert != nil {
			opts = append(opts, dedup.WithInvert(*fc.Invert))
		}
		if fc.UseClass != nil {
			opts = append(opts, dedup.WithIncludeClass(*fc.UseClass))
		}
		algo = dedup.New(opts...)
	default:
		return nil, errors.Errorf("unknown filter kind %q", fc.Kind)
	}

	if len(fc.Options) > 0 {
		if err := algo.(filter.OptionHandler).SetOptions(fc.Options); err != nil {
			return nil, err
		}
	}

	return algo, nil
}
