// Package yaml loads cssdocs options from a YAML configuration file.
//
// A file holds top-level option keys and an optional set of named aliases,
// each a partial set of the same keys:
//
//	output: data/css.json
//	paths: [css/properties]
//	aliases:
//	  full:
//	    paths: [css/properties, css/selectors, css/functions]
//	    sort: true
package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/fwojciec/cssdocs"
	"gopkg.in/yaml.v3"
)

// Settings is a partial set of options. Nil fields are left unchanged when
// applied.
type Settings struct {
	Output                *string  `yaml:"output"`
	Paths                 []string `yaml:"paths"`
	ExcludeVendorPrefixed *bool    `yaml:"exclude_vendor_prefixed"`
	LowercaseKeys         *bool    `yaml:"lowercase_keys"`
	Sort                  *bool    `yaml:"sort"`
	AddProtocol           *bool    `yaml:"add_protocol"`
	Locale                *string  `yaml:"locale"`
	Markdown              *bool    `yaml:"markdown"`
	PropertiesQuery       *string  `yaml:"properties_query"`
	ValuesQuery           *string  `yaml:"values_query"`
}

// Apply copies every set field onto opts.
func (s *Settings) Apply(opts *cssdocs.Options) {
	if s == nil {
		return
	}
	setString(&opts.Output, s.Output)
	if s.Paths != nil {
		opts.Paths = append([]string(nil), s.Paths...)
	}
	setBool(&opts.ExcludeVendorPrefixed, s.ExcludeVendorPrefixed)
	setBool(&opts.LowercaseKeys, s.LowercaseKeys)
	setBool(&opts.Sort, s.Sort)
	setBool(&opts.AddProtocol, s.AddProtocol)
	setString(&opts.Locale, s.Locale)
	setBool(&opts.Markdown, s.Markdown)
	setString(&opts.Queries.Properties, s.PropertiesQuery)
	setString(&opts.Queries.Values, s.ValuesQuery)
}

// Config is a parsed configuration file.
type Config struct {
	Settings `yaml:",inline"`
	Aliases  map[string]*Settings `yaml:"aliases"`
}

// Load reads and parses the file at path. Environment variables in the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cssdocs.Errorf(cssdocs.ECONFIG, "configuration file not found: %s", path)
	} else if err != nil {
		return nil, cssdocs.Errorf(cssdocs.ECONFIG, "read config file: %v", err)
	}
	return Parse(data)
}

// Parse parses configuration from data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var config Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, cssdocs.Errorf(cssdocs.ECONFIG, "parse config file: %v", err)
	}
	return &config, nil
}

// Apply applies the top-level settings to opts, then the named alias when
// alias is not empty.
func (c *Config) Apply(opts *cssdocs.Options, alias string) error {
	c.Settings.Apply(opts)
	if alias == "" {
		return nil
	}
	s, ok := c.Aliases[alias]
	if !ok {
		return cssdocs.Errorf(cssdocs.ECONFIG, "unknown alias %q (available: %s)", alias, strings.Join(c.AliasNames(), ", "))
	}
	s.Apply(opts)
	return nil
}

// AliasNames returns the defined alias names in sorted order.
func (c *Config) AliasNames() []string {
	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
