package numinput

import "math"

// MaxSafeInteger is the largest integer a float64 represents exactly (2^53 - 1).
// Unset bounds default to ±MaxSafeInteger.
const MaxSafeInteger = 1<<53 - 1

// maxPrecision caps the number of fraction digits rendered in the field.
const maxPrecision = 100

// Config defines the configuration of a numeric input widget.
//
// Min and Max are optional. A nil bound means "no bound configured" and is
// replaced by -MaxSafeInteger / MaxSafeInteger. A bound set to zero is a real
// bound.
type Config struct {
	// Lower bound of the value. Nil means -MaxSafeInteger.
	Min *float64 `yaml:"min" mapstructure:"min"`

	// Upper bound of the value. Nil means MaxSafeInteger.
	Max *float64 `yaml:"max" mapstructure:"max"`

	// Amount added or removed by the increment and decrement buttons.
	// Zero means 1.
	Step float64 `yaml:"step" mapstructure:"step"`

	// Number of fraction digits shown in the field.
	Precision int `yaml:"precision" mapstructure:"precision"`

	// Text rendered before and after the number.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
	Suffix string `yaml:"suffix" mapstructure:"suffix"`

	// Initial value. It is clamped into [Min, Max] unless it is NaN.
	Value float64 `yaml:"value" mapstructure:"value"`

	// Disabled and ReadOnly block every mutation path.
	Disabled bool `yaml:"disabled" mapstructure:"disabled"`
	ReadOnly bool `yaml:"readonly" mapstructure:"readonly"`

	// Mobile selects the compact display variant. It has no behavioral effect.
	Mobile bool `yaml:"mobile" mapstructure:"mobile"`
}

// Bound returns a pointer to v, for use as Config.Min or Config.Max.
func Bound(v float64) *float64 {
	return &v
}

// DefaultConfig returns the configuration defaults. Every call returns a fresh
// value; callers may modify it freely.
func DefaultConfig() Config {
	return Config{
		Min:  Bound(-MaxSafeInteger),
		Max:  Bound(MaxSafeInteger),
		Step: 1,
	}
}

// withDefaults merges c over DefaultConfig. The bound pointers are copied so
// the widget never aliases caller memory.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Min != nil {
		d.Min = Bound(*c.Min)
	}
	if c.Max != nil {
		d.Max = Bound(*c.Max)
	}
	if c.Step != 0 {
		d.Step = c.Step
	}
	d.Precision = c.Precision
	d.Prefix = c.Prefix
	d.Suffix = c.Suffix
	d.Value = c.Value
	d.Disabled = c.Disabled
	d.ReadOnly = c.ReadOnly
	d.Mobile = c.Mobile
	return d
}

// Validate reports the first configuration error, or nil.
func (c Config) Validate() error {
	c = c.withDefaults()
	lo, hi := *c.Min, *c.Max
	switch {
	case math.IsNaN(lo) || math.IsInf(lo, 0):
		return &ConfigurationError{Field: "min", Reason: "must be a finite number"}
	case math.IsNaN(hi) || math.IsInf(hi, 0):
		return &ConfigurationError{Field: "max", Reason: "must be a finite number"}
	case lo > hi:
		return &ConfigurationError{Field: "min", Reason: "must not be greater than max"}
	case math.IsNaN(c.Step) || math.IsInf(c.Step, 0) || c.Step < 0:
		return &ConfigurationError{Field: "step", Reason: "must be a positive finite number"}
	case c.Precision < 0 || c.Precision > maxPrecision:
		return &ConfigurationError{Field: "precision", Reason: "must be between 0 and 100"}
	}
	return nil
}
