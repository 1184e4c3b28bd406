package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/version"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"gopkg.in/yaml.v3"
)

const (
	NumDouble  = "double"
	NumDecimal = "decimal"

	// DefaultLast is the number of trailing bars reported when last is unset.
	DefaultLast = 10
)

// Config describes one evaluation: where the bars come from, how the series
// is built, which indicators to compute and which trades to analyze.
type Config struct {
	Version    string      `yaml:"version" json:"version,omitempty" jsonschema:"title=Version,description=Engine version the file was written for"`
	Data       Data        `yaml:"data" json:"data" jsonschema:"title=Data,description=Market data source,required"`
	Series     Series      `yaml:"series" json:"series,omitempty" jsonschema:"title=Series,description=Bar series settings"`
	Indicators []Indicator `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators,description=Indicators evaluated in order,required" validate:"required,min=1,unique=Name,dive"`
	Trades     []Trade     `yaml:"trades" json:"trades,omitempty" jsonschema:"title=Trades,description=Alternating entry and exit trades analyzed by the criteria" validate:"dive"`
	Criteria   []string    `yaml:"criteria" json:"criteria,omitempty" jsonschema:"title=Criteria,description=Analysis criteria computed over the trades (prefix with versus: to compare with buy and hold)"`
	// TransactionFee is the linear fee ratio applied to every trade.
	TransactionFee float64 `yaml:"transaction_fee" json:"transaction_fee,omitempty" jsonschema:"title=Transaction Fee,description=Fee as a fraction of the traded value,minimum=0" validate:"gte=0,lt=1"`
	Last           int     `yaml:"last" json:"last,omitempty" jsonschema:"title=Last,description=Number of trailing bars to report,minimum=0" validate:"gte=0"`
}

// Data selects the bars to load.
type Data struct {
	Source string `yaml:"source" json:"source" jsonschema:"title=Source,description=Parquet or CSV path or a duckdb:// sqlite:// postgres:// URL,required" validate:"required"`
	Table  string `yaml:"table" json:"table,omitempty" jsonschema:"title=Table,description=Table queried for database sources"`
	Symbol string `yaml:"symbol" json:"symbol,omitempty" jsonschema:"title=Symbol,description=Only load rows with this symbol"`
	// Period is a Go duration such as 1m or 4h; it is inferred from the data when empty.
	Period    string                     `yaml:"period" json:"period,omitempty" jsonschema:"title=Period,description=Bar period as a duration (e.g. 1m or 4h)"`
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time,omitempty" jsonschema:"title=Start Time,description=Optional start of the loaded range"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time,omitempty" jsonschema:"title=End Time,description=Optional end of the loaded range"`
	Limit     int                        `yaml:"limit" json:"limit,omitempty" jsonschema:"title=Limit,description=Only load the most recent rows,minimum=0" validate:"gte=0"`
}

// UnmarshalYAML implements custom unmarshaling for Data
func (d *Data) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type data struct {
		Source    string     `yaml:"source"`
		Table     string     `yaml:"table"`
		Symbol    string     `yaml:"symbol"`
		Period    string     `yaml:"period"`
		StartTime *time.Time `yaml:"start_time"`
		EndTime   *time.Time `yaml:"end_time"`
		Limit     int        `yaml:"limit"`
	}

	var raw data
	if err := unmarshal(&raw); err != nil {
		return err
	}

	d.Source = raw.Source
	d.Table = raw.Table
	d.Symbol = raw.Symbol
	d.Period = raw.Period
	d.Limit = raw.Limit
	d.StartTime = optional.None[time.Time]()
	if raw.StartTime != nil {
		d.StartTime = optional.Some(*raw.StartTime)
	}

	d.EndTime = optional.None[time.Time]()
	if raw.EndTime != nil {
		d.EndTime = optional.Some(*raw.EndTime)
	}

	return nil
}

// Series configures the BarSeries built from the loaded bars.
type Series struct {
	Name        string `yaml:"name" json:"name,omitempty" jsonschema:"title=Name,description=Series name"`
	Num         string `yaml:"num" json:"num,omitempty" jsonschema:"title=Num,description=Numeric backing of the series,enum=double,enum=decimal" validate:"omitempty,oneof=double decimal"`
	Precision   int    `yaml:"precision" json:"precision,omitempty" jsonschema:"title=Precision,description=Significant digits of decimal nums,minimum=0" validate:"gte=0"`
	MaxBarCount int    `yaml:"max_bar_count" json:"max_bar_count,omitempty" jsonschema:"title=Max Bar Count,description=Bars retained in memory (0 keeps all),minimum=0" validate:"gte=0"`
}

// Indicator configures one registry indicator.
type Indicator struct {
	Name string `yaml:"name" json:"name" jsonschema:"title=Name,description=Column name of the indicator,required" validate:"required"`
	Type string `yaml:"type" json:"type" jsonschema:"title=Type,description=Registry name of the indicator (e.g. sma or rsi),required" validate:"required"`
	// Source is a price field or the name of an indicator declared earlier.
	Source     string  `yaml:"source" json:"source,omitempty" jsonschema:"title=Source,description=Price field or earlier indicator name (defaults to close)"`
	Period     int     `yaml:"period" json:"period,omitempty" jsonschema:"title=Period,minimum=0" validate:"gte=0"`
	Period2    int     `yaml:"period2" json:"period2,omitempty" jsonschema:"title=Second Period,minimum=0" validate:"gte=0"`
	Period3    int     `yaml:"period3" json:"period3,omitempty" jsonschema:"title=Third Period,minimum=0" validate:"gte=0"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier,omitempty" jsonschema:"title=Multiplier,description=Band width multiplier"`
}

// Trade is one entry or exit priced at the close of the bar at Index.
type Trade struct {
	Type   string  `yaml:"type" json:"type" jsonschema:"title=Type,enum=buy,enum=sell,required" validate:"required,oneof=buy sell"`
	Index  int     `yaml:"index" json:"index" jsonschema:"title=Index,description=Absolute bar index,minimum=0" validate:"gte=0"`
	Amount float64 `yaml:"amount" json:"amount,omitempty" jsonschema:"title=Amount,description=Traded amount (defaults to 1),minimum=0" validate:"gte=0"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(content)
}

// Parse decodes YAML content, applies defaults and validates the result.
func Parse(content []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Series.Num == "" {
		c.Series.Num = NumDecimal
	}

	if c.Series.Precision == 0 {
		c.Series.Precision = num.DefaultPrecision
	}

	if c.Last == 0 {
		c.Last = DefaultLast
	}

	for i := range c.Trades {
		if c.Trades[i].Amount == 0 {
			c.Trades[i].Amount = 1
		}
	}
}

// Validate checks struct constraints and the fields validator tags can not express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := version.CheckCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if _, err := c.Period(); err != nil {
		return err
	}

	if c.Data.StartTime.IsSome() && c.Data.EndTime.IsSome() && c.Data.EndTime.Unwrap().Before(c.Data.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "invalid config: end_time is before start_time")
	}

	for i := 1; i < len(c.Trades); i++ {
		if c.Trades[i].Type == c.Trades[i-1].Type {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid config: trade %d repeats %s, trades must alternate", i, c.Trades[i].Type)
		}

		if c.Trades[i].Index < c.Trades[i-1].Index {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid config: trade %d at index %d precedes index %d", i, c.Trades[i].Index, c.Trades[i-1].Index)
		}
	}

	return nil
}

// Period parses the configured bar period; None means infer it from the data.
func (c *Config) Period() (optional.Option[time.Duration], error) {
	if c.Data.Period == "" {
		return optional.None[time.Duration](), nil
	}

	period, err := time.ParseDuration(c.Data.Period)
	if err != nil {
		return optional.None[time.Duration](), errors.Wrap(errors.ErrCodeInvalidConfiguration, fmt.Sprintf("invalid config: period %q", c.Data.Period), err)
	}

	if period <= 0 {
		return optional.None[time.Duration](), errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid config: period must be positive, got %s", period)
	}

	return optional.Some(period), nil
}

// NumFactory returns the factory selected by the series settings.
func (c *Config) NumFactory() num.NumFactory {
	if c.Series.Num == NumDouble {
		return num.DoubleNumFactory()
	}

	precision := c.Series.Precision
	if precision == 0 {
		precision = num.DefaultPrecision
	}

	return num.DecimalNumFactory(precision)
}
