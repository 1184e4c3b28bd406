package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

const minimal = `
data:
  source: bars.parquet
indicators:
  - name: sma5
    type: sma
    period: 5
`

func (suite *ConfigTestSuite) TestDefaults() {
	c, err := Parse([]byte(minimal))
	suite.Require().NoError(err)

	suite.Equal(NumDecimal, c.Series.Num)
	suite.Equal(num.DefaultPrecision, c.Series.Precision)
	suite.Equal(DefaultLast, c.Last)
	suite.True(c.Data.StartTime.IsNone())
	suite.True(c.Data.EndTime.IsNone())
	suite.Equal(num.FamilyDecimal, c.NumFactory().Family())

	period, err := c.Period()
	suite.Require().NoError(err)
	suite.True(period.IsNone())
}

func (suite *ConfigTestSuite) TestFullConfig() {
	content := `
data:
  source: sqlite:///tmp/bars.db
  table: candles
  symbol: BTCUSDT
  period: 4h
  start_time: 2024-01-01T00:00:00Z
  end_time: 2024-02-01T00:00:00Z
  limit: 500
series:
  name: btc
  num: double
  max_bar_count: 1000
indicators:
  - name: bb
    type: bb_upper
    period: 20
    multiplier: 2.5
  - name: bb_slope
    type: change
    source: bb
trades:
  - type: sell
    index: 3
  - type: buy
    index: 9
    amount: 2
criteria:
  - net_profit
  - versus:net_return
transaction_fee: 0.001
last: 0
`
	c, err := Parse([]byte(content))
	suite.Require().NoError(err)

	suite.Equal("candles", c.Data.Table)
	suite.Equal(500, c.Data.Limit)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.Data.StartTime.Unwrap())
	suite.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), c.Data.EndTime.Unwrap())
	suite.Equal(num.FamilyDouble, c.NumFactory().Family())
	suite.Equal(1000, c.Series.MaxBarCount)

	period, err := c.Period()
	suite.Require().NoError(err)
	suite.Equal(4*time.Hour, period.Unwrap())

	suite.Equal(2.5, c.Indicators[0].Multiplier)
	suite.Equal("bb", c.Indicators[1].Source)
	suite.Equal(1.0, c.Trades[0].Amount)
	suite.Equal(2.0, c.Trades[1].Amount)
	suite.Equal([]string{"net_profit", "versus:net_return"}, c.Criteria)
	suite.Equal(0.001, c.TransactionFee)
	suite.Equal(DefaultLast, c.Last)
}

func (suite *ConfigTestSuite) TestInvalidConfigs() {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing source",
			content: "indicators: [{name: a, type: sma, period: 2}]",
		},
		{
			name:    "no indicators",
			content: "data: {source: bars.csv}",
		},
		{
			name:    "duplicate indicator name",
			content: "data: {source: bars.csv}\nindicators: [{name: a, type: sma}, {name: a, type: ema}]",
		},
		{
			name:    "unknown num",
			content: "data: {source: bars.csv}\nseries: {num: float}\nindicators: [{name: a, type: sma}]",
		},
		{
			name:    "negative period",
			content: "data: {source: bars.csv}\nindicators: [{name: a, type: sma, period: -1}]",
		},
		{
			name:    "bad duration",
			content: "data: {source: bars.csv, period: soon}\nindicators: [{name: a, type: sma}]",
		},
		{
			name:    "non positive duration",
			content: "data: {source: bars.csv, period: 0s}\nindicators: [{name: a, type: sma}]",
		},
		{
			name:    "inverted range",
			content: "data:\n  source: bars.csv\n  start_time: 2024-02-01T00:00:00Z\n  end_time: 2024-01-01T00:00:00Z\nindicators: [{name: a, type: sma}]",
		},
		{
			name:    "trades do not alternate",
			content: "data: {source: bars.csv}\nindicators: [{name: a, type: sma}]\ntrades: [{type: buy, index: 1}, {type: buy, index: 2}]",
		},
		{
			name:    "trades out of order",
			content: "data: {source: bars.csv}\nindicators: [{name: a, type: sma}]\ntrades: [{type: buy, index: 5}, {type: sell, index: 2}]",
		},
		{
			name:    "fee out of range",
			content: "data: {source: bars.csv}\nindicators: [{name: a, type: sma}]\ntransaction_fee: 1.5",
		},
		{
			name:    "malformed yaml",
			content: "data: [",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := Parse([]byte(tt.content))
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration), err.Error())
		})
	}
}

func (suite *ConfigTestSuite) TestIncompatibleVersion() {
	_, err := Parse([]byte("version: v99.0.0\n" + minimal))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidVersion))
}

func (suite *ConfigTestSuite) TestLoad() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(minimal), 0o600))

	c, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal("bars.parquet", c.Data.Source)

	_, err = Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestSampleIsValid() {
	c, err := Parse([]byte(Sample()))
	suite.Require().NoError(err)
	suite.Len(c.Indicators, 3)
	suite.Len(c.Trades, 2)
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	schemaJSON, err := GenerateSchemaJSON()
	suite.Require().NoError(err)

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schemaJSON), &schema))
	suite.Equal("argo-ta-config", schema["title"])

	properties, ok := schema["properties"].(map[string]any)
	suite.Require().True(ok)
	suite.Contains(properties, "data")
	suite.Contains(properties, "indicators")

	required, ok := schema["required"].([]any)
	suite.Require().True(ok)
	suite.Contains(required, "indicators")

	data, ok := properties["data"].(map[string]any)
	suite.Require().True(ok)
	start, ok := data["properties"].(map[string]any)["start_time"].(map[string]any)
	suite.Require().True(ok)
	suite.Equal("date-time", start["format"])
}
