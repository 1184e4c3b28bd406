package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-ta/internal/config"
	"github.com/rxtech-lab/argo-ta/internal/evaluator"
	"github.com/rxtech-lab/argo-ta/internal/version"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type TaCmdTestSuite struct {
	suite.Suite
	tempDir string
	out     *bytes.Buffer
}

func TestTaCmdSuite(t *testing.T) {
	suite.Run(t, new(TaCmdTestSuite))
}

func (suite *TaCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.out = &bytes.Buffer{}
}

func (suite *TaCmdTestSuite) run(args ...string) error {
	app := newApp()
	app.Writer = suite.out

	return app.Run(context.Background(), append([]string{"ta"}, args...))
}

// writeBars writes n one-minute bars with closes 1..n to a parquet file.
func (suite *TaCmdTestSuite) writeBars(n int) string {
	path := filepath.Join(suite.tempDir, "bars.parquet")

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	suite.Require().NoError(err)

	base := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := float64(i + 1)
		_, err = db.Exec(`INSERT INTO market_data VALUES (?, ?, ?, ?, ?, ?, ?)`,
			base.Add(time.Duration(i)*time.Minute), "AAPL", c, c, c, c, 100.0)
		suite.Require().NoError(err)
	}

	_, err = db.Exec(fmt.Sprintf(`COPY market_data TO '%s' (FORMAT PARQUET)`, path))
	suite.Require().NoError(err)

	return path
}

func (suite *TaCmdTestSuite) writeConfig(source string) string {
	path := filepath.Join(suite.tempDir, "config.yaml")
	content := fmt.Sprintf(`
data:
  source: %s
  symbol: AAPL
indicators:
  - name: sma2
    type: sma
    period: 2
trades:
  - type: buy
    index: 0
  - type: sell
    index: 3
criteria:
  - net_profit
last: 2
`, source)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *TaCmdTestSuite) TestEvalTable() {
	configPath := suite.writeConfig(suite.writeBars(4))

	suite.Require().NoError(suite.run("eval", "--config", configPath))

	out := suite.out.String()
	suite.Contains(out, "AAPL: 4 bars [0, 3]")
	suite.Contains(out, "sma2")
	suite.Contains(out, "3.5")
	suite.Contains(out, "net_profit")
	suite.Contains(out, "1 closed positions")
}

func (suite *TaCmdTestSuite) TestEvalYAMLWithMetrics() {
	configPath := suite.writeConfig(suite.writeBars(4))

	suite.Require().NoError(suite.run("eval", "-c", configPath, "--format", "yaml"))

	var report evaluator.Report
	suite.Require().NoError(yaml.Unmarshal(suite.out.Bytes(), &report))
	suite.Equal(4, report.Bars)
	suite.Require().Len(report.Rows, 2)
	suite.Equal("3.5", report.Rows[1].Values[0].Value)
	suite.Equal([]evaluator.Score{{Name: "net_profit", Value: "3"}}, report.Scores)

	suite.out.Reset()
	suite.Require().NoError(suite.run("eval", "-c", configPath, "--metrics"))
	suite.Contains(suite.out.String(), `argota_bars_loaded_total{backend="duckdb"} 4`)
}

func (suite *TaCmdTestSuite) TestEvalErrors() {
	suite.Error(suite.run("eval", "--config", filepath.Join(suite.tempDir, "missing.yaml")))

	configPath := suite.writeConfig(suite.writeBars(4))
	suite.Error(suite.run("eval", "--config", configPath, "--format", "xml"))
	suite.Error(suite.run("eval", "--config", configPath, "--log-level", "loud"))

	missingData := suite.writeConfig(filepath.Join(suite.tempDir, "nothing.parquet"))
	suite.Error(suite.run("eval", "--config", missingData))
}

func (suite *TaCmdTestSuite) TestSchema() {
	dir := filepath.Join(suite.tempDir, "config")
	suite.Require().NoError(suite.run("schema", "--out", dir))

	schemaContent, err := os.ReadFile(filepath.Join(dir, config.SchemaName))
	suite.Require().NoError(err)
	suite.Contains(string(schemaContent), `"argo-ta-config"`)

	samplePath := filepath.Join(dir, "argo-ta-config.yaml")
	sample, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Contains(string(sample), "# yaml-language-server: $schema="+config.SchemaName)

	// An existing sample is left untouched
	suite.Require().NoError(os.WriteFile(samplePath, []byte("custom"), 0o600))
	suite.Require().NoError(suite.run("schema", "--out", dir))

	sample, err = os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal("custom", string(sample))
}

func (suite *TaCmdTestSuite) TestListCommands() {
	suite.Require().NoError(suite.run("indicators"))
	suite.Contains(suite.out.String(), "  macd_histogram\n")

	suite.out.Reset()
	suite.Require().NoError(suite.run("criteria"))
	suite.Contains(suite.out.String(), "  maximum_drawdown\n")
}

func (suite *TaCmdTestSuite) TestVersion() {
	suite.Require().NoError(suite.run("--version"))
	suite.Contains(suite.out.String(), version.GetVersion())
}
