package config

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-ta/internal/version"
)

// SchemaName is the file name the CLI writes the schema to.
const SchemaName = "argo-ta-config.json"

// GenerateSchema generates a JSON schema for Config
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(&Config{})

	schema.Title = "argo-ta-config"
	schema.Description = "Configuration schema for an argo-ta evaluation"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates an indented JSON schema string for Config
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// Sample returns a starting configuration that references the schema file.
func Sample() string {
	return fmt.Sprintf(sample, SchemaName, version.GetVersion())
}

const sample = `# yaml-language-server: $schema=%s
version: %s
data:
  source: data/bars.parquet
  symbol: AAPL
series:
  num: decimal
  precision: 32
indicators:
  - name: sma20
    type: sma
    period: 20
  - name: rsi14
    type: rsi
    period: 14
  - name: rsi_smooth
    type: ema
    source: rsi14
    period: 5
trades:
  - type: buy
    index: 20
  - type: sell
    index: 60
criteria:
  - net_profit
  - net_return
  - maximum_drawdown
  - versus:net_return
last: 10
`
