package reporting

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/scanbrief/api/schemas"
)

type jsonRenderer struct {
	logger *zap.Logger
}

func (r *jsonRenderer) Format() string { return FormatJSON }

func (r *jsonRenderer) Render(report *schemas.AggregateReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report to JSON: %w", err)
	}
	return append(out, '\n'), nil
}

type yamlRenderer struct {
	logger *zap.Logger
}

func (r *yamlRenderer) Format() string { return FormatYAML }

func (r *yamlRenderer) Render(report *schemas.AggregateReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}
	out, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report to YAML: %w", err)
	}
	return out, nil
}
