package iot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type IndicatorSpec struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Unit  string `yaml:"unit"`
}

// Catalog names the live reading fields and the charted metrics.
type Catalog struct {
	Indicators   []IndicatorSpec `yaml:"indicators"`
	ChartMetrics []string        `yaml:"chart_metrics"`
}

func DefaultCatalog() *Catalog {
	catalog, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return catalog
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := map[string]bool{}
	for idx, spec := range catalog.Indicators {
		if strings.TrimSpace(spec.Key) == "" {
			return nil, fmt.Errorf("parse catalog: indicator %d has no key", idx)
		}
		if seen[spec.Key] {
			return nil, fmt.Errorf("parse catalog: duplicate indicator %q", spec.Key)
		}
		seen[spec.Key] = true
	}
	if len(catalog.Indicators) == 0 {
		return nil, fmt.Errorf("parse catalog: no indicators")
	}

	catalog.ChartMetrics = common.Filter(catalog.ChartMetrics, func(m string) bool {
		return strings.TrimSpace(m) != ""
	})
	return &catalog, nil
}

// Map turns a raw reading record into indicators, one per catalog entry.
// Missing or non-numeric fields read as zero.
func (c *Catalog) Map(fields map[string]any) []models.Indicator {
	return common.Mapper(c.Indicators, func(spec IndicatorSpec) models.Indicator {
		return models.Indicator{
			Key:   spec.Key,
			Label: spec.Label,
			Unit:  spec.Unit,
			Value: toFloat(fields[spec.Key]),
		}
	})
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
