package testkit

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"hypokit/domain/dataset"
)

// ShoppingGeneratorConfig configures the synthetic customer table
type ShoppingGeneratorConfig struct {
	CustomerCount int     `json:"customer_count"`
	MissingRate   float64 `json:"missing_rate"` // share of blank discount_pct cells
	Seed          uint64  `json:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for shopping data generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		CustomerCount: 500,
		MissingRate:   0.1,
		Seed:          42,
	}
}

// Segments in the order they are assigned
var Segments = []string{"new", "returning", "vip"}

// segmentVisits is the mean monthly visit count per segment
var segmentVisits = map[string]float64{"new": 3, "returning": 8, "vip": 15}

// ShoppingDataGenerator builds a customer table with planted relationships:
//   - spend rises with visits
//   - return_rate falls with spend
//   - visits and spend shift by segment
//   - discount_pct and noise are independent of everything else
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new shopping data generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15)),
	}
}

// ShoppingHeaders is the column order of GenerateTable
var ShoppingHeaders = []string{"customer_id", "segment", "visits", "spend", "return_rate", "discount_pct", "noise"}

// GenerateTable generates one row per customer
func (g *ShoppingDataGenerator) GenerateTable() *dataset.Table {
	table := &dataset.Table{
		Source:  fmt.Sprintf("shopping-%d", g.config.Seed),
		Headers: ShoppingHeaders,
		Rows:    make([]dataset.Row, 0, g.config.CustomerCount),
	}

	for i := 0; i < g.config.CustomerCount; i++ {
		segment := Segments[i%len(Segments)]
		visits := math.Max(0, math.Round(segmentVisits[segment]+g.rng.NormFloat64()*2))
		spend := math.Max(0, 25*visits+g.rng.NormFloat64()*30)
		returnRate := math.Min(1, math.Max(0, 0.3-0.0005*spend+g.rng.NormFloat64()*0.03))

		discount := ""
		if g.rng.Float64() >= g.config.MissingRate {
			discount = strconv.Itoa(5 * g.rng.IntN(7))
		}

		table.Rows = append(table.Rows, dataset.Row{
			"customer_id":  fmt.Sprintf("customer_%04d", i+1),
			"segment":      segment,
			"visits":       strconv.FormatFloat(visits, 'f', -1, 64),
			"spend":        strconv.FormatFloat(spend, 'f', 2, 64),
			"return_rate":  strconv.FormatFloat(returnRate, 'f', 4, 64),
			"discount_pct": discount,
			"noise":        strconv.FormatFloat(g.rng.NormFloat64(), 'f', 6, 64),
		})
	}
	return table
}
