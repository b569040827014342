package testkit

import (
	"strconv"

	"hypokit/domain/dataset"
)

// PlantGrowth is R's PlantGrowth data set: dried plant weight under a
// control and two treatments, ten plants each.
var PlantGrowth = map[string][]float64{
	"ctrl": {4.17, 5.58, 5.18, 6.11, 4.50, 4.61, 5.17, 4.53, 5.33, 5.14},
	"trt1": {4.81, 4.17, 4.41, 3.59, 5.87, 3.83, 6.03, 4.89, 4.32, 4.69},
	"trt2": {6.31, 5.12, 5.54, 5.50, 5.37, 5.29, 4.92, 6.15, 5.80, 5.26},
}

// PlantGrowthGroups fixes the group order used by PlantGrowthTable
var PlantGrowthGroups = []string{"ctrl", "trt1", "trt2"}

// PlantGrowthTable returns PlantGrowth in long form with columns weight,
// group and plant (1..30).
func PlantGrowthTable() *dataset.Table {
	table := &dataset.Table{Source: "PlantGrowth", Headers: []string{"weight", "group", "plant"}}
	plant := 0
	for _, g := range PlantGrowthGroups {
		for _, w := range PlantGrowth[g] {
			plant++
			table.Rows = append(table.Rows, dataset.Row{
				"weight": strconv.FormatFloat(w, 'f', -1, 64),
				"group":  g,
				"plant":  strconv.Itoa(plant),
			})
		}
	}
	return table
}
