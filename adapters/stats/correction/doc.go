// Package correction adjusts p-values for multiple comparisons.
//
// Six procedures are provided, matching R's p.adjust: Bonferroni, Holm,
// Hommel, Hochberg, Benjamini-Hochberg and Benjamini-Yekutieli. Every
// adjuster returns a new slice whose i-th element belongs to the i-th input,
// whatever order the procedure works in internally.
//
// HolmFilter applies the Holm step-down rule as a selection over arbitrary
// result values instead of an adjustment.
package correction
