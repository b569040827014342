package correction

import (
	"fmt"
	"strings"

	"hypokit/domain/core"
)

// Method selects a p-value correction procedure
type Method string

const (
	// Bonferroni multiplies every p-value by the number of tests.
	Bonferroni Method = "bonferroni"
	// Holm is the step-down Bonferroni procedure.
	// Sture Holm, Scandinavian Journal of Statistics 6(2), 1979.
	Holm Method = "holm"
	// Hommel is the closed-testing Simes procedure.
	// Gerhard Hommel, Biometrika 75(2), 1988.
	Hommel Method = "hommel"
	// Hochberg is the step-up Bonferroni procedure.
	// Yosef Hochberg, Biometrika 75(4), 1988.
	Hochberg Method = "hochberg"
	// BenjaminiHochberg controls the false discovery rate.
	// Benjamini & Hochberg, JRSS B 57(1), 1995.
	BenjaminiHochberg Method = "BH"
	// BenjaminiYekutieli controls the false discovery rate under dependency.
	// Benjamini & Yekutieli, Annals of Statistics 29(4), 2001.
	BenjaminiYekutieli Method = "BY"
)

// Adjuster maps raw p-values to adjusted p-values in the same order
type Adjuster func(pValues []float64) ([]float64, error)

var adjusters = map[Method]Adjuster{
	Bonferroni:         adjustBonferroni,
	Holm:               adjustHolm,
	Hommel:             adjustHommel,
	Hochberg:           adjustHochberg,
	BenjaminiHochberg:  adjustBenjaminiHochberg,
	BenjaminiYekutieli: adjustBenjaminiYekutieli,
}

var aliases = map[string]Method{
	"bonferroni":         Bonferroni,
	"holm":               Holm,
	"hommel":             Hommel,
	"hochberg":           Hochberg,
	"bh":                 BenjaminiHochberg,
	"fdr":                BenjaminiHochberg,
	"benjaminihochberg":  BenjaminiHochberg,
	"by":                 BenjaminiYekutieli,
	"benjaminiyekutieli": BenjaminiYekutieli,
}

// Methods lists every supported method in a stable order.
func Methods() []Method {
	return []Method{Bonferroni, Holm, Hommel, Hochberg, BenjaminiHochberg, BenjaminiYekutieli}
}

// ParseMethod resolves a user-supplied name (case-insensitive, "-" and "_"
// ignored) to a Method.
func ParseMethod(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if m, ok := aliases[key]; ok {
		return m, nil
	}
	return "", core.NewInvalidArgumentError("method", fmt.Sprintf("unknown p-value correction %q", name))
}

// String returns the canonical name
func (m Method) String() string {
	return string(m)
}

// Valid reports whether m names a supported procedure.
func (m Method) Valid() bool {
	_, ok := adjusters[m]
	return ok
}

// Adjuster resolves the method to its adjustment function.
func (m Method) Adjuster() (Adjuster, error) {
	fn, ok := adjusters[m]
	if !ok {
		return nil, core.NewInvalidArgumentError("method", fmt.Sprintf("unknown p-value correction %q", string(m)))
	}
	return fn, nil
}

// Adjust applies method m to pValues. The result has the same length and
// order as the input; the input is not modified.
func Adjust(pValues []float64, m Method) ([]float64, error) {
	fn, err := m.Adjuster()
	if err != nil {
		return nil, err
	}
	return fn(pValues)
}

// Per-method entry points, equivalent to Adjust with the matching Method.

func AdjustBonferroni(pValues []float64) ([]float64, error) { return adjustBonferroni(pValues) }
func AdjustHolm(pValues []float64) ([]float64, error)       { return adjustHolm(pValues) }
func AdjustHommel(pValues []float64) ([]float64, error)     { return adjustHommel(pValues) }
func AdjustHochberg(pValues []float64) ([]float64, error)   { return adjustHochberg(pValues) }

func AdjustBenjaminiHochberg(pValues []float64) ([]float64, error) {
	return adjustBenjaminiHochberg(pValues)
}

func AdjustBenjaminiYekutieli(pValues []float64) ([]float64, error) {
	return adjustBenjaminiYekutieli(pValues)
}

func requireNonEmpty(pValues []float64) error {
	if len(pValues) < 1 {
		return core.NewInvalidArgumentError("p-values", "adjustment requires at least one element")
	}
	return nil
}
