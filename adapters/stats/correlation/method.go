// Package correlation measures association between two paired samples.
package correlation

import (
	"fmt"
	"strings"

	"hypokit/domain/core"
)

// Method selects a correlation coefficient
type Method string

const (
	MethodPearson  Method = "pearson"
	MethodKendall  Method = "kendall"
	MethodSpearman Method = "spearman"
)

// Result is a correlation coefficient with its two-tailed p-value
type Result struct {
	Method      Method  `json:"method"`
	Coefficient float64 `json:"coefficient"`
	PValue      float64 `json:"p_value"`
	N           int     `json:"n"`
}

// Methods lists the supported methods
func Methods() []Method {
	return []Method{MethodPearson, MethodKendall, MethodSpearman}
}

// ParseMethod resolves a case-insensitive method name
func ParseMethod(name string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(name)))
	switch m {
	case MethodPearson, MethodKendall, MethodSpearman:
		return m, nil
	}
	return "", core.NewInvalidArgumentError("method", fmt.Sprintf("unknown correlation method %q", name))
}

func (m Method) String() string {
	return string(m)
}

// Correlate dispatches to the coefficient selected by m
func Correlate(m Method, x, y []float64) (Result, error) {
	switch m {
	case MethodPearson:
		return Pearson(x, y)
	case MethodSpearman:
		return Spearman(x, y)
	case MethodKendall:
		k, err := KendallsTau(x, y)
		if err != nil {
			return Result{}, err
		}
		return Result{Method: MethodKendall, Coefficient: k.Tau, PValue: k.PValue, N: len(x)}, nil
	}
	return Result{}, core.NewInvalidArgumentError("method", fmt.Sprintf("unknown correlation method %q", string(m)))
}
