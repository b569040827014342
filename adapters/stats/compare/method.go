// Package compare tests whether two or more groups of observations come from
// the same distribution.
package compare

import (
	"fmt"
	"strings"

	"hypokit/domain/core"
)

// TestMethod selects the hypothesis test used to compare groups
type TestMethod string

const (
	TTest             TestMethod = "t-test"
	Wilcoxon          TestMethod = "wilcoxon"
	ANOVA             TestMethod = "anova"
	KruskalWallisTest TestMethod = "kruskal-wallis"
)

var methodInfo = map[TestMethod]struct {
	multipleGroups bool
	supportsPaired bool
	label          string
}{
	TTest:             {false, true, "T-test"},
	Wilcoxon:          {false, true, "Wilcoxon"},
	ANOVA:             {true, false, "Anova"},
	KruskalWallisTest: {true, false, "Kruskal-Wallis"},
}

// TestMethods lists every supported test
func TestMethods() []TestMethod {
	return []TestMethod{TTest, Wilcoxon, ANOVA, KruskalWallisTest}
}

// ParseTestMethod resolves a case-insensitive test name such as "t-test",
// "ttest", "wilcox", "anova" or "kruskal".
func ParseTestMethod(name string) (TestMethod, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch key {
	case "ttest", "t", "welch":
		return TTest, nil
	case "wilcoxon", "wilcox", "mannwhitney", "mannwhitneyu":
		return Wilcoxon, nil
	case "anova":
		return ANOVA, nil
	case "kruskalwallis", "kruskal", "kw":
		return KruskalWallisTest, nil
	}
	return "", core.NewInvalidArgumentError("method", fmt.Sprintf("unknown test method %q", name))
}

// MultipleGroups reports whether the test accepts more than two groups.
func (m TestMethod) MultipleGroups() bool {
	return methodInfo[m].multipleGroups
}

// SupportsPaired reports whether the test has a paired variant.
func (m TestMethod) SupportsPaired() bool {
	return methodInfo[m].supportsPaired
}

// String returns the display label
func (m TestMethod) String() string {
	if info, ok := methodInfo[m]; ok {
		return info.label
	}
	return string(m)
}

// PValue runs the test over groups. Two-sample tests require exactly two
// groups. paired is honoured by the t-test, and by Wilcoxon when both
// samples have the same size; otherwise it is ignored.
func (m TestMethod) PValue(paired bool, groups ...[]float64) (float64, error) {
	if _, ok := methodInfo[m]; !ok {
		return 0, core.NewInvalidArgumentError("method", fmt.Sprintf("unknown test method %q", string(m)))
	}
	if !m.MultipleGroups() && len(groups) != 2 {
		return 0, core.NewInvalidArgumentError("groups",
			fmt.Sprintf("%s compares exactly 2 groups, got %d", m, len(groups)))
	}

	switch m {
	case TTest:
		var res TTestResult
		var err error
		if paired {
			res, err = PairedTTest(groups[0], groups[1])
		} else {
			res, err = WelchTTest(groups[0], groups[1])
		}
		return res.PValue, err
	case Wilcoxon:
		if paired && len(groups[0]) == len(groups[1]) {
			return WilcoxonSignedRankTest(groups[0], groups[1])
		}
		return MannWhitneyTest(groups[0], groups[1])
	case ANOVA:
		res, err := OneWayAnova(groups...)
		return res.PValue, err
	default:
		return KruskalWallis(groups...)
	}
}
