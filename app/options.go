package app

import (
	"strings"

	"hypokit/adapters/stats/compare"
	"hypokit/adapters/stats/correction"
)

// NoAdjustment disables p-value correction where one is optional
const NoAdjustment = "none"

// CompareRequest carries the user-facing compare-means settings as text
type CompareRequest struct {
	Method               string
	Paired               bool
	MultipleGroupsMethod string
	Adjust               string // empty keeps the default, "none" disables
	Ref                  string // empty compares all pairs, "all" compares against the pooled data
}

// ParseAdjust resolves an optional correction name. Empty returns fallback,
// "none" returns nil.
func ParseAdjust(name string, fallback *correction.Method) (*correction.Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return fallback, nil
	case NoAdjustment:
		return nil, nil
	}
	m, err := correction.ParseMethod(name)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Options converts the request into compare.Options, starting from the defaults
func (r CompareRequest) Options() (compare.Options, error) {
	opts := compare.DefaultOptions()
	opts.Paired = r.Paired
	opts.Ref = compare.ParseRefGroup(strings.TrimSpace(r.Ref))

	var err error
	if r.Method != "" {
		if opts.Method, err = compare.ParseTestMethod(r.Method); err != nil {
			return opts, err
		}
	}
	if r.MultipleGroupsMethod != "" {
		if opts.MultipleGroupsMethod, err = compare.ParseTestMethod(r.MultipleGroupsMethod); err != nil {
			return opts, err
		}
	}
	if opts.Adjust, err = ParseAdjust(r.Adjust, opts.Adjust); err != nil {
		return opts, err
	}
	return opts, nil
}
