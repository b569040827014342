package api

import (
	"net/http"

	"hypokit/adapters/stats/compare"
	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/app"
	"hypokit/internal/errors"
	"hypokit/internal/profiling"
)

// defaultFWER is the family-wise error rate used when a filter request omits one
const defaultFWER = 0.05

type pairedRequest struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Method string    `json:"method,omitempty"`
}

type kruskalRequest struct {
	Groups [][]float64 `json:"groups"`
	Alpha  *float64    `json:"alpha,omitempty"`
}

type kruskalResponse struct {
	compare.KruskalWallisResult
	Reject *bool `json:"reject,omitempty"`
}

type adjustRequest struct {
	PValues []float64 `json:"p_values"`
	Method  string    `json:"method"`
}

type adjustResponse struct {
	Method   correction.Method `json:"method"`
	Adjusted []float64         `json:"adjusted"`
}

type filterRequest struct {
	PValues []float64 `json:"p_values"`
	FWER    *float64  `json:"fwer,omitempty"`
}

type filterResponse struct {
	FWER     float64   `json:"fwer"`
	Accepted []float64 `json:"accepted"`
}

type namedGroup struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type compareRequest struct {
	Groups               []namedGroup `json:"groups"`
	Method               string       `json:"method,omitempty"`
	Paired               bool         `json:"paired,omitempty"`
	MultipleGroupsMethod string       `json:"multiple_groups_method,omitempty"`
	Adjust               string       `json:"adjust,omitempty"`
	Ref                  string       `json:"ref,omitempty"`
}

type describeRequest struct {
	Groups []namedGroup `json:"groups"`
	Stat   string       `json:"stat,omitempty"`
}

type describeResponse struct {
	Summaries []profiling.GroupSummary `json:"summaries"`
	Points    []profiling.StatPoint    `json:"points,omitempty"`
}

type methodsResponse struct {
	Correlation []correlation.Method `json:"correlation"`
	Adjust      []correction.Method  `json:"adjust"`
	Compare     []compare.TestMethod `json:"compare"`
	StatFuncs   []profiling.StatFunc `json:"stat_funcs"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleMethods(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, methodsResponse{
		Correlation: correlation.Methods(),
		Adjust:      correction.Methods(),
		Compare:     compare.TestMethods(),
		StatFuncs:   []profiling.StatFunc{profiling.MeanStdErr, profiling.MeanStdDev, profiling.MeanRange, profiling.MedianIQR, profiling.BoxPlot},
	})
}

func (a *App) handleKendall(w http.ResponseWriter, r *http.Request) {
	var req pairedRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	result, err := correlation.KendallsTau(req.X, req.Y)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeResult(w, result)
}

func (a *App) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	var req pairedRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	method := correlation.MethodKendall
	if req.Method != "" {
		var err error
		if method, err = correlation.ParseMethod(req.Method); err != nil {
			a.writeError(w, r, err)
			return
		}
	}
	result, err := correlation.Correlate(method, req.X, req.Y)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeResult(w, result)
}

func (a *App) handleKruskal(w http.ResponseWriter, r *http.Request) {
	var req kruskalRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	result, err := compare.KruskalWallisStatistic(req.Groups...)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	resp := kruskalResponse{KruskalWallisResult: result}
	if req.Alpha != nil {
		if *req.Alpha <= 0 || *req.Alpha >= 1 {
			a.writeError(w, r, errors.InvalidInput("alpha must be in (0, 1)"))
			return
		}
		reject := result.PValue < *req.Alpha
		resp.Reject = &reject
	}
	a.writeResult(w, resp)
}

func (a *App) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	method, err := correction.ParseMethod(req.Method)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	adjusted, err := correction.Adjust(req.PValues, method)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeResult(w, adjustResponse{Method: method, Adjusted: adjusted})
}

func (a *App) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	fwer := defaultFWER
	switch {
	case req.FWER != nil:
		fwer = *req.FWER
	case a.analysis != nil:
		fwer = a.analysis.Alpha()
	}
	if fwer < 0 || fwer > 1 {
		a.writeError(w, r, errors.InvalidInput("fwer must be in [0, 1]"))
		return
	}
	accepted := correction.HolmFilterPValues(req.PValues, fwer)
	if accepted == nil {
		accepted = []float64{}
	}
	a.writeResult(w, filterResponse{FWER: fwer, Accepted: accepted})
}

func (a *App) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	opts, err := app.CompareRequest{
		Method:               req.Method,
		Paired:               req.Paired,
		MultipleGroupsMethod: req.MultipleGroupsMethod,
		Adjust:               req.Adjust,
		Ref:                  req.Ref,
	}.Options()
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	groups := make([]compare.Group, len(req.Groups))
	for i, g := range req.Groups {
		groups[i] = compare.Group{Name: g.Name, Values: g.Values}
	}
	result, err := compare.CompareMeans(groups, opts)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeResult(w, result)
}

func (a *App) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	named := make([]profiling.NamedValues, len(req.Groups))
	for i, g := range req.Groups {
		named[i] = profiling.NamedValues{Key: g.Name, Values: g.Values}
	}
	summaries, err := profiling.DescribeGroups(named)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	resp := describeResponse{Summaries: summaries}
	if req.Stat != "" {
		for _, s := range summaries {
			resp.Points = append(resp.Points, profiling.StatFunc(req.Stat).Point(s))
		}
	}
	a.writeResult(w, resp)
}
