package api

import (
	"net/http"
	"strconv"
	"strings"

	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/app"
	"hypokit/internal/errors"
	"hypokit/internal/profiling"
)

type datasetInfo struct {
	Source         string   `json:"source"`
	Headers        []string `json:"headers"`
	Rows           int      `json:"rows"`
	NumericColumns []string `json:"numeric_columns"`
}

type pairwiseRequest struct {
	Columns []string `json:"columns,omitempty"`
	Method  string   `json:"method,omitempty"`
	Adjust  string   `json:"adjust,omitempty"`
}

func (a *App) handleDatasetInfo(w http.ResponseWriter, r *http.Request) {
	table, err := a.analysis.Table(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, datasetInfo{
		Source:         table.Source,
		Headers:        table.Headers,
		Rows:           len(table.Rows),
		NumericColumns: table.NumericColumns(),
	})
}

func (a *App) handleDatasetReload(w http.ResponseWriter, r *http.Request) {
	table, err := a.analysis.Reload(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, datasetInfo{
		Source:         table.Source,
		Headers:        table.Headers,
		Rows:           len(table.Rows),
		NumericColumns: table.NumericColumns(),
	})
}

func (a *App) handleDatasetCorrelation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, y := q.Get("x"), q.Get("y")
	if x == "" || y == "" {
		a.writeError(w, r, errors.InvalidInput("query parameters x and y are required"))
		return
	}
	var method correlation.Method
	if name := q.Get("method"); name != "" {
		var err error
		if method, err = correlation.ParseMethod(name); err != nil {
			a.writeError(w, r, err)
			return
		}
	}
	report, err := a.analysis.Correlate(r.Context(), x, y, method)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

func (a *App) handleDatasetKruskal(w http.ResponseWriter, r *http.Request) {
	value, by, ok := a.valueBy(w, r, true)
	if !ok {
		return
	}
	report, err := a.analysis.KruskalWallis(r.Context(), value, by)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

func (a *App) handleDatasetCompare(w http.ResponseWriter, r *http.Request) {
	value, by, ok := a.valueBy(w, r, true)
	if !ok {
		return
	}
	q := r.URL.Query()
	paired := false
	if s := q.Get("paired"); s != "" {
		var err error
		if paired, err = strconv.ParseBool(s); err != nil {
			a.writeError(w, r, errors.InvalidInput("paired must be a boolean"))
			return
		}
	}
	opts, err := app.CompareRequest{
		Method:               q.Get("method"),
		Paired:               paired,
		MultipleGroupsMethod: q.Get("multiple_groups_method"),
		Adjust:               q.Get("adjust"),
		Ref:                  q.Get("ref"),
	}.Options()
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	report, err := a.analysis.Compare(r.Context(), value, by, opts)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

func (a *App) handleDatasetDescribe(w http.ResponseWriter, r *http.Request) {
	value, by, ok := a.valueBy(w, r, false)
	if !ok {
		return
	}
	report, err := a.analysis.Describe(r.Context(), value, by, profiling.StatFunc(r.URL.Query().Get("stat")))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

func (a *App) handleDatasetPairwise(w http.ResponseWriter, r *http.Request) {
	var req pairwiseRequest
	if err := decodeOptional(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	var method correlation.Method
	var adjust correction.Method
	var err error
	if req.Method != "" {
		if method, err = correlation.ParseMethod(req.Method); err != nil {
			a.writeError(w, r, err)
			return
		}
	}
	if req.Adjust != "" {
		if adjust, err = correction.ParseMethod(req.Adjust); err != nil {
			a.writeError(w, r, err)
			return
		}
	}

	report, err := a.analysis.Pairwise(r.Context(), req.Columns, method, adjust)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

// valueBy reads the value and by query parameters
func (a *App) valueBy(w http.ResponseWriter, r *http.Request, byRequired bool) (string, string, bool) {
	q := r.URL.Query()
	value, by := strings.TrimSpace(q.Get("value")), strings.TrimSpace(q.Get("by"))
	if value == "" || (byRequired && by == "") {
		msg := "query parameter value is required"
		if byRequired {
			msg = "query parameters value and by are required"
		}
		a.writeError(w, r, errors.InvalidInput(msg))
		return "", "", false
	}
	return value, by, true
}
