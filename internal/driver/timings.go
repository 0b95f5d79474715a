package driver

import (
	"encoding/json"
	"fmt"

	"liberty/internal/diag"
	"liberty/internal/observ"
	"liberty/internal/source"
)

// timingPayload is the JSON note of an OBS5001 diagnostic.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func timingDiagnostic(file source.FileID, path string, report observ.Report) (diag.Diagnostic, error) {
	data, err := json.Marshal(timingPayload{Kind: "parse", Path: path, TotalMS: report.TotalMS, Phases: report.Phases})
	if err != nil {
		return diag.Diagnostic{}, err
	}
	msg := fmt.Sprintf("timings (parse): total %.2f ms", report.TotalMS)
	if path != "" {
		msg += ", " + path
	}
	at := source.Span{File: file}
	return diag.New(diag.SevInfo, diag.ObsTimings, at, msg).WithNote(at, string(data)), nil
}

// appendTimings adds the timing diagnostic to bag, growing a full bag by
// one so that the report is never lost to MaxDiagnostics.
func appendTimings(bag *diag.Bag, file source.FileID, path string, report observ.Report) {
	d, err := timingDiagnostic(file, path, report)
	if err != nil || bag.Add(d) {
		return
	}
	extra := diag.NewBag(1)
	extra.Add(d)
	bag.Merge(extra)
}
