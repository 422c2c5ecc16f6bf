package model

import "time"

// Sample is the canonical input unit for one sequenced isolate.
// Date stays a plain string once normalized so that stored history and
// export artifacts serialize identically across sessions.
type Sample struct {
	SequenceID string   `json:"sequence_id"`
	Mutations  []string `json:"mutations"`
	Location   string   `json:"location"`
	Date       string   `json:"date"`
}

// Valid reports whether the sample can be submitted for analysis.
func (s Sample) Valid() bool {
	return s.SequenceID != "" && len(s.Mutations) > 0
}

// AnalysisParameters are the thresholds sent verbatim to the variant
// analysis service.
type AnalysisParameters struct {
	MinFrequency float64 `json:"min_frequency"`
	MinCoverage  int     `json:"min_coverage"`
}

// DefaultParameters returns the thresholds the UI starts from.
func DefaultParameters() AnalysisParameters {
	return AnalysisParameters{MinFrequency: 0.01, MinCoverage: 20}
}

// VariantSummaryEntry is the per-mutation analysis output for one sample.
// AIScore and AILabel are set only when the enrichment service returned an
// entry for this exact mutation string; otherwise they stay nil.
type VariantSummaryEntry struct {
	Mutation  string   `json:"mutation"`
	Frequency float64  `json:"frequency"`
	Impact    string   `json:"impact"`
	Notes     string   `json:"notes"`
	AIScore   *float64 `json:"ai_score,omitempty"`
	AILabel   *string  `json:"ai_label,omitempty"`
}

// RiskAssessment is one risk finding for a sample.
type RiskAssessment struct {
	Level           string `json:"level"`
	Description     string `json:"description"`
	Recommendations string `json:"recommendations"`
}

// TransmissionPoint is one day of the simulated transmission series the
// analysis service attaches to every sample.
type TransmissionPoint struct {
	Date     string `json:"date"`
	Cases    int    `json:"cases"`
	Variants int    `json:"variants"`
}

// SampleResult is the output of one orchestration run for one sample.
// Location and Date are echoed by the service when available and may be
// empty; the document exporter renders absent values as blanks.
type SampleResult struct {
	SequenceID          string                `json:"sequence_id"`
	VariantSummary      []VariantSummaryEntry `json:"variant_summary"`
	RiskAssessment      []RiskAssessment      `json:"risk_assessment"`
	TransmissionNetwork []TransmissionPoint   `json:"transmission_network"`
	Location            string                `json:"location,omitempty"`
	Date                string                `json:"date,omitempty"`
}

// TopRiskLevel returns the level of the first risk assessment, or "".
func (r SampleResult) TopRiskLevel() string {
	if len(r.RiskAssessment) == 0 {
		return ""
	}
	return r.RiskAssessment[0].Level
}

// HistoryEntry is a durable record of one completed analysis run.
// Entries are immutable once created and listed newest-first.
type HistoryEntry struct {
	ID      string             `json:"id"`
	Time    time.Time          `json:"time"`
	Samples []Sample           `json:"samples"`
	Params  AnalysisParameters `json:"params"`
	Results []SampleResult     `json:"results"`
}

// ParameterTemplate is a user-named preset of analysis thresholds.
// Names are not unique; duplicates remain listed independently.
type ParameterTemplate struct {
	Name         string  `json:"name"`
	MinFrequency float64 `json:"min_frequency"`
	MinCoverage  int     `json:"min_coverage"`
}

// Params converts the template back to analysis parameters.
func (t ParameterTemplate) Params() AnalysisParameters {
	return AnalysisParameters{MinFrequency: t.MinFrequency, MinCoverage: t.MinCoverage}
}
