package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/variant-cli/internal/model"
)

// historyKey is the KV key holding the analysis history, a JSON array of
// entries newest-first.
const historyKey = "variant_analysis_history"

// maxHistoryEntries bounds the history; the oldest entry is evicted when a
// save would exceed it.
const maxHistoryEntries = 20

// HistoryStore is a durable, capped list of past analysis runs.
type HistoryStore struct {
	kv KV
}

// NewHistory creates a history store over the given KV.
func NewHistory(kv KV) *HistoryStore {
	return &HistoryStore{kv: kv}
}

// Save prepends a new entry recording the exact inputs and outputs of a
// completed run, truncates to the capacity, and persists. The returned entry
// carries a fresh ID and timestamp.
func (h *HistoryStore) Save(ctx context.Context, samples []model.Sample, params model.AnalysisParameters, results []model.SampleResult) (*model.HistoryEntry, error) {
	entries := h.load(ctx)

	entry := model.HistoryEntry{
		ID:      uuid.New().String(),
		Time:    time.Now().UTC(),
		Samples: samples,
		Params:  params,
		Results: results,
	}

	entries = append([]model.HistoryEntry{entry}, entries...)
	if len(entries) > maxHistoryEntries {
		entries = entries[:maxHistoryEntries]
	}

	if err := h.persist(ctx, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all stored entries, newest-first.
func (h *HistoryStore) List(ctx context.Context) []model.HistoryEntry {
	return h.load(ctx)
}

// Get returns the entry with the given ID, or nil.
func (h *HistoryStore) Get(ctx context.Context, id string) *model.HistoryEntry {
	for _, e := range h.load(ctx) {
		if e.ID == id {
			return &e
		}
	}
	return nil
}

// Latest returns the most recent entry, or nil when the history is empty.
func (h *HistoryStore) Latest(ctx context.Context) *model.HistoryEntry {
	entries := h.load(ctx)
	if len(entries) == 0 {
		return nil
	}
	return &entries[0]
}

// load reads the stored history, defaulting to empty on absence or a parse
// failure. A corrupt value is not an error; it is replaced on the next save.
func (h *HistoryStore) load(ctx context.Context) []model.HistoryEntry {
	raw, ok, err := h.kv.Get(ctx, historyKey)
	if err != nil {
		zap.L().Warn("history: read failed, treating as empty", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		zap.L().Warn("history: stored value malformed, treating as empty", zap.Error(err))
		return nil
	}
	return entries
}

func (h *HistoryStore) persist(ctx context.Context, entries []model.HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return eris.Wrap(err, "history: marshal")
	}
	return eris.Wrap(h.kv.Set(ctx, historyKey, raw), "history: persist")
}
