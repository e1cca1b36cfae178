package db

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Collection names persisted by the store.
const (
	CollectionLeads         = "leads"
	CollectionOpportunities = "opportunities"
	CollectionActivities    = "activities"
	CollectionCampaigns     = "campaigns"
	CollectionLifecycles    = "lifecycles"
	CollectionPipelines     = "pipelines"
	CollectionSequences     = "sequences"
)

// Collections lists every collection name in a stable order.
var Collections = []string{
	CollectionLeads,
	CollectionOpportunities,
	CollectionActivities,
	CollectionCampaigns,
	CollectionLifecycles,
	CollectionPipelines,
	CollectionSequences,
}

// Adapter is the get/set contract every storage backend implements. Each
// collection is persisted as a whole JSON array.
//
// Get returns an empty collection, not an error, when the key is missing or
// the stored payload cannot be decoded. Errors are reserved for transport or
// IO failures.
type Adapter interface {
	Get(ctx context.Context, collection string) ([]json.RawMessage, error)
	Set(ctx context.Context, collection string, records []json.RawMessage) error
	Close() error
}

// Batcher is implemented by adapters that can write several collections
// atomically.
type Batcher interface {
	SetBatch(ctx context.Context, batch map[string][]json.RawMessage) error
}

// decodeCollection turns a stored payload into records. Corrupt payloads are
// logged and treated as empty.
func decodeCollection(ctx context.Context, collection string, payload []byte) []json.RawMessage {
	if len(payload) == 0 {
		return []json.RawMessage{}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(payload, &records); err != nil {
		slog.WarnContext(ctx, "undecodable collection payload, treating as empty",
			"collection", collection, "error", err)
		return []json.RawMessage{}
	}
	if records == nil {
		return []json.RawMessage{}
	}
	return records
}

func encodeCollection(records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	return json.Marshal(records)
}

func cloneRecords(records []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		out[i] = append(json.RawMessage(nil), r...)
	}
	return out
}
