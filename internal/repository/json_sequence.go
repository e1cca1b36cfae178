package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/idgen"
)

type sequenceCounter struct {
	Key  string `json:"key"`
	Next int    `json:"next"`
}

// numberSources maps a number prefix to the collection and field holding
// already-issued numbers.
var numberSources = map[string]struct {
	collection string
	field      string
}{
	idgen.NumberLead:        {db.CollectionLeads, "leadNumber"},
	idgen.NumberOpportunity: {db.CollectionOpportunities, "opportunityNumber"},
}

// JSONSequenceRepo allocates per-year sequence values from the sequences
// collection. Allocation is atomic when run inside a unit of work.
type JSONSequenceRepo struct {
	c jsonCollection[sequenceCounter]
}

func NewJSONSequenceRepo(conn db.DBTX) *JSONSequenceRepo {
	return &JSONSequenceRepo{c: jsonCollection[sequenceCounter]{
		conn:   conn,
		name:   db.CollectionSequences,
		entity: "sequence",
		id:     func(s *sequenceCounter) string { return s.Key },
	}}
}

// NextSeq returns the next available sequence number for prefix in year.
// A counter seen for the first time is seeded from the highest number
// already issued that year.
func (r *JSONSequenceRepo) NextSeq(ctx context.Context, prefix string, year int) (int, error) {
	counters, err := r.c.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	key := idgen.SequenceKey(prefix, year)
	i := r.c.indexOf(counters, key)
	if i < 0 {
		seed, err := r.highestIssued(ctx, prefix, year)
		if err != nil {
			return 0, fmt.Errorf("seeding sequence %s: %w", key, err)
		}
		counters = append(counters, &sequenceCounter{Key: key, Next: seed + 1})
		i = len(counters) - 1
	}
	next := counters[i].Next
	counters[i].Next++
	if err := r.c.saveAll(ctx, counters); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *JSONSequenceRepo) highestIssued(ctx context.Context, prefix string, year int) (int, error) {
	src, ok := numberSources[prefix]
	if !ok {
		return 0, nil
	}
	raw, err := r.c.conn.Load(ctx, src.collection)
	if err != nil {
		return 0, domain.NewPersistenceError("loading "+src.collection, err)
	}
	highest := 0
	for _, rec := range raw {
		var fields map[string]json.RawMessage
		if json.Unmarshal(rec, &fields) != nil {
			continue
		}
		var number string
		if json.Unmarshal(fields[src.field], &number) != nil {
			continue
		}
		y, seq, ok := idgen.ParseNumber(prefix, number)
		if ok && y == year && seq > highest {
			highest = seq
		}
	}
	return highest, nil
}
