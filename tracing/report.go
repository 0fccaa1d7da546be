package tracing

import (
	"context"

	"github.com/sarchlab/oppnet/datarecording"
)

// MapTables binds the tables written by a DBTracer to their entry types.
func MapTables(r datarecording.DataReader) {
	r.MapTable(TableMessages, MessageEntry{})
	r.MapTable(TableTransfers, TransferEntry{})
	r.MapTable(TableDeliveries, DeliveryEntry{})
	r.MapTable(TableDrops, DropEntry{})
}

// ReadStats rebuilds the statistics of a recorded run. The tables must be
// mapped with MapTables.
func ReadStats(ctx context.Context, r datarecording.DataReader) (Stats, error) {
	s := Stats{Dropped: make(map[string]int)}

	counts := []struct {
		n      *int
		table  string
		filter datarecording.Filter
	}{
		{&s.Created, TableMessages, datarecording.Filter{}},
		{&s.Started, TableTransfers, datarecording.Filter{}},
		{&s.Relayed, TableTransfers, outcomeIs(OutcomeDone)},
		{&s.Aborted, TableTransfers, outcomeIs(OutcomeAborted)},
	}

	for _, c := range counts {
		n, err := r.Count(ctx, c.table, c.filter)
		if err != nil {
			return Stats{}, err
		}

		*c.n = n
	}

	deliveries, err := r.Query(ctx, TableDeliveries, datarecording.Filter{})
	if err != nil {
		return Stats{}, err
	}

	for _, e := range deliveries {
		d := e.(*DeliveryEntry)
		s.Delivered++
		s.TotalLatency += d.Latency
		s.TotalHops += d.Hops
	}

	drops, err := r.Query(ctx, TableDrops, datarecording.Filter{})
	if err != nil {
		return Stats{}, err
	}

	for _, e := range drops {
		s.Dropped[e.(*DropEntry).Reason]++
	}

	return s, nil
}

// SlowestDeliveries returns the n recorded deliveries with the highest
// latency, slowest first.
func SlowestDeliveries(
	ctx context.Context,
	r datarecording.DataReader,
	n int,
) ([]DeliveryEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := r.Query(ctx, TableDeliveries, datarecording.Filter{
		OrderBy: "Latency DESC, Message",
		Limit:   n,
	})
	if err != nil {
		return nil, err
	}

	deliveries := make([]DeliveryEntry, len(entries))
	for i, e := range entries {
		deliveries[i] = *e.(*DeliveryEntry)
	}

	return deliveries, nil
}

func outcomeIs(outcome string) datarecording.Filter {
	return datarecording.Filter{Where: "Outcome = ?", Args: []any{outcome}}
}
