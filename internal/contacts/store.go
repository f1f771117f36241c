package contacts

// IngestStats summarizes one ingest call.
type IngestStats struct {
	Received   int
	Kept       int
	Duplicates int
}

// Dedupe keeps the first occurrence of every non-empty key and drops later
// records carrying the same key. Records without a key always pass. When no
// record in the batch has a key the batch is returned unchanged.
func Dedupe(raw []Record) []Record {
	keyed := false
	for _, r := range raw {
		if r.hasKey() {
			keyed = true
			break
		}
	}
	out := make([]Record, 0, len(raw))
	if !keyed {
		return append(out, raw...)
	}

	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		if r.hasKey() {
			if _, dup := seen[r.Key]; dup {
				continue
			}
			seen[r.Key] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

// Store holds the deduplicated dataset. It is replaced wholesale on every
// ingest and never mutated record by record.
type Store struct {
	records []Record
}

// Ingest replaces the dataset with the deduplicated batch.
func (s *Store) Ingest(raw []Record) IngestStats {
	s.records = Dedupe(raw)
	return IngestStats{
		Received:   len(raw),
		Kept:       len(s.records),
		Duplicates: len(raw) - len(s.records),
	}
}

// Records returns the current dataset. Callers must not modify it.
func (s *Store) Records() []Record {
	return s.records
}

// Len returns the dataset size.
func (s *Store) Len() int {
	return len(s.records)
}
