package ingest

// Entry is a document waiting in a Batch, with the key used to identify it
// in rejection diagnostics.
type Entry struct {
	Key string
	Doc interface{}
}

// Batch is a bounded, reusable buffer of documents awaiting one bulk insert.
type Batch struct {
	limit   int
	entries []Entry
}

// NewBatch returns an empty batch holding at most limit entries. A limit
// below 1 is treated as 1.
func NewBatch(limit int) *Batch {
	if limit < 1 {
		limit = 1
	}
	return &Batch{limit: limit, entries: make([]Entry, 0, limit)}
}

// Add appends an entry.
func (b *Batch) Add(e Entry) {
	b.entries = append(b.entries, e)
}

// Len returns the number of buffered entries.
func (b *Batch) Len() int { return len(b.entries) }

// Full reports whether the batch reached its limit.
func (b *Batch) Full() bool { return len(b.entries) >= b.limit }

// Docs returns the buffered documents in insertion order.
func (b *Batch) Docs() []interface{} {
	docs := make([]interface{}, len(b.entries))
	for i, e := range b.entries {
		docs[i] = e.Doc
	}
	return docs
}

// KeyAt returns the key of the entry at index i, or "" when out of range.
func (b *Batch) KeyAt(i int) string {
	if i < 0 || i >= len(b.entries) {
		return ""
	}
	return b.entries[i].Key
}

// Reset empties the batch, keeping its capacity.
func (b *Batch) Reset() {
	clear(b.entries)
	b.entries = b.entries[:0]
}
