package filter

// Pager accumulates offset/limit pages of a list, deduplicating merged rows
// by id because the server is known to return overlapping pages. Reset
// implements pull-to-refresh: offset back to zero, accumulated rows dropped.
type Pager[T any] struct {
	limit  int
	offset int
	more   bool
	items  []T
	seen   map[int64]struct{}
	id     func(T) int64
}

// NewPager creates a pager loading pages of the given size.
func NewPager[T any](limit int, id func(T) int64) *Pager[T] {
	return &Pager[T]{
		limit: limit,
		more:  true,
		seen:  make(map[int64]struct{}),
		id:    id,
	}
}

// Items returns the accumulated, deduplicated rows.
func (p *Pager[T]) Items() []T {
	return p.items
}

// Limit returns the page size to request.
func (p *Pager[T]) Limit() int {
	return p.limit
}

// Offset returns the offset to request the next page at.
func (p *Pager[T]) Offset() int {
	return p.offset
}

// HasMore reports whether another page is worth requesting. It turns false
// once a short page arrives.
func (p *Pager[T]) HasMore() bool {
	return p.more
}

// Merge folds one fetched page into the accumulated rows, dropping any row
// whose id was already merged.
func (p *Pager[T]) Merge(page []T) {
	for _, item := range page {
		id := p.id(item)
		if _, dup := p.seen[id]; dup {
			continue
		}
		p.seen[id] = struct{}{}
		p.items = append(p.items, item)
	}
	p.offset += p.limit
	p.more = len(page) == p.limit
}

// Reset drops everything and starts over from offset zero.
func (p *Pager[T]) Reset() {
	p.offset = 0
	p.more = true
	p.items = nil
	p.seen = make(map[int64]struct{})
}
