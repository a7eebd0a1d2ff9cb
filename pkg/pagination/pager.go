package pagination

// Pager holds a paginated sequence and the page currently selected.
// It is not safe for concurrent use; callers dispatch one command at a time.
type Pager[T any] struct {
	pages [][]T
	state State
}

// NewPager paginates items and starts on the first page.
func NewPager[T any](items []T, pageSize int) *Pager[T] {
	pages := Paginate(items, pageSize)
	return &Pager[T]{
		pages: pages,
		state: NewState(len(pages)),
	}
}

// Dispatch applies a navigation command and returns the new state.
func (p *Pager[T]) Dispatch(cmd Command) State {
	p.state = Reduce(p.state, cmd)
	return p.state
}

// GoTo jumps to page index if it exists.
func (p *Pager[T]) GoTo(index int) State {
	return p.Dispatch(GoTo(index))
}

// Next advances one page if possible.
func (p *Pager[T]) Next() State {
	return p.Dispatch(Next())
}

// Prev goes back one page if possible.
func (p *Pager[T]) Prev() State {
	return p.Dispatch(Prev())
}

// State returns the current navigation state.
func (p *Pager[T]) State() State {
	return p.state
}

// Len returns the number of pages.
func (p *Pager[T]) Len() int {
	return len(p.pages)
}

// Current returns the records on the selected page, or nil when there are none.
func (p *Pager[T]) Current() []T {
	if p.state.IsEmpty() {
		return nil
	}
	return p.pages[p.state.Current]
}

// Page returns page index, or nil when out of range.
func (p *Pager[T]) Page(index int) []T {
	if index < 0 || index >= len(p.pages) {
		return nil
	}
	return p.pages[index]
}
