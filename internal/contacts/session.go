package contacts

// Session is the explicit state of one browsing session: the dataset, the
// active query, the filtered view derived from both, and the page cursor.
// It is not safe for concurrent use.
type Session struct {
	store  Store
	query  string
	view   []Record
	cursor int
}

// NewSession returns an empty session showing page 1.
func NewSession() *Session {
	return &Session{view: []Record{}, cursor: 1}
}

// Ingest replaces the dataset and re-applies the active query, which returns
// the cursor to page 1.
func (s *Session) Ingest(raw []Record) IngestStats {
	stats := s.store.Ingest(raw)
	s.Filter(s.query)
	return stats
}

// Filter sets the active query, recomputes the view and resets the cursor.
func (s *Session) Filter(query string) {
	s.query = query
	s.view = Apply(s.store.Records(), query)
	s.cursor = 1
}

// Next moves one page forward when possible.
func (s *Session) Next() { s.advance(Next) }

// Prev moves one page back when possible.
func (s *Session) Prev() { s.advance(Prev) }

// Advance moves the cursor in dir.
func (s *Session) Advance(dir Direction) { s.advance(dir) }

func (s *Session) advance(dir Direction) {
	page := Paginate(s.view, s.cursor)
	s.cursor = Advance(page.Cursor, page.TotalPages, dir)
}

// Render paginates the current view and projects it for display.
func (s *Session) Render() RenderModel {
	page := Paginate(s.view, s.cursor)
	s.cursor = page.Cursor
	rm := Project(page, len(s.view))
	rm.Total = s.store.Len()
	rm.Query = s.query
	return rm
}

// Query returns the active query as entered.
func (s *Session) Query() string { return s.query }

// Cursor returns the current page number.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the dataset size.
func (s *Session) Len() int { return s.store.Len() }

// Matches returns the size of the filtered view.
func (s *Session) Matches() int { return len(s.view) }
