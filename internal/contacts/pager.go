package contacts

// PageSize is the number of records per page.
const PageSize = 20

// Direction selects the page step for Advance.
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// ParseDirection maps "next"/"prev" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "next":
		return Next, true
	case "prev":
		return Prev, true
	}
	return Next, false
}

// Page is one window over a filtered view.
type Page struct {
	Window     []Record
	Cursor     int
	TotalPages int
}

// TotalPages is ceil(n / PageSize); zero for an empty view.
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate clamps cursor into the valid page range and returns that page.
// An empty view reports one page with an empty window and cursor 1.
func Paginate(view []Record, cursor int) Page {
	total := TotalPages(len(view))
	if total == 0 {
		return Page{Window: []Record{}, Cursor: 1, TotalPages: 1}
	}
	cursor = clamp(cursor, 1, total)
	start := (cursor - 1) * PageSize
	end := min(start+PageSize, len(view))
	return Page{Window: view[start:end], Cursor: cursor, TotalPages: total}
}

// Advance moves cursor one step in dir when the result stays within
// [1, totalPages]; otherwise it returns cursor unchanged.
func Advance(cursor, totalPages int, dir Direction) int {
	switch dir {
	case Next:
		if cursor < totalPages {
			return cursor + 1
		}
	case Prev:
		if cursor > 1 {
			return cursor - 1
		}
	}
	return cursor
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
