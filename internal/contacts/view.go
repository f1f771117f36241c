package contacts

// Placeholder is shown for any missing field.
const Placeholder = "N/A"

// Row is one render-ready contact line.
type Row struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Segment string `json:"segment"`
}

// Cells returns the row as display columns.
func (r Row) Cells() []string {
	return []string{r.Name, r.Phone, r.Address, r.Segment}
}

// Headers are the column titles matching Row.Cells.
var Headers = []string{"Name", "Phone", "Address", "Segment"}

// RenderModel is everything a display layer needs for one page.
type RenderModel struct {
	Rows        []Row  `json:"rows"`
	Cursor      int    `json:"page"`
	TotalPages  int    `json:"total_pages"`
	PrevEnabled bool   `json:"prev_enabled"`
	NextEnabled bool   `json:"next_enabled"`
	Count       int    `json:"count"`
	Total       int    `json:"total"`
	Query       string `json:"query,omitempty"`
}

// Project converts a page into a render model. count is the size of the
// filtered view the page was cut from.
func Project(page Page, count int) RenderModel {
	rows := make([]Row, 0, len(page.Window))
	for _, r := range page.Window {
		rows = append(rows, Row{
			Name:    orPlaceholder(r.Name),
			Phone:   orPlaceholder(r.Phone),
			Address: orPlaceholder(r.Address),
			Segment: orPlaceholder(r.Segment),
		})
	}
	return RenderModel{
		Rows:        rows,
		Cursor:      page.Cursor,
		TotalPages:  page.TotalPages,
		PrevEnabled: page.Cursor > 1 && page.TotalPages > 0,
		NextEnabled: page.Cursor < page.TotalPages && page.TotalPages > 0,
		Count:       count,
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
