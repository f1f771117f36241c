// Package contacts holds the client-side contact dataset pipeline: ingest with
// key deduplication, free-text filtering, page windowing and projection into a
// render model.
package contacts

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Record is one scraped contact. Every field may be empty.
type Record struct {
	Key     string `json:"key,omitempty"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"endereco,omitempty"`
	Segment string `json:"segmento,omitempty"`
}

// Fields returns the record's attribute values in a fixed order.
func (r Record) Fields() []string {
	return []string{r.Key, r.Name, r.Phone, r.Address, r.Segment}
}

// UnmarshalJSON decodes a backend record without ever failing on field shape.
// Strings are kept, numbers keep their literal digits and booleans are
// rendered as text, anything else (null, objects, arrays) is treated as
// absent. A boolean key is absent too, so it never enables deduplication. A
// non-object payload yields an empty record.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	r.Key = keyText(raw["key"])
	r.Name = scalarText(raw["name"])
	r.Phone = scalarText(raw["phone"])
	r.Address = scalarText(raw["endereco"])
	r.Segment = scalarText(raw["segmento"])
	return nil
}

func scalarText(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func keyText(msg json.RawMessage) string {
	if b := bytes.TrimSpace(msg); bytes.Equal(b, []byte("true")) || bytes.Equal(b, []byte("false")) {
		return ""
	}
	return scalarText(msg)
}

// hasKey reports whether the record carries a usable dedup key.
func (r Record) hasKey() bool {
	return r.Key != ""
}
