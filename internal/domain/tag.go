package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTagColor is the colour given to tags created without one.
const DefaultTagColor = "#64748b"

// NoTagLabel is shown for sessions that carry no tag.
const NoTagLabel = "(no tag)"

// TagRef is an optional reference to a tag id: either none or a string id.
// The zero value is none.
type TagRef struct {
	id string
}

// NoTag returns the empty reference.
func NoTag() TagRef {
	return TagRef{}
}

// TagID returns a reference to id. An empty id is treated as none.
func TagID(id string) TagRef {
	return TagRef{id: strings.TrimSpace(id)}
}

// ID returns the referenced id and whether one is set.
func (r TagRef) ID() (string, bool) {
	return r.id, r.id != ""
}

// IsNone reports whether no tag is referenced.
func (r TagRef) IsNone() bool {
	return r.id == ""
}

// Is reports whether r references id.
func (r TagRef) Is(id string) bool {
	return r.id != "" && r.id == id
}

func (r TagRef) String() string {
	return r.id
}

// MarshalJSON encodes none as null and an id as a string.
func (r TagRef) MarshalJSON() ([]byte, error) {
	if r.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts null, strings, numbers and legacy objects carrying an "id".
func (r *TagRef) UnmarshalJSON(data []byte) error {
	*r = parseTagRef(data)
	return nil
}

func parseTagRef(raw json.RawMessage) TagRef {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return NoTag()
	}
	switch raw[0] {
	case '{':
		var obj struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return NoTag()
		}
		return TagID(rawString(obj.ID))
	case '"', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return TagID(rawString(raw))
	}
	return NoTag()
}

// Tag is a category that tracked time is spent on.
// Fields are ordered to minimize memory padding.
type Tag struct {
	IsActive *bool  `json:"isActive,omitempty"` // nil means active
	ID       string `json:"id"`
	Label    string `json:"label"`
	Color    string `json:"color"`
}

// Active reports whether the tag counts as active. Only an explicit false disables it.
func (t Tag) Active() bool {
	return t.IsActive == nil || *t.IsActive
}

// UnmarshalJSON stringifies ids that older data stored as numbers.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var rec struct {
		IsActive *bool           `json:"isActive"`
		ID       json.RawMessage `json:"id"`
		Label    json.RawMessage `json:"label"`
		Color    json.RawMessage `json:"color"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*t = Tag{
		IsActive: rec.IsActive,
		ID:       rawString(rec.ID),
		Label:    rawString(rec.Label),
		Color:    rawString(rec.Color),
	}
	return nil
}

// DefaultTags returns the tag set used on first run.
func DefaultTags() []Tag {
	return []Tag{
		{ID: "deep-work", Label: "Deep Work", Color: "#f97316"},
		{ID: "study", Label: "Study", Color: "#22c55e"},
		{ID: "work", Label: "Work", Color: "#3b82f6"},
	}
}

// NewTagID returns a fresh tag id derived from the creation time.
func NewTagID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:6])
}

// FindTag returns the index of the tag with id, or -1.
func FindTag(tags []Tag, id string) int {
	for i, t := range tags {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// TagLabel resolves a display label for ref. Deleted tags fall back to the raw id.
func TagLabel(tags []Tag, ref TagRef) string {
	id, ok := ref.ID()
	if !ok {
		return NoTagLabel
	}
	if i := FindTag(tags, id); i >= 0 && tags[i].Label != "" {
		return tags[i].Label
	}
	return id
}

// ActiveTagIDs returns the ids of active tags in stored order.
func ActiveTagIDs(tags []Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.Active() && t.ID != "" {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// DecodeTags parses a JSON array of tags, skipping malformed entries and entries
// without an id. A value that is not an array is an error.
func DecodeTags(data []byte) ([]Tag, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, len(raws))
	for _, raw := range raws {
		var t Tag
		if err := json.Unmarshal(raw, &t); err != nil || t.ID == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags, nil
}
