package ui

// Board is an in-memory Sink with a fixed set of targets.
// Writes to unknown targets are dropped. Targets start hidden.
type Board struct {
	ids     []string
	text    map[string]string
	visible map[string]bool
	writes  uint64
}

// NewBoard creates a board with the given targets, in display order.
func NewBoard(ids ...string) *Board {
	b := &Board{
		ids:     append([]string(nil), ids...),
		text:    make(map[string]string, len(ids)),
		visible: make(map[string]bool, len(ids)),
	}
	for _, id := range ids {
		b.text[id] = ""
		b.visible[id] = false
	}
	return b
}

// SetText implements Sink.
func (b *Board) SetText(id, value string) {
	if _, ok := b.text[id]; !ok {
		return
	}
	b.text[id] = value
	b.writes++
}

// SetVisible implements Sink.
func (b *Board) SetVisible(id string, visible bool) {
	if _, ok := b.visible[id]; !ok {
		return
	}
	b.visible[id] = visible
	b.writes++
}

// Has implements Prober.
func (b *Board) Has(id string) bool {
	_, ok := b.text[id]
	return ok
}

// Text returns the current text of id.
func (b *Board) Text(id string) string {
	return b.text[id]
}

// Visible reports whether id is currently shown.
func (b *Board) Visible(id string) bool {
	return b.visible[id]
}

// IDs returns the targets in display order.
func (b *Board) IDs() []string {
	return b.ids
}

// Shown returns the texts of visible targets in display order.
func (b *Board) Shown() []string {
	var out []string
	for _, id := range b.ids {
		if b.visible[id] {
			out = append(out, b.text[id])
		}
	}
	return out
}

// Writes returns the number of accepted updates, for change detection.
func (b *Board) Writes() uint64 {
	return b.writes
}
