package layout

// WidthModel measures and classifies individual runes.
type WidthModel struct {
	widths map[rune]float64
	marks  map[rune]struct{}
}

// NewWidthModel builds a WidthModel from cfg. The tables are copied.
func NewWidthModel(cfg Config) (*WidthModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	own := cfg.clone()
	return &WidthModel{
		widths: own.CharWidths,
		marks:  own.ChineseMarks,
	}, nil
}

// IsChinese reports whether r belongs to the CJK width class: either a
// configured Chinese mark or a rune in U+4E00..U+9FFF. Other scripts
// (kana, Hangul, extension blocks, full-width Latin) are not included.
func (m *WidthModel) IsChinese(r rune) bool {
	if _, ok := m.marks[r]; ok {
		return true
	}
	return r >= cjkFirst && r <= cjkLast
}

// Width returns the visual width of r.
func (m *WidthModel) Width(r rune) float64 {
	if w, ok := m.widths[r]; ok {
		return w
	}
	if m.IsChinese(r) {
		return ChineseWidth
	}
	return LatinWidth
}

// StringWidth returns the summed width of every rune in s.
func (m *WidthModel) StringWidth(s string) float64 {
	var total float64
	for _, r := range s {
		total += m.Width(r)
	}
	return total
}
