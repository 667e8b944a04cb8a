package toolbar

// ActionItem is one toolbar entry. Items are values: copying an item and
// changing its SubItems never affects the original as long as the copy
// was made with Clone.
type ActionItem struct {
	// Identifier is stable and should be unique within a sibling list.
	Identifier string
	// Icon is an opaque visual resource reference. The terminal host
	// renders it as a short glyph.
	Icon  string
	Title string
	// TintColor overrides the style's selected tint for this item.
	TintColor      *Color
	IsExchangeable bool
	Action         Action
	SubItems       []ActionItem
}

// ItemOption configures an ActionItem built by NewItem.
type ItemOption func(*ActionItem)

// WithTitle sets the item title.
func WithTitle(title string) ItemOption {
	return func(it *ActionItem) { it.Title = title }
}

// WithAction binds the action invoked when the item is tapped.
func WithAction(a Action) ItemOption {
	return func(it *ActionItem) { it.Action = a }
}

// WithTint sets a per-item selected tint.
func WithTint(c Color) ItemOption {
	return func(it *ActionItem) { it.TintColor = &c }
}

// WithSubItems attaches subitems. The slice is cloned.
func WithSubItems(subs ...ActionItem) ItemOption {
	return func(it *ActionItem) { it.SubItems = cloneItems(subs) }
}

// Exchangeable controls whether the item may be swapped into the main row.
func Exchangeable(ok bool) ItemOption {
	return func(it *ActionItem) { it.IsExchangeable = ok }
}

// NewItem builds an exchangeable item with no subitems.
func NewItem(identifier, icon string, opts ...ItemOption) ActionItem {
	it := ActionItem{
		Identifier:     identifier,
		Icon:           icon,
		IsExchangeable: true,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// IsExpandable reports whether tapping the selected item opens a panel.
func (it ActionItem) IsExpandable() bool {
	return len(it.SubItems) > 0
}

// Clone returns a deep copy of the item and its subitem tree.
func (it ActionItem) Clone() ActionItem {
	out := it
	if it.TintColor != nil {
		c := *it.TintColor
		out.TintColor = &c
	}
	out.SubItems = cloneItems(it.SubItems)
	return out
}

// Stripped returns a copy of the item without subitems.
func (it ActionItem) Stripped() ActionItem {
	out := it.Clone()
	out.SubItems = nil
	return out
}

// Label is the title when present, the identifier otherwise.
func (it ActionItem) Label() string {
	if it.Title != "" {
		return it.Title
	}
	return it.Identifier
}

func cloneItems(items []ActionItem) []ActionItem {
	if items == nil {
		return nil
	}
	out := make([]ActionItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Identifiers lists the identifiers of items, in order.
func Identifiers(items []ActionItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Identifier
	}
	return ids
}
