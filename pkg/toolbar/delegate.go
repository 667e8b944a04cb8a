package toolbar

// Delegate observes toolbar transitions. Every hook runs synchronously
// inside the transition: "will" hooks before the state changes, "did"
// hooks after the renderer work has been queued.
type Delegate interface {
	WillSelect(t *Toolbar, item ActionItem)
	DidSelect(t *Toolbar, item ActionItem)
	WillHideSubitems(t *Toolbar)
	DidHideSubitems(t *Toolbar)
	WillShowSubitems(t *Toolbar, subitems []ActionItem, index int)
	DidShowSubitems(t *Toolbar, subitems []ActionItem, index int)
}

// NopDelegate implements every hook as a no-op. Embed it to implement
// only the hooks you need.
type NopDelegate struct{}

func (NopDelegate) WillSelect(*Toolbar, ActionItem)             {}
func (NopDelegate) DidSelect(*Toolbar, ActionItem)              {}
func (NopDelegate) WillHideSubitems(*Toolbar)                   {}
func (NopDelegate) DidHideSubitems(*Toolbar)                    {}
func (NopDelegate) WillShowSubitems(*Toolbar, []ActionItem, int) {}
func (NopDelegate) DidShowSubitems(*Toolbar, []ActionItem, int)  {}

// MultiDelegate forwards each hook to its members in order.
type MultiDelegate []Delegate

func (m MultiDelegate) WillSelect(t *Toolbar, item ActionItem) {
	for _, d := range m {
		d.WillSelect(t, item)
	}
}

func (m MultiDelegate) DidSelect(t *Toolbar, item ActionItem) {
	for _, d := range m {
		d.DidSelect(t, item)
	}
}

func (m MultiDelegate) WillHideSubitems(t *Toolbar) {
	for _, d := range m {
		d.WillHideSubitems(t)
	}
}

func (m MultiDelegate) DidHideSubitems(t *Toolbar) {
	for _, d := range m {
		d.DidHideSubitems(t)
	}
}

func (m MultiDelegate) WillShowSubitems(t *Toolbar, subitems []ActionItem, index int) {
	for _, d := range m {
		d.WillShowSubitems(t, subitems, index)
	}
}

func (m MultiDelegate) DidShowSubitems(t *Toolbar, subitems []ActionItem, index int) {
	for _, d := range m {
		d.DidShowSubitems(t, subitems, index)
	}
}
