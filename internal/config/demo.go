package config

import (
	"fmt"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
)

const (
	cameraIcon = "◉"
	actionIcon = "⇪"
)

// DemoItems is the layout used when no items are configured: eight
// alternating camera and action items, every action item carrying
// nine subitems.
func DemoItems() []toolbar.ActionItem {
	pattern := []bool{false, true, false, false, true, false, false, true, false}
	subs := make([]toolbar.ActionItem, len(pattern))
	for i, isAction := range pattern {
		subs[i] = demoItem(fmt.Sprintf("sub%d", i), isAction)
	}

	items := make([]toolbar.ActionItem, 8)
	for i := range items {
		isAction := i%2 == 1
		items[i] = demoItem(fmt.Sprintf("item%d", i), isAction)
		if isAction {
			items[i].SubItems = subs
			items[i] = items[i].Clone()
		}
	}
	return items
}

func demoItem(id string, isAction bool) toolbar.ActionItem {
	if isAction {
		return toolbar.NewItem(id, actionIcon, toolbar.WithTitle("Action"))
	}
	return toolbar.NewItem(id, cameraIcon, toolbar.WithTitle("Camera"))
}
