// Package jsonutil provides JSON helpers for scrolltoolbar.
//
// Item trees are written to the journal as JSON snapshots so a history
// listing can show what a slot held after an exchange.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
)

// ItemNode is the JSON shape of an ActionItem. Actions and tints are
// runtime-only and are not serialized.
type ItemNode struct {
	ID           string     `json:"id"`
	Icon         string     `json:"icon,omitempty"`
	Title        string     `json:"title,omitempty"`
	Exchangeable bool       `json:"exchangeable"`
	Subitems     []ItemNode `json:"subitems,omitempty"`
}

// FromItem converts an item and its subitems.
func FromItem(it toolbar.ActionItem) ItemNode {
	n := ItemNode{
		ID:           it.Identifier,
		Icon:         it.Icon,
		Title:        it.Title,
		Exchangeable: it.IsExchangeable,
	}
	for _, sub := range it.SubItems {
		n.Subitems = append(n.Subitems, FromItem(sub))
	}
	return n
}

// FromItems converts a list of items.
func FromItems(items []toolbar.ActionItem) []ItemNode {
	nodes := make([]ItemNode, len(items))
	for i, it := range items {
		nodes[i] = FromItem(it)
	}
	return nodes
}

// Item converts the node back. The result has no action bound.
func (n ItemNode) Item() toolbar.ActionItem {
	it := toolbar.NewItem(n.ID, n.Icon,
		toolbar.WithTitle(n.Title),
		toolbar.Exchangeable(n.Exchangeable))
	for _, sub := range n.Subitems {
		it.SubItems = append(it.SubItems, sub.Item())
	}
	return it
}

// MarshalItems encodes items as compact JSON.
func MarshalItems(items []toolbar.ActionItem) (string, error) {
	b, err := json.Marshal(FromItems(items))
	if err != nil {
		return "", fmt.Errorf("marshaling items: %w", err)
	}
	return string(b), nil
}

// UnmarshalItems decodes a snapshot written by MarshalItems.
func UnmarshalItems(s string) ([]toolbar.ActionItem, error) {
	var nodes []ItemNode
	if err := json.Unmarshal([]byte(s), &nodes); err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}
	items := make([]toolbar.ActionItem, len(nodes))
	for i, n := range nodes {
		items[i] = n.Item()
	}
	return items, nil
}

// PrettyJSON formats a JSON string with indentation for display.
// Returns the original string if it's not valid JSON.
func PrettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

// CompactJSON minifies a JSON string by removing whitespace.
func CompactJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
