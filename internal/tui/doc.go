// Package tui hosts a scrolltoolbar in the terminal.
//
// It is the rendering collaborator of pkg/toolbar: it turns mouse
// presses into taps through toolbar.Geometry, forwards keyboard input
// as toolbar events, and plays back the effects every transition
// returns. It never mutates toolbar state itself.
//
// Component architecture:
//
//	model.go     root model, message routing, Init/Update/View
//	keys.go      key bindings
//	animation.go frame ticks, indicator slide and panel entrance
//	theme.go     centralized color + style definitions
//	header.go    top bar with toolbar flags, status line + key hints
//	row.go       main item row and selection indicator
//	panel.go     subitem panel
//	helpers.go   truncation, clamping and line assembly
package tui
