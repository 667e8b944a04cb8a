package jsonutil

import (
	"testing"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsSnapshot(t *testing.T) {
	items := []toolbar.ActionItem{
		toolbar.NewItem("camera", "◉", toolbar.WithTitle("Camera")),
		toolbar.NewItem("share", "⇪", toolbar.WithSubItems(
			toolbar.NewItem("mail", "✉"),
			toolbar.NewItem("pin", "⚲", toolbar.Exchangeable(false)),
		)),
	}

	s, err := MarshalItems(items)
	require.NoError(t, err)
	assert.Contains(t, s, `"id":"camera"`)
	assert.Contains(t, s, `"exchangeable":false`)

	back, err := UnmarshalItems(s)
	require.NoError(t, err)
	assert.Equal(t, items, back)
}

func TestUnmarshalItemsInvalid(t *testing.T) {
	_, err := UnmarshalItems("{not json")
	assert.Error(t, err)
}

func TestPrettyAndCompact(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", PrettyJSON(`{"a":1}`))
	assert.Equal(t, "oops", PrettyJSON("oops"))
	assert.Equal(t, `{"a":[1,2]}`, CompactJSON("{ \"a\": [1, 2] }"))
	assert.Equal(t, "oops", CompactJSON("oops"))
}
