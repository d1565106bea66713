package prompt

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	out, err := Fill(`Return {{"a": 1}} for: {extracted_text}`, map[string]string{
		TextSlot: "Name: {Jane} Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, `Return {"a": 1} for: Name: {Jane} Doe`, out)
}

func TestFill_RepeatedSlot(t *testing.T) {
	out, err := Fill("{x} and {x}", map[string]string{"x": "y"})
	require.NoError(t, err)
	assert.Equal(t, "y and y", out)
}

func TestFill_MissingSlot(t *testing.T) {
	_, err := Fill("no slot here", map[string]string{TextSlot: "text"})
	assert.ErrorIs(t, err, ErrSlotMissing)

	// an escaped slot is literal text, not a slot
	_, err = Fill("{{extracted_text}}", map[string]string{TextSlot: "text"})
	assert.ErrorIs(t, err, ErrSlotMissing)
}

func TestStore_Render(t *testing.T) {
	store := NewStore(fstest.MapFS{
		"p.txt": {Data: []byte("Text: {extracted_text}")},
	})

	out, err := store.Render("p.txt", map[string]string{TextSlot: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Text: hello", out)
}

func TestStore_MissingTemplate(t *testing.T) {
	store := NewStore(fstest.MapFS{})

	_, err := store.Render(ExtractionTemplate, map[string]string{TextSlot: "x"})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDefaultStore_EmbeddedExtractionTemplate(t *testing.T) {
	store := NewDefaultStore("")

	out, err := store.Render(ExtractionTemplate, map[string]string{TextSlot: "PATIENT: Jane Doe"})
	require.NoError(t, err)
	assert.Contains(t, out, "PATIENT: Jane Doe")
	assert.Contains(t, out, `"Ordering Physician Name": "..."`)
	assert.NotContains(t, out, "{{")
}

func TestDefaultStore_Directory(t *testing.T) {
	dir := t.TempDir()
	store := NewDefaultStore(dir)

	_, err := store.Load(ExtractionTemplate)
	assert.Error(t, err)
}
