package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridemedia-backend/internal/apperrors"
)

const heroJSON = `{"title":"Drive and earn","stats":[{"label":"Drivers","value":1200},{"label":"Cities","value":12}],"cta":{"label":"Apply","link":"/drivers"},"visible":true,"note":null}`

func TestContentValueRoundTripPreservesKeyOrder(t *testing.T) {
	var v ContentValue
	require.NoError(t, json.Unmarshal([]byte(heroJSON), &v))

	assert.Equal(t, KindObject, v.Kind)
	assert.Equal(t, []string{"title", "stats", "cta", "visible", "note"}, v.Keys)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, heroJSON, string(out))
}

func TestContentValueScanValue(t *testing.T) {
	var v ContentValue
	require.NoError(t, v.Scan([]byte(heroJSON)))

	stored, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, heroJSON, stored)

	var empty ContentValue
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, KindNull, empty.Kind)
}

func TestParseContentRejectsGarbage(t *testing.T) {
	for _, raw := range []string{``, `[1,2`, `{"a":}`, `[1] [2]`, `nope`} {
		_, err := ParseContent(raw)
		assert.ErrorIs(t, err, apperrors.ErrParse, raw)
	}
}

func TestSetPathCreatesNestedObjects(t *testing.T) {
	v := ObjectValue().With("title", StringValue("x"))

	require.NoError(t, v.SetPath("cta.link.href", StringValue("/apply")))

	got, ok := v.Lookup("cta.link.href")
	require.True(t, ok)
	assert.Equal(t, "/apply", got.Str)
	assert.Equal(t, []string{"title", "cta"}, v.Keys)
}

func TestSetPathThroughScalarFails(t *testing.T) {
	v := ObjectValue().With("title", StringValue("x"))

	err := v.SetPath("title.sub", StringValue("y"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPath)

	got, _ := v.Lookup("title")
	assert.Equal(t, "x", got.Str)

	assert.ErrorIs(t, v.SetPath("a..b", StringValue("y")), apperrors.ErrInvalidPath)
}

func TestCloneIsIndependent(t *testing.T) {
	original, err := ParseContent(heroJSON)
	require.NoError(t, err)

	copied := original.Clone()
	require.NoError(t, copied.SetPath("cta.label", StringValue("Join")))

	label, _ := original.Lookup("cta.label")
	assert.Equal(t, "Apply", label.Str)
}

func TestEditorForStringLength(t *testing.T) {
	assert.Equal(t, EditorLine, EditorFor(StringValue(strings.Repeat("a", 99))))
	assert.Equal(t, EditorText, EditorFor(StringValue(strings.Repeat("a", 100))))
	assert.Equal(t, EditorArray, EditorFor(ArrayValue()))
	assert.Equal(t, EditorObject, EditorFor(ObjectValue()))
	assert.Equal(t, EditorNone, EditorFor(NullValue()))
}

func TestFieldDescriptorsWalkNestedObjects(t *testing.T) {
	v, err := ParseContent(heroJSON)
	require.NoError(t, err)

	assert.Equal(t, []FieldDescriptor{
		{Path: "title", Editor: EditorLine},
		{Path: "stats", Editor: EditorArray},
		{Path: "cta", Editor: EditorObject},
		{Path: "cta.label", Editor: EditorLine},
		{Path: "cta.link", Editor: EditorLine},
		{Path: "visible", Editor: EditorBool},
		{Path: "note", Editor: EditorNone},
	}, v.FieldDescriptors())
}

func TestDraftInvalidArrayLeavesValueUnchanged(t *testing.T) {
	v, err := ParseContent(heroJSON)
	require.NoError(t, err)
	draft := NewContentDraft(v)

	err = draft.EditField("stats", `[{"label": "Drivers",`)
	assert.ErrorIs(t, err, apperrors.ErrParse)

	err = draft.EditField("stats", `{"label": "not an array"}`)
	assert.ErrorIs(t, err, apperrors.ErrParse)

	assert.True(t, draft.Content().Equal(v))
}

func TestDraftValidArrayReplacesExactly(t *testing.T) {
	v, err := ParseContent(heroJSON)
	require.NoError(t, err)
	draft := NewContentDraft(v)

	raw := `[{"label":"Cities","value":15,"tags":["a","b"]},{"label":"Drivers","value":1300}]`
	require.NoError(t, draft.EditField("stats", raw))

	stats, ok := draft.Content().Lookup("stats")
	require.True(t, ok)
	out, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))

	// исходное значение не тронуто
	original, _ := v.Lookup("stats")
	assert.Len(t, original.Items, 2)
	first, _ := original.Items[0].Get("label")
	assert.Equal(t, "Drivers", first.Str)
}

func TestDraftEditsNestedString(t *testing.T) {
	v, err := ParseContent(heroJSON)
	require.NoError(t, err)
	draft := NewContentDraft(v)

	require.NoError(t, draft.EditField("cta.label", "Apply now"))
	label, _ := draft.Content().Lookup("cta.label")
	assert.Equal(t, "Apply now", label.Str)

	assert.ErrorIs(t, draft.EditField("cta", "x"), apperrors.ErrInvalidPath)
	assert.ErrorIs(t, draft.EditField("missing", "x"), apperrors.ErrInvalidPath)
}
