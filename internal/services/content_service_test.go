package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
)

func seedBlocks(t *testing.T, env *testEnv) {
	t.Helper()
	hero := models.ObjectValue().
		With("title", models.StringValue("Earn more while you drive")).
		With("cities", models.ArrayValue(models.StringValue("Austin"), models.StringValue("Dallas"))).
		With("cta", models.ObjectValue().With("label", models.StringValue("Apply")))

	err := env.content.Seed(context.Background(), []models.ContentBlock{
		{ID: "home-hero", Page: "home", SectionID: "Hero", Content: hero, Order: 1, IsActive: true},
		{ID: "about-story", Page: "about", SectionID: "Story", Content: models.ObjectValue().With("body", models.StringValue("We started...")), IsActive: true},
		{ID: "home-faq", Page: "home", SectionID: "FAQ", Content: models.ObjectValue(), Order: 2, IsActive: false},
	})
	require.NoError(t, err)
}

func TestGroupByPage(t *testing.T) {
	env := newTestEnv(t)
	seedBlocks(t, env)

	blocks, err := env.content.ListBlocks(context.Background())
	require.NoError(t, err)

	groups := GroupByPage(blocks)
	require.Len(t, groups, 2)
	assert.Equal(t, "about", groups[0].Page)
	assert.Equal(t, "home", groups[1].Page)
	require.Len(t, groups[1].Blocks, 2)
	assert.Equal(t, "home-hero", groups[1].Blocks[0].ID)
}

func TestPageBlocksOnlyActive(t *testing.T) {
	env := newTestEnv(t)
	seedBlocks(t, env)

	blocks, err := env.content.PageBlocks(context.Background(), "home")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "home-hero", blocks[0].ID)

	empty, err := env.content.PageBlocks(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUpdateBlockReplacesContent(t *testing.T) {
	env := newTestEnv(t)
	seedBlocks(t, env)
	ctx := context.Background()

	content, err := models.ParseContent(`{"headline":"New","items":[1,2]}`)
	require.NoError(t, err)
	inactive := false

	block, err := env.content.UpdateBlock(ctx, "home-hero", content, &inactive)
	require.NoError(t, err)
	assert.False(t, block.IsActive)

	stored, err := env.content.GetBlock(ctx, "home-hero")
	require.NoError(t, err)
	raw, err := json.Marshal(stored.Content)
	require.NoError(t, err)
	assert.JSONEq(t, `{"headline":"New","items":[1,2]}`, string(raw))

	_, err = env.content.UpdateBlock(ctx, "home-hero", models.StringValue("flat"), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.content.UpdateBlock(ctx, "nope", content, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEditFieldInvalidArrayKeepsBlock(t *testing.T) {
	env := newTestEnv(t)
	seedBlocks(t, env)
	ctx := context.Background()

	result, err := env.content.EditField(ctx, "home-hero", "cities", `["Austin",`)
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.NotEmpty(t, result.Message)

	stored, err := env.content.GetBlock(ctx, "home-hero")
	require.NoError(t, err)
	cities, ok := stored.Content.Lookup("cities")
	require.True(t, ok)
	assert.True(t, cities.Equal(models.ArrayValue(models.StringValue("Austin"), models.StringValue("Dallas"))))
}

func TestEditFieldValidValues(t *testing.T) {
	env := newTestEnv(t)
	seedBlocks(t, env)
	ctx := context.Background()

	result, err := env.content.EditField(ctx, "home-hero", "cities", `["Houston",{"name":"Dallas","zones":[1,2]}]`)
	require.NoError(t, err)
	assert.True(t, result.Updated)

	result, err = env.content.EditField(ctx, "home-hero", "cta.label", "Join now")
	require.NoError(t, err)
	assert.True(t, result.Updated)

	stored, err := env.content.GetBlock(ctx, "home-hero")
	require.NoError(t, err)
	raw, err := json.Marshal(stored.Content)
	require.NoError(t, err)
	assert.Equal(t,
		`{"title":"Earn more while you drive","cities":["Houston",{"name":"Dallas","zones":[1,2]}],"cta":{"label":"Join now"}}`,
		string(raw))

	_, err = env.content.EditField(ctx, "home-hero", "cta.missing", "x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPath)
}

func TestBlockFields(t *testing.T) {
	env := newTestEnv(t)
	seedBlocks(t, env)

	fields, err := env.content.BlockFields(context.Background(), "home-hero")
	require.NoError(t, err)
	assert.Equal(t, []models.FieldDescriptor{
		{Path: "title", Editor: models.EditorLine},
		{Path: "cities", Editor: models.EditorArray},
		{Path: "cta", Editor: models.EditorObject},
		{Path: "cta.label", Editor: models.EditorLine},
	}, fields)
}

func TestSeedValidatesBlocks(t *testing.T) {
	env := newTestEnv(t)

	err := env.content.Seed(context.Background(), []models.ContentBlock{{ID: "x", Content: models.StringValue("a")}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseSeed(t *testing.T) {
	data := []byte(`
blocks:
  - id: home-hero
    page: home
    section_id: Hero
    order: 1
    content:
      title: Earn more
      stats:
        drivers: 1200
        rating: 4.9
      cities: [Austin, Dallas]
      featured: true
  - id: about-story
    page: about
    is_active: false
    content:
      body: Story
`)

	blocks, err := ParseSeed(data)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, "Hero", blocks[0].SectionID)
	assert.True(t, blocks[0].IsActive)
	raw, err := json.Marshal(blocks[0].Content)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Earn more","stats":{"drivers":1200,"rating":4.9},"cities":["Austin","Dallas"],"featured":true}`, string(raw))

	assert.Equal(t, "about-story", blocks[1].SectionID)
	assert.False(t, blocks[1].IsActive)
}

func TestParseSeedRejectsBrokenYAML(t *testing.T) {
	_, err := ParseSeed([]byte("blocks: ["))
	assert.Error(t, err)
}
