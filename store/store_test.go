package store

import (
	"context"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenpl/GPTrans/core/model"
)

func TestMemStoreReadMissingPage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	m := NewMemStore()
	_, err := m.ReadPage(context.Background(), "missing")
	assert.Error(t, err)
}

func TestMemStoreWriteTranslationRoundTrips(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	m := NewMemStore()
	m.PutPage(model.Page{ID: "p1", Blocks: []model.Block{{ID: "b1"}}})

	require.NoError(t, m.WriteTranslation(context.Background(), "p1", "b1", "你好"))
	page, err := m.ReadPage(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "你好", page.Blocks[0].TextTranslated)
	assert.True(t, page.Blocks[0].HasTranslation)
}

func TestMemStoreWriteStatus(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	m := NewMemStore()
	m.PutPage(model.Page{ID: "p1", Blocks: []model.Block{{ID: "b1"}}})

	require.NoError(t, m.WriteStatus(context.Background(), "p1", "b1", model.StatusTypeset))
	page, err := m.ReadPage(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusTypeset, page.Blocks[0].Status)
}

func TestMemStoreGlossaryRoundTrips(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	m := NewMemStore()
	g := model.Glossary{{Source: "a", Target: "b", CaseSensitive: true}}
	m.PutGlossary(g)
	got, err := m.ReadGlossary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, g, got)
}
