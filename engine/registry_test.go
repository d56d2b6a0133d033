package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabl/finextract/model"
)

type stubEngine struct {
	name string
	tag  string
}

func (s stubEngine) Name() string { return s.name }

func (s stubEngine) Extract(context.Context, string, string) ([]model.RawTable, error) {
	return []model.RawTable{{Columns: []string{s.tag}}}, nil
}

func TestDefaultRegistryOrder(t *testing.T) {
	r := DefaultRegistry(DefaultOptions())
	assert.Equal(t, []string{NameStream, NamePlainText, NameLattice}, r.Names())

	e, ok := r.Get(NameLattice)
	require.True(t, ok)
	assert.Equal(t, NameLattice, e.Name())

	_, ok = r.Get("Camelot")
	assert.False(t, ok)
}

func TestRegistrySelect(t *testing.T) {
	r := DefaultRegistry(DefaultOptions())

	selected, err := r.Select(NameLattice, NameStream)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, NameStream, selected[0].Name())
	assert.Equal(t, NameLattice, selected[1].Name())

	all, err := r.Select()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = r.Select("Stream", "Camelot")
	assert.ErrorContains(t, err, `"Camelot"`)
}

func TestRegistryReplacesDuplicates(t *testing.T) {
	r := NewRegistry(stubEngine{"a", "first"}, stubEngine{"b", ""}, stubEngine{"a", "second"})
	assert.Equal(t, []string{"a", "b"}, r.Names())

	e, ok := r.Get("a")
	require.True(t, ok)
	got, err := e.Extract(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, got[0].Columns)
}
