package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/qawafi/arud/internal/prosody/errors"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

func TestNew(t *testing.T) {
	ctx, err := New(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 12, ctx.Tafilas.Len())
	assert.Equal(t, 23, ctx.Meters.Len())
	assert.Equal(t, 767, ctx.Cache.Total())
	assert.Positive(t, ctx.Library.Len())

	for _, id := range ctx.Cache.MeterIDs() {
		assert.Positive(t, ctx.Cache.Count(id), "meter %d", id)
	}

	m, ok := ctx.Detector.DetectBest("//o/o//o/o/o//o/o//o/o/o", 0)
	require.True(t, ok)
	assert.Equal(t, "الطويل", m.Name)
}

func TestNewRejectsBrokenGrammar(t *testing.T) {
	t.Run("tafila", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Tafilas = append(tafila.Definitions(), tafila.Definition{Name: "", Pattern: "/o", Syllables: 1})
		_, err := New(opts)
		require.Error(t, err)

		var list perrors.ErrorList
		require.True(t, errors.As(err, &list))
		assert.True(t, list.Has(perrors.ErrEmptyTafilaName))
	})

	t.Run("meter", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Meters = []meter.Definition{
			{ID: 1, Name: "broken", Translit: "broken", Rank: 1, Positions: []meter.PositionDef{
				{Tafila: "فعولن", Zihafat: []string{"nothing"}},
				{Tafila: "missing"},
			}},
		}
		_, err := New(opts)
		require.Error(t, err)

		var list perrors.ErrorList
		require.True(t, errors.As(err, &list))
		assert.True(t, list.Has(perrors.ErrUndefinedRule))
		assert.True(t, list.Has(perrors.ErrUnknownTafila))
	})
}

func TestDefault(t *testing.T) {
	a := Default()
	b := Default()
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, 16, a.Meters.BaseCount())
}
