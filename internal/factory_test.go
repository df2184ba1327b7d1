package internal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tinyweb/internal"
)

type counterHandler struct {
	n int
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("provide creates per call", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()
		calls := 0
		internal.Provide(reg, func(context.Context) (*counterHandler, error) {
			calls++
			return &counterHandler{n: calls}, nil
		})

		d := internal.TypeOf[*counterHandler]()
		require.True(t, reg.Provides(d))

		a, err := reg.Create(context.Background(), d)
		require.NoError(t, err)
		b, err := reg.Create(context.Background(), d)
		require.NoError(t, err)

		assert.Equal(t, 1, a.(*counterHandler).n)
		assert.Equal(t, 2, b.(*counterHandler).n)
	})

	t.Run("provide value shares the instance", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()
		h := &counterHandler{n: 7}
		internal.ProvideValue(reg, h)

		got, err := reg.Create(context.Background(), internal.TypeOf[*counterHandler]())
		require.NoError(t, err)
		assert.Same(t, h, got)
	})

	t.Run("pointer and value types are distinct", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()
		internal.ProvideValue(reg, counterHandler{})

		assert.False(t, reg.Provides(internal.TypeOf[*counterHandler]()))
		_, err := reg.Create(context.Background(), internal.TypeOf[*counterHandler]())
		require.ErrorIs(t, err, internal.ErrNoProvider)
	})

	t.Run("constructor errors propagate", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		reg := internal.NewRegistry()
		internal.Provide(reg, func(context.Context) (counterHandler, error) { return counterHandler{}, boom })

		_, err := reg.Create(context.Background(), internal.TypeOf[counterHandler]())
		require.ErrorIs(t, err, boom)
	})
}

func TestFactoryFunc(t *testing.T) {
	t.Parallel()

	f := internal.FactoryFunc(func(_ context.Context, d internal.Descriptor) (any, error) {
		return d.String(), nil
	})

	v, err := f.Create(context.Background(), internal.TypeOf[*counterHandler]())
	require.NoError(t, err)
	assert.Equal(t, "*internal_test.counterHandler", v)
	assert.Equal(t, "<nil>", internal.Descriptor{}.String())
}
