package binder_test

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tinyweb/pkg/binder"
)

type node struct {
	Name string
	Next *node
}

type requestCtx interface {
	binder.RequestContext
	Method() string
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	t.Run("kinds", func(t *testing.T) {
		t.Parallel()
		type inner struct{ A int }
		type args struct {
			Name    string
			Tags    []string
			Inner   inner
			Maybe   *int
			Ignored string `param:"-"`
			private int
		}

		params, err := binder.DescribeStruct(reflect.TypeFor[args]())
		require.NoError(t, err)
		require.Len(t, params, 4)

		kinds := make(map[string]binder.Kind, len(params))
		for _, p := range params {
			kinds[p.Name] = p.Type.Kind
		}
		assert.Equal(t, map[string]binder.Kind{
			"Name":  binder.Scalar,
			"Tags":  binder.Array,
			"Inner": binder.Object,
			"Maybe": binder.Scalar,
		}, kinds)
		assert.True(t, params[3].Type.Optional())
		assert.False(t, params[0].Type.Optional())
	})

	t.Run("context input", func(t *testing.T) {
		t.Parallel()
		type args struct{ ID int }

		sig, err := binder.Describe(reflect.TypeFor[func(requestCtx, args) error](), 0)
		require.NoError(t, err)
		require.Equal(t, 2, sig.NumIn())
		require.Len(t, sig.Params, 2)
		assert.Equal(t, binder.Context, sig.Params[0].Type.Kind)
		assert.Equal(t, "ID", sig.Params[1].Name)
	})

	t.Run("skips receiver", func(t *testing.T) {
		t.Parallel()
		type recv struct{}
		type args struct{ ID int }

		sig, err := binder.Describe(reflect.TypeFor[func(recv, args)](), 1)
		require.NoError(t, err)
		require.Equal(t, 1, sig.NumIn())
	})

	t.Run("cached", func(t *testing.T) {
		t.Parallel()
		type args struct{ ID int }
		fn := reflect.TypeFor[func(args)]()

		var wg sync.WaitGroup
		sigs := make([]*binder.Signature, 8)
		for i := range sigs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sigs[i], _ = binder.Describe(fn, 0)
			}()
		}
		wg.Wait()

		for _, s := range sigs[1:] {
			assert.Same(t, sigs[0], s)
		}
	})
}

func TestDescribeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fn     reflect.Type
		target error
	}{
		{"not a function", reflect.TypeFor[int](), binder.ErrInvalidSignature},
		{"variadic", reflect.TypeFor[func(...int)](), binder.ErrInvalidSignature},
		{"scalar input", reflect.TypeFor[func(int)](), binder.ErrInvalidSignature},
		{"plain context", reflect.TypeFor[func(context.Context)](), binder.ErrInvalidSignature},
		{"recursive type", reflect.TypeFor[func(struct{ Node node })](), binder.ErrConstruction},
		{"map field", reflect.TypeFor[func(struct{ M map[string]string })](), binder.ErrConstruction},
		{"func field", reflect.TypeFor[func(struct{ F func() })](), binder.ErrConstruction},
		{"array of objects", reflect.TypeFor[func(struct{ Items []struct{ A int } })](), binder.ErrConstruction},
		{"invalid default", reflect.TypeFor[func(struct {
			N int `default:"ten"`
		})](), binder.ErrInvalidDefault},
		{"default on object", reflect.TypeFor[func(struct {
			O struct{ A int } `default:"x"`
		})](), binder.ErrInvalidDefault},
		{"default on property", reflect.TypeFor[func(struct {
			O struct {
				A int `default:"1"`
			}
		})](), binder.ErrInvalidDefault},
		{"conflicting duplicates", reflect.TypeFor[func(struct{ ID int }, struct {
			ID string `param:"id"`
		})](), binder.ErrDuplicateParameter},
		{"unknown sanitize policy", reflect.TypeFor[func(struct {
			S string `sanitize:"nope"`
		})](), binder.ErrInvalidSignature},
		{"sanitize on number", reflect.TypeFor[func(struct {
			N int `sanitize:"strict"`
		})](), binder.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := binder.Describe(tt.fn, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestContextSlotRequiresContext(t *testing.T) {
	t.Parallel()

	sig, err := binder.Describe(reflect.TypeFor[func(requestCtx)](), 0)
	require.NoError(t, err)

	_, err = binder.New(binder.HandlerOrder...).Arguments(sig, binder.NewValues(nil, nil, nil))
	require.ErrorIs(t, err, binder.ErrConstruction)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scalar", binder.Scalar.String())
	assert.Equal(t, "object", binder.Object.String())
	assert.Equal(t, "array", binder.Array.String())
	assert.Equal(t, "context", binder.Context.String())
	assert.Equal(t, "unknown", binder.Kind(0).String())
}
