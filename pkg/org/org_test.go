package org_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rolekit/pkg/org"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("root", func(t *testing.T) {
		t.Parallel()
		oc := org.RootContext()
		assert.True(t, oc.IsRoot())
		assert.Equal(t, uuid.Nil, oc.ID)
	})

	t.Run("of org", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		oc := org.Of(id)
		assert.False(t, oc.IsRoot())
		assert.Equal(t, id, oc.ID)
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		want := org.Of(uuid.New())
		ctx := org.WithContext(context.Background(), want)

		got, ok := org.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("defaults to root when unset", func(t *testing.T) {
		t.Parallel()
		got, ok := org.FromContext(context.Background())
		assert.False(t, ok)
		assert.True(t, got.IsRoot())
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := org.LoggerExtractor()

	t.Run("org id attr", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		ctx := org.WithContext(context.Background(), org.Of(id))

		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "org_id", attr.Key)
		assert.Equal(t, id.String(), attr.Value.String())
	})

	t.Run("root keyword", func(t *testing.T) {
		t.Parallel()
		ctx := org.WithContext(context.Background(), org.RootContext())

		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "root", attr.Value.String())
	})

	t.Run("nothing without context", func(t *testing.T) {
		t.Parallel()
		_, ok := extract(context.Background())
		assert.False(t, ok)
	})
}
