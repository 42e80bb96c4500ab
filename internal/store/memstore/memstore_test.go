package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/store"
)

func seedBlog(t *testing.T, s *Store, title string) string {
	t.Helper()
	key, err := s.Insert(context.Background(), store.Blogs, domain.Blog{
		Title:     title,
		Content:   "hello world",
		Author:    "ana",
		AuthorID:  "u1",
		Status:    domain.BlogPublished,
		LikedBy:   []string{},
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return key
}

func TestInsertAndFindByKey(t *testing.T) {
	s := New()
	key := seedBlog(t, s, "first")

	var got domain.Blog
	require.NoError(t, s.FindByKey(context.Background(), store.Blogs, key, &got))
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, key, got.ID.Hex())
}

func TestFindByKeyErrors(t *testing.T) {
	s := New()

	err := s.FindByKey(context.Background(), store.Blogs, "not-a-key", &domain.Blog{})
	assert.ErrorIs(t, err, store.ErrInvalidKey)

	err = s.FindByKey(context.Background(), store.Blogs, "ffffffffffffffffffffffff", &domain.Blog{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGuardedLikeIsIdempotent(t *testing.T) {
	s := New()
	key := seedBlog(t, s, "likeable")
	ctx := context.Background()

	like := store.Update{
		Inc:      map[string]int64{"likes": 1},
		AddToSet: map[string]any{"likedBy": "u2"},
		When:     []store.Cond{{Field: "likedBy", Op: store.CondNotContains, Value: "u2"}},
	}

	matched, err := s.Update(ctx, store.Blogs, key, like)
	require.NoError(t, err)
	assert.True(t, matched)

	// Second identical like fails the guard and must not increment.
	matched, err = s.Update(ctx, store.Blogs, key, like)
	require.NoError(t, err)
	assert.False(t, matched)

	var got domain.Blog
	require.NoError(t, s.FindByKey(ctx, store.Blogs, key, &got))
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, []string{"u2"}, got.LikedBy)

	unlike := store.Update{
		Inc:  map[string]int64{"likes": -1},
		Pull: map[string]any{"likedBy": "u2"},
		When: []store.Cond{{Field: "likedBy", Op: store.CondContains, Value: "u2"}},
	}
	matched, err = s.Update(ctx, store.Blogs, key, unlike)
	require.NoError(t, err)
	assert.True(t, matched)

	require.NoError(t, s.FindByKey(ctx, store.Blogs, key, &got))
	assert.Equal(t, int64(0), got.Likes)
	assert.Empty(t, got.LikedBy)
}

func TestUpdateConditionalStatus(t *testing.T) {
	s := New()
	ctx := context.Background()

	key, err := s.Insert(ctx, store.Orders, domain.Order{
		Email:  "a@b.c",
		Status: domain.OrderProcessing,
	})
	require.NoError(t, err)

	u := store.Update{
		Set:  map[string]any{"status": domain.OrderShipped},
		When: []store.Cond{{Field: "status", Op: store.CondEq, Value: domain.OrderProcessing}},
	}
	matched, err := s.Update(ctx, store.Orders, key, u)
	require.NoError(t, err)
	assert.True(t, matched)

	// Status moved on, the same guarded update no longer applies.
	matched, err = s.Update(ctx, store.Orders, key, u)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestPushAppends(t *testing.T) {
	s := New()
	ctx := context.Background()
	key := seedBlog(t, s, "commented")

	for _, id := range []string{"c1", "c2"} {
		_, err := s.Update(ctx, store.Blogs, key, store.Update{
			Push: map[string]any{"comments": domain.Comment{ID: id, Author: "bo", Content: "hi"}},
		})
		require.NoError(t, err)
	}

	var got domain.Blog
	require.NoError(t, s.FindByKey(ctx, store.Blogs, key, &got))
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "c1", got.Comments[0].ID)
	assert.Equal(t, "c2", got.Comments[1].ID)
}

func TestFindPaginationAndSearch(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, title := range []string{"go basics", "go advanced", "rust intro"} {
		seedBlog(t, s, title)
	}

	var page []domain.Blog
	total, err := s.Find(ctx, store.Blogs, store.Query{
		Search:    &store.Search{Term: "GO", Fields: []string{"title"}},
		SortField: "title",
		Limit:     1,
	}, &page)
	require.NoError(t, err)

	// Total counts every match even though the page holds one.
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, "go advanced", page[0].Title)

	total, err = s.Find(ctx, store.Blogs, store.Query{Skip: 10}, &page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, page)
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	key := seedBlog(t, s, "gone")

	require.NoError(t, s.Delete(ctx, store.Blogs, key))
	assert.ErrorIs(t, s.Delete(ctx, store.Blogs, key), store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, store.Blogs, "zzz"), store.ErrInvalidKey)
}
