package usecase

import (
	"context"
	"testing"

	"github.com/LordKisik/yamdb-final/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCategoryAndDuplicateSlug(t *testing.T) {
	repo := newTestRepo()
	svc := NewCategoryService(repo.Category, zap.NewNop())

	resp, err := svc.CreateCategory(context.Background(), &request.CategoryRequest{
		Name: "Movies",
		Slug: "movies",
	})
	require.NoError(t, err)
	assert.Equal(t, "movies", resp.Slug)

	_, err = svc.CreateCategory(context.Background(), &request.CategoryRequest{
		Name: "Movies Again",
		Slug: "movies",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestDeleteCategory(t *testing.T) {
	repo := newTestRepo()
	svc := NewCategoryService(repo.Category, zap.NewNop())
	seedCategory(t, repo, "Movies", "movies")

	require.NoError(t, svc.DeleteCategory(context.Background(), "movies"))

	err := svc.DeleteCategory(context.Background(), "movies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListCategories(t *testing.T) {
	repo := newTestRepo()
	svc := NewCategoryService(repo.Category, zap.NewNop())
	seedCategory(t, repo, "Movies", "movies")
	seedCategory(t, repo, "Books", "books")

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}
	resp, err := svc.ListCategories(context.Background(), "", page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	resp, err = svc.ListCategories(context.Background(), "Book", page)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "books", resp.Data[0].Slug)
}
