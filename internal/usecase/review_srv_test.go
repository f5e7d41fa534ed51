package usecase

import (
	"context"
	"testing"

	"github.com/LordKisik/yamdb-final/internal/data/entity"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewEnv struct {
	svc    ReviewService
	repo   *repository.Repository
	title  *entity.Title
	author *entity.User
}

func newReviewEnv(t *testing.T) *reviewEnv {
	t.Helper()
	repo := newTestRepo()
	category := seedCategory(t, repo, "Movies", "movies")
	title := seedTitle(t, repo, "Reviewed", 2015, category)
	author := seedUser(t, repo.User.(*fakeUserRepo), "author", entity.RoleUser)

	return &reviewEnv{
		svc:    NewReviewService(repo, zap.NewNop()),
		repo:   repo,
		title:  title,
		author: author,
	}
}

func TestCreateReview(t *testing.T) {
	env := newReviewEnv(t)

	resp, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), env.author.ID, &request.CreateReviewRequest{
		Text:  "great",
		Score: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, "great", resp.Text)
	assert.Equal(t, 7, resp.Score)
	assert.Equal(t, "author", resp.Author)
	assert.Equal(t, env.title.ID.String(), resp.TitleID)
}

func TestCreateReviewOncePerTitle(t *testing.T) {
	env := newReviewEnv(t)

	_, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), env.author.ID, &request.CreateReviewRequest{
		Text:  "first",
		Score: 7,
	})
	require.NoError(t, err)

	_, err = env.svc.CreateReview(context.Background(), env.title.ID.String(), env.author.ID, &request.CreateReviewRequest{
		Text:  "second",
		Score: 3,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")

	// The same author may still review a different title.
	other := seedTitle(t, env.repo, "Other", 2016, seedCategory(t, env.repo, "Books", "books"))
	_, err = env.svc.CreateReview(context.Background(), other.ID.String(), env.author.ID, &request.CreateReviewRequest{
		Text:  "fine",
		Score: 5,
	})
	require.NoError(t, err)
}

func TestCreateReviewScoreBounds(t *testing.T) {
	env := newReviewEnv(t)
	users := env.repo.User.(*fakeUserRepo)

	for _, score := range []int{0, 11, -1} {
		_, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), env.author.ID, &request.CreateReviewRequest{
			Text:  "out of range",
			Score: score,
		})
		require.Error(t, err, "score %d must be rejected", score)
		assert.Contains(t, err.Error(), "validation failed")
	}

	low := seedUser(t, users, "lowball", entity.RoleUser)
	_, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), low.ID, &request.CreateReviewRequest{
		Text:  "worst",
		Score: 1,
	})
	require.NoError(t, err)

	high := seedUser(t, users, "highball", entity.RoleUser)
	_, err = env.svc.CreateReview(context.Background(), env.title.ID.String(), high.ID, &request.CreateReviewRequest{
		Text:  "best",
		Score: 10,
	})
	require.NoError(t, err)
}

func TestUpdateReviewPermissions(t *testing.T) {
	env := newReviewEnv(t)
	users := env.repo.User.(*fakeUserRepo)

	created, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), env.author.ID, &request.CreateReviewRequest{
		Text:  "original",
		Score: 4,
	})
	require.NoError(t, err)

	stranger := seedUser(t, users, "stranger", entity.RoleUser)
	_, err = env.svc.UpdateReview(context.Background(), env.title.ID.String(), created.ID, stranger.ID, string(stranger.Role), &request.UpdateReviewRequest{
		Text: strPtr("hijacked"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	moderator := seedUser(t, users, "mod", entity.RoleModerator)
	updated, err := env.svc.UpdateReview(context.Background(), env.title.ID.String(), created.ID, moderator.ID, string(moderator.Role), &request.UpdateReviewRequest{
		Text: strPtr("moderated"),
	})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Text)

	// The author can update their own review without tripping the
	// create-only uniqueness rule.
	updated, err = env.svc.UpdateReview(context.Background(), env.title.ID.String(), created.ID, env.author.ID, string(env.author.Role), &request.UpdateReviewRequest{
		Score: intPtr(9),
	})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Score)
}

func TestDeleteReviewPermissions(t *testing.T) {
	env := newReviewEnv(t)
	users := env.repo.User.(*fakeUserRepo)

	created, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), env.author.ID, &request.CreateReviewRequest{
		Text:  "doomed",
		Score: 2,
	})
	require.NoError(t, err)

	stranger := seedUser(t, users, "stranger", entity.RoleUser)
	err = env.svc.DeleteReview(context.Background(), env.title.ID.String(), created.ID, stranger.ID, string(stranger.Role))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	err = env.svc.DeleteReview(context.Background(), env.title.ID.String(), created.ID, env.author.ID, string(env.author.Role))
	require.NoError(t, err)

	_, err = env.svc.GetReview(context.Background(), env.title.ID.String(), created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReviewMustBelongToTitle(t *testing.T) {
	env := newReviewEnv(t)

	created, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), env.author.ID, &request.CreateReviewRequest{
		Text:  "anchored",
		Score: 6,
	})
	require.NoError(t, err)

	other := seedTitle(t, env.repo, "Elsewhere", 2010, seedCategory(t, env.repo, "Books", "books"))

	_, err = env.svc.GetReview(context.Background(), other.ID.String(), created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListReviews(t *testing.T) {
	env := newReviewEnv(t)
	users := env.repo.User.(*fakeUserRepo)

	for _, name := range []string{"one", "two", "three"} {
		user := seedUser(t, users, name, entity.RoleUser)
		_, err := env.svc.CreateReview(context.Background(), env.title.ID.String(), user.ID, &request.CreateReviewRequest{
			Text:  name,
			Score: 5,
		})
		require.NoError(t, err)
	}

	page := &request.PaginatedRequest{Page: 1, PerPage: 2}
	resp, err := env.svc.ListByTitle(context.Background(), env.title.ID.String(), page)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Pagination.TotalPages)

	_, err = env.svc.ListByTitle(context.Background(), uuid.NewString(), page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
