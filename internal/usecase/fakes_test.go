package usecase

import (
	"context"
	"strings"

	"github.com/LordKisik/yamdb-final/internal/data/entity"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/pkg/utils"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests. Insertion
// order is preserved so list assertions stay deterministic.

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsernameAndEmail(_ context.Context, username, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if search != "" && !strings.Contains(u.Username, search) {
			continue
		}
		out = append(out, u)
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(_ context.Context, search string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if search == "" || strings.Contains(u.Username, search) {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeConfirmationRepo struct {
	codes   []*entity.ConfirmationCode
	markErr error
}

func (f *fakeConfirmationRepo) Create(_ context.Context, code *entity.ConfirmationCode) error {
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeConfirmationRepo) FindLatestActive(_ context.Context, userID uuid.UUID) (*entity.ConfirmationCode, error) {
	var latest *entity.ConfirmationCode
	for _, c := range f.codes {
		if c.UserID != userID || c.IsUsed {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	return latest, nil
}

func (f *fakeConfirmationRepo) MarkAsUsed(_ context.Context, codeID uuid.UUID) error {
	if f.markErr != nil {
		return f.markErr
	}
	for _, c := range f.codes {
		if c.ID == codeID {
			c.IsUsed = true
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if search != "" && !strings.Contains(c.Name, search) {
			continue
		}
		out = append(out, c)
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeCategoryRepo) CountAll(_ context.Context, search string) (int64, error) {
	var n int64
	for _, c := range f.categories {
		if search == "" || strings.Contains(c.Name, search) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, c := range f.categories {
		if c.Slug == slug {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeGenreRepo struct {
	genres []*entity.Genre
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	f.genres = append(f.genres, genre)
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, g := range f.genres {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, g := range f.genres {
		if search != "" && !strings.Contains(g.Name, search) {
			continue
		}
		out = append(out, g)
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeGenreRepo) CountAll(_ context.Context, search string) (int64, error) {
	var n int64
	for _, g := range f.genres {
		if search == "" || strings.Contains(g.Name, search) {
			n++
		}
	}
	return n, nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, g := range f.genres {
		if g.Slug == slug {
			f.genres = append(f.genres[:i], f.genres[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeReviewRepo struct {
	reviews []*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeReviewRepo) FindByAuthorAndTitle(_ context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for i, r := range f.reviews {
		if r.ID == review.ID {
			f.reviews[i] = review
			return nil
		}
	}
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeCommentRepo struct {
	comments []*entity.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	for i, c := range f.comments {
		if c.ID == comment.ID {
			f.comments[i] = comment
			return nil
		}
	}
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.comments {
		if c.ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeTitleGenreRepo struct {
	links  []*entity.TitleGenre
	genres *fakeGenreRepo
}

func (f *fakeTitleGenreRepo) Create(_ context.Context, link *entity.TitleGenre) error {
	f.links = append(f.links, link)
	return nil
}

func (f *fakeTitleGenreRepo) FindGenresByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, l := range f.links {
		if l.TitleID != titleID {
			continue
		}
		for _, g := range f.genres.genres {
			if g.ID == l.GenreID {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (f *fakeTitleGenreRepo) DeleteByTitleID(_ context.Context, titleID uuid.UUID) error {
	kept := f.links[:0]
	for _, l := range f.links {
		if l.TitleID != titleID {
			kept = append(kept, l)
		}
	}
	f.links = kept
	return nil
}

type fakeTitleRepo struct {
	titles     []*entity.Title
	categories *fakeCategoryRepo
	links      *fakeTitleGenreRepo
	reviews    *fakeReviewRepo
}

func (f *fakeTitleRepo) Create(_ context.Context, title *entity.Title) error {
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	for _, t := range f.titles {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var out []*entity.Title
	for _, t := range f.titles {
		if f.matches(ctx, t, filter) {
			out = append(out, t)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeTitleRepo) CountAll(ctx context.Context, filter repository.TitleFilter) (int64, error) {
	var n int64
	for _, t := range f.titles {
		if f.matches(ctx, t, filter) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTitleRepo) matches(ctx context.Context, t *entity.Title, filter repository.TitleFilter) bool {
	if filter.Name != "" && !strings.Contains(t.Name, filter.Name) {
		return false
	}
	if filter.Year != nil && t.Year != *filter.Year {
		return false
	}
	if filter.CategorySlug != "" {
		if t.CategoryID == nil {
			return false
		}
		category, _ := f.categories.FindByID(ctx, *t.CategoryID)
		if category == nil || category.Slug != filter.CategorySlug {
			return false
		}
	}
	if filter.GenreSlug != "" {
		genres, _ := f.links.FindGenresByTitleID(ctx, t.ID)
		found := false
		for _, g := range genres {
			if g.Slug == filter.GenreSlug {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeTitleRepo) Update(_ context.Context, title *entity.Title) error {
	for i, t := range f.titles {
		if t.ID == title.ID {
			f.titles[i] = title
			return nil
		}
	}
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range f.titles {
		if t.ID == id {
			f.titles = append(f.titles[:i], f.titles[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeTitleRepo) GetRating(_ context.Context, titleID uuid.UUID) (*float64, error) {
	var sum, count float64
	for _, r := range f.reviews.reviews {
		if r.TitleID == titleID {
			sum += float64(r.Score)
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / count
	return &avg, nil
}

type fakeSender struct {
	sent     int
	lastCode string
	lastTo   string
}

func (f *fakeSender) SendConfirmationCode(email, _, code string) error {
	f.sent++
	f.lastTo = email
	f.lastCode = code
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func newTestRepo() *repository.Repository {
	users := &fakeUserRepo{}
	confirmations := &fakeConfirmationRepo{}
	categories := &fakeCategoryRepo{}
	genres := &fakeGenreRepo{}
	reviews := &fakeReviewRepo{}
	comments := &fakeCommentRepo{}
	links := &fakeTitleGenreRepo{genres: genres}
	titles := &fakeTitleRepo{categories: categories, links: links, reviews: reviews}

	return &repository.Repository{
		User:         users,
		Confirmation: confirmations,
		Category:     categories,
		Genre:        genres,
		Title:        titles,
		TitleGenre:   links,
		Review:       reviews,
		Comment:      comments,
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
		Confirmation: utils.ConfirmationConfig{
			ExpiryMinutes: 30,
			Length:        6,
		},
	}
}
