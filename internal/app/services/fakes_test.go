package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/repositories"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.nextID++
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) SetBlocked(_ context.Context, id int64, blocked bool) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u.IsBlocked = blocked
	return u, nil
}

type fakeResourceRepo struct {
	resources map[int64]*repositories.ResourceDetails
	nextID    int64
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: map[int64]*repositories.ResourceDetails{}, nextID: 1}
}

func (f *fakeResourceRepo) add(d *repositories.ResourceDetails) *repositories.ResourceDetails {
	if d.ID == 0 {
		d.ID = f.nextID
		f.nextID++
	} else if d.ID >= f.nextID {
		f.nextID = d.ID + 1
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	f.resources[d.ID] = d
	return d
}

func (f *fakeResourceRepo) Create(_ context.Context, resource *models.Resource) (*models.Resource, error) {
	d := f.add(&repositories.ResourceDetails{
		Title:       resource.Title,
		Description: resource.Description,
		Subject:     resource.Subject,
		Tags:        resource.Tags,
		FilePath:    resource.FilePath,
		UploadedBy:  resource.UploadedBy,
		Status:      resource.Status,
	})
	resource.ID = d.ID
	resource.CreatedAt = d.CreatedAt
	resource.UpdatedAt = d.CreatedAt
	return resource, nil
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id int64) (*repositories.ResourceDetails, error) {
	d, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return d, nil
}

func (f *fakeResourceRepo) List(_ context.Context, params repositories.ListResourcesParams) ([]*repositories.ResourceDetails, error) {
	var result []*repositories.ResourceDetails
	for _, d := range f.resources {
		if params.Status != "" && d.Status != params.Status {
			continue
		}
		if params.Subject != "" && d.Subject != params.Subject {
			continue
		}
		if params.Query != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(params.Query)) {
			continue
		}
		if params.Uploader > 0 && d.UploadedBy != params.Uploader {
			continue
		}
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeResourceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.resources[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeResourceRepo) IncrementDownloads(_ context.Context, id int64) (int64, error) {
	d, ok := f.resources[id]
	if !ok {
		return 0, apperrors.ErrResourceNotFound
	}
	d.DownloadsCount++
	return d.DownloadsCount, nil
}

func (f *fakeResourceRepo) SetStatus(_ context.Context, id int64, status models.ResourceStatus) (*repositories.ResourceDetails, error) {
	d, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	d.Status = status
	return d, nil
}

func (f *fakeResourceRepo) TopDownloads(_ context.Context, limit int) ([]repositories.TopDownloadRow, error) {
	var rows []repositories.TopDownloadRow
	for _, d := range f.resources {
		if d.Status != models.StatusApproved {
			continue
		}
		rows = append(rows, repositories.TopDownloadRow{ID: d.ID, Title: d.Title, DownloadsCount: d.DownloadsCount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DownloadsCount > rows[j].DownloadsCount })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeResourceRepo) CountBySubject(_ context.Context) ([]repositories.SubjectCountRow, error) {
	counts := map[string]int64{}
	for _, d := range f.resources {
		if d.Status != models.StatusApproved {
			continue
		}
		counts[d.Subject]++
	}
	var rows []repositories.SubjectCountRow
	for subject, count := range counts {
		rows = append(rows, repositories.SubjectCountRow{Subject: subject, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows, nil
}

type fakeCommentRepo struct {
	comments []*repositories.CommentDetails
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.nextID++
	f.comments = append(f.comments, &repositories.CommentDetails{
		ID:         comment.ID,
		ResourceID: comment.ResourceID,
		UserID:     comment.UserID,
		Comment:    comment.Comment,
		CreatedAt:  comment.CreatedAt,
	})
	return comment, nil
}

func (f *fakeCommentRepo) ListByResource(_ context.Context, resourceID int64) ([]*repositories.CommentDetails, error) {
	var result []*repositories.CommentDetails
	for _, c := range f.comments {
		if c.ResourceID == resourceID {
			result = append(result, c)
		}
	}
	// Newest first
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

type ratingKey struct {
	resourceID int64
	userID     int64
}

type fakeRatingRepo struct {
	ratings map[ratingKey]*models.Rating
	nextID  int64
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[ratingKey]*models.Rating{}, nextID: 1}
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *models.Rating) (*models.Rating, error) {
	key := ratingKey{resourceID: rating.ResourceID, userID: rating.UserID}
	if existing, ok := f.ratings[key]; ok {
		existing.Rating = rating.Rating
		existing.UpdatedAt = time.Now()
		*rating = *existing
		return rating, nil
	}
	rating.ID = f.nextID
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = rating.CreatedAt
	f.nextID++
	stored := *rating
	f.ratings[key] = &stored
	return rating, nil
}

type bookmarkKey struct {
	userID     int64
	resourceID int64
}

type fakeBookmarkRepo struct {
	bookmarks map[bookmarkKey]*models.Bookmark
	resources *fakeResourceRepo
	nextID    int64
}

func newFakeBookmarkRepo(resources *fakeResourceRepo) *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: map[bookmarkKey]*models.Bookmark{}, resources: resources, nextID: 1}
}

func (f *fakeBookmarkRepo) Upsert(_ context.Context, userID, resourceID int64) (*models.Bookmark, error) {
	key := bookmarkKey{userID: userID, resourceID: resourceID}
	if existing, ok := f.bookmarks[key]; ok {
		return existing, nil
	}
	b := &models.Bookmark{ID: f.nextID, UserID: userID, ResourceID: resourceID, CreatedAt: time.Now()}
	f.nextID++
	f.bookmarks[key] = b
	return b, nil
}

func (f *fakeBookmarkRepo) Delete(_ context.Context, userID, resourceID int64) error {
	key := bookmarkKey{userID: userID, resourceID: resourceID}
	if _, ok := f.bookmarks[key]; !ok {
		return apperrors.ErrBookmarkNotFound
	}
	delete(f.bookmarks, key)
	return nil
}

func (f *fakeBookmarkRepo) ListByUser(_ context.Context, userID int64) ([]*repositories.BookmarkDetails, error) {
	var result []*repositories.BookmarkDetails
	for _, b := range f.bookmarks {
		if b.UserID != userID {
			continue
		}
		detail := &repositories.BookmarkDetails{
			ID:         b.ID,
			ResourceID: b.ResourceID,
			CreatedAt:  b.CreatedAt,
		}
		if r, ok := f.resources.resources[b.ResourceID]; ok {
			detail.Title = r.Title
			detail.Subject = r.Subject
			detail.Status = r.Status
			detail.DownloadsCount = r.DownloadsCount
		}
		result = append(result, detail)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}
