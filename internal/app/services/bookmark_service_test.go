package services

import (
	"context"
	"testing"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookmarkFixture() (BookmarkService, *fakeResourceRepo) {
	resources := newFakeResourceRepo()
	return NewBookmarkService(newFakeBookmarkRepo(resources), resources), resources
}

func TestAddBookmark(t *testing.T) {
	service, resources := newBookmarkFixture()
	resources.add(&repositories.ResourceDetails{ID: 1, Title: "Doc", Subject: "math", Status: models.StatusApproved})

	resp, err := service.AddBookmark(context.Background(), 5, &dto.BookmarkRequest{ResourceID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Doc", resp.Resource.Title)
}

func TestAddBookmarkIdempotent(t *testing.T) {
	service, resources := newBookmarkFixture()
	resources.add(&repositories.ResourceDetails{ID: 1, Title: "Doc", Subject: "math", Status: models.StatusApproved})

	first, err := service.AddBookmark(context.Background(), 5, &dto.BookmarkRequest{ResourceID: 1})
	require.NoError(t, err)

	second, err := service.AddBookmark(context.Background(), 5, &dto.BookmarkRequest{ResourceID: 1})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	list, err := service.ListBookmarks(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddBookmarkMissingResource(t *testing.T) {
	service, _ := newBookmarkFixture()

	_, err := service.AddBookmark(context.Background(), 5, &dto.BookmarkRequest{ResourceID: 404})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRemoveBookmark(t *testing.T) {
	service, resources := newBookmarkFixture()
	resources.add(&repositories.ResourceDetails{ID: 1, Title: "Doc", Subject: "math", Status: models.StatusApproved})

	_, err := service.AddBookmark(context.Background(), 5, &dto.BookmarkRequest{ResourceID: 1})
	require.NoError(t, err)

	require.NoError(t, service.RemoveBookmark(context.Background(), 5, 1))

	list, err := service.ListBookmarks(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Removing a bookmark that isn't there names the bookmark, not the resource
	err = service.RemoveBookmark(context.Background(), 5, 1)
	assert.ErrorIs(t, err, apperrors.ErrBookmarkNotFound)
}

func TestListBookmarksScopedToUser(t *testing.T) {
	service, resources := newBookmarkFixture()
	resources.add(&repositories.ResourceDetails{ID: 1, Title: "Doc A", Subject: "math", Status: models.StatusApproved})
	resources.add(&repositories.ResourceDetails{ID: 2, Title: "Doc B", Subject: "math", Status: models.StatusApproved})

	_, err := service.AddBookmark(context.Background(), 5, &dto.BookmarkRequest{ResourceID: 1})
	require.NoError(t, err)
	_, err = service.AddBookmark(context.Background(), 6, &dto.BookmarkRequest{ResourceID: 2})
	require.NoError(t, err)

	list, err := service.ListBookmarks(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Doc A", list[0].Resource.Title)
}
