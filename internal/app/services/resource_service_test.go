package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ozan/studyshelf/internal/app/auth"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/ozan/studyshelf/internal/pkg/filestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileHeader builds a multipart.FileHeader the way gin receives one.
func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

type resourceFixture struct {
	service ResourceService
	repo    *fakeResourceRepo
	storage *filestorage.LocalStorage
	dir     string
}

func newResourceFixture(t *testing.T) *resourceFixture {
	t.Helper()

	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, "uploads")
	require.NoError(t, err)

	resources := newFakeResourceRepo()
	authz := auth.NewAuthorizationService(resources)

	return &resourceFixture{
		service: NewResourceService(resources, authz, storage, 1<<20),
		repo:    resources,
		storage: storage,
		dir:     dir,
	}
}

func TestCreateResourcePendingByDefault(t *testing.T) {
	f := newResourceFixture(t)

	resp, err := f.service.CreateResource(context.Background(), 1, models.RoleStudent, &dto.CreateResourceRequest{
		Title:   "Linear Algebra Notes",
		Subject: "math",
		Tags:    "algebra,matrices",
	}, newFileHeader(t, "notes.pdf", "content"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Equal(t, []string{"algebra", "matrices"}, resp.Tags)
	assert.Equal(t, int64(1), resp.UploadedBy.ID)

	// File landed on disk
	_, err = os.Stat(filepath.Join(f.dir, filepath.Base(resp.FilePath)))
	assert.NoError(t, err)
}

func TestCreateResourceAdminAutoApproved(t *testing.T) {
	f := newResourceFixture(t)

	resp, err := f.service.CreateResource(context.Background(), 7, models.RoleAdmin, &dto.CreateResourceRequest{
		Title:   "Official Syllabus",
		Subject: "physics",
	}, newFileHeader(t, "syllabus.pdf", "content"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, resp.Status)
}

func TestCreateResourceRequiresFile(t *testing.T) {
	f := newResourceFixture(t)

	_, err := f.service.CreateResource(context.Background(), 1, models.RoleStudent, &dto.CreateResourceRequest{
		Title:   "No File",
		Subject: "math",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrFileRequired)
}

func TestCreateResourceFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, "uploads")
	require.NoError(t, err)

	resources := newFakeResourceRepo()
	authz := auth.NewAuthorizationService(resources)
	service := NewResourceService(resources, authz, storage, 4) // 4 byte limit

	_, err = service.CreateResource(context.Background(), 1, models.RoleStudent, &dto.CreateResourceRequest{
		Title:   "Big Upload",
		Subject: "math",
	}, newFileHeader(t, "big.pdf", "more than four bytes"))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestListResourcesOnlyApproved(t *testing.T) {
	f := newResourceFixture(t)
	f.repo.add(&repositories.ResourceDetails{Title: "Approved", Subject: "math", Status: models.StatusApproved})
	f.repo.add(&repositories.ResourceDetails{Title: "Pending", Subject: "math", Status: models.StatusPending})
	f.repo.add(&repositories.ResourceDetails{Title: "Rejected", Subject: "math", Status: models.StatusRejected})

	resources, err := f.service.ListResources(context.Background(), &dto.ResourceFilterRequest{}, models.RoleStudent)
	require.NoError(t, err)

	require.Len(t, resources, 1)
	assert.Equal(t, "Approved", resources[0].Title)
}

func TestListResourcesAdminStatusFilter(t *testing.T) {
	f := newResourceFixture(t)
	f.repo.add(&repositories.ResourceDetails{Title: "Approved", Subject: "math", Status: models.StatusApproved})
	f.repo.add(&repositories.ResourceDetails{Title: "Pending", Subject: "math", Status: models.StatusPending})

	resources, err := f.service.ListResources(context.Background(), &dto.ResourceFilterRequest{Status: "pending"}, models.RoleAdmin)
	require.NoError(t, err)

	require.Len(t, resources, 1)
	assert.Equal(t, "Pending", resources[0].Title)

	// Non-admin callers cannot see past the approved default
	resources, err = f.service.ListResources(context.Background(), &dto.ResourceFilterRequest{Status: "pending"}, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "Approved", resources[0].Title)
}

func TestDeleteResourceOwnership(t *testing.T) {
	f := newResourceFixture(t)
	f.repo.add(&repositories.ResourceDetails{ID: 1, Title: "Mine", Subject: "math", UploadedBy: 10, Status: models.StatusApproved})

	// A different non-admin user cannot delete
	err := f.service.DeleteResource(context.Background(), 1, 99, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The uploader can
	err = f.service.DeleteResource(context.Background(), 1, 10, models.RoleStudent)
	require.NoError(t, err)

	_, err = f.service.GetResourceByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteResourceAdminOverride(t *testing.T) {
	f := newResourceFixture(t)
	f.repo.add(&repositories.ResourceDetails{ID: 1, Title: "Theirs", Subject: "math", UploadedBy: 10, Status: models.StatusApproved})

	err := f.service.DeleteResource(context.Background(), 1, 55, models.RoleAdmin)
	assert.NoError(t, err)
}

func TestDeleteResourceRemovesFile(t *testing.T) {
	f := newResourceFixture(t)

	resp, err := f.service.CreateResource(context.Background(), 1, models.RoleStudent, &dto.CreateResourceRequest{
		Title:   "Ephemeral",
		Subject: "math",
	}, newFileHeader(t, "doc.pdf", "content"))
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteResource(context.Background(), resp.ID, 1, models.RoleStudent))

	_, err = os.Stat(filepath.Join(f.dir, filepath.Base(resp.FilePath)))
	assert.True(t, os.IsNotExist(err))
}

func TestRegisterDownload(t *testing.T) {
	f := newResourceFixture(t)
	f.repo.add(&repositories.ResourceDetails{ID: 1, Title: "Doc", Subject: "math", Status: models.StatusApproved})

	resp, err := f.service.RegisterDownload(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.DownloadsCount)

	resp, err = f.service.RegisterDownload(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.DownloadsCount)

	_, err = f.service.RegisterDownload(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
