package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/ozan/studyshelf/internal/pkg/logger"
)

// ResourceDetails includes a resource joined with its uploader and aggregated rating.
type ResourceDetails struct {
	ID             int64                 `db:"id" json:"id"`
	Title          string                `db:"title" json:"title"`
	Description    string                `db:"description" json:"description"`
	Subject        string                `db:"subject" json:"subject"`
	Tags           []string              `db:"tags" json:"tags"`
	FilePath       string                `db:"file_path" json:"filePath"`
	UploadedBy     int64                 `db:"uploaded_by" json:"uploadedBy"`
	UploaderName   string                `db:"uploader_name" json:"uploaderName"`
	UploaderRole   models.RoleType       `db:"uploader_role" json:"uploaderRole"`
	Status         models.ResourceStatus `db:"status" json:"status"`
	DownloadsCount int64                 `db:"downloads_count" json:"downloadsCount"`
	RatingAvg      float64               `db:"rating_avg" json:"ratingAvg"`
	RatingCount    int64                 `db:"rating_count" json:"ratingCount"`
	CreatedAt      time.Time             `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time             `db:"updated_at" json:"updatedAt"`
}

// ListResourcesParams holds catalog filters. Status is applied as given; the
// service layer supplies the approved-only default.
type ListResourcesParams struct {
	Query    string
	Subject  string
	Tags     []string
	Uploader int64
	Status   models.ResourceStatus
	SortBy   string
	Order    string
	Limit    int
}

// ResourceListLimit caps the number of catalog rows returned by a single listing.
const ResourceListLimit = 100

// sortColumns whitelists caller-facing sort keys onto SQL columns.
var sortColumns = map[string]string{
	"createdAt":      "r.created_at",
	"title":          "r.title",
	"subject":        "r.subject",
	"downloadsCount": "r.downloads_count",
	"rating":         "rating_avg",
}

// ResourceRepository handles database operations for Resource.
type ResourceRepository struct {
	DB *pgxpool.Pool
}

// NewResourceRepository creates a new instance of ResourceRepository.
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

// selectResourceDetailsQuery builds the shared select joining uploader and ratings.
func (r *ResourceRepository) selectResourceDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.title", "r.description", "r.subject", "r.tags", "r.file_path",
		"r.uploaded_by", "u.name AS uploader_name", "u.role AS uploader_role",
		"r.status", "r.downloads_count",
		"COALESCE(AVG(rt.rating), 0)::float8 AS rating_avg",
		"COUNT(rt.id) AS rating_count",
		"r.created_at", "r.updated_at",
	).From("resources r").
		Join("users u ON r.uploaded_by = u.id").
		LeftJoin("ratings rt ON rt.resource_id = r.id").
		GroupBy("r.id", "u.id").
		PlaceholderFormat(squirrel.Dollar)
}

// scanResourceDetails scans a row into a ResourceDetails struct.
func scanResourceDetails(row pgx.Row) (*ResourceDetails, error) {
	var d ResourceDetails
	err := row.Scan(
		&d.ID, &d.Title, &d.Description, &d.Subject, &d.Tags, &d.FilePath,
		&d.UploadedBy, &d.UploaderName, &d.UploaderRole,
		&d.Status, &d.DownloadsCount,
		&d.RatingAvg, &d.RatingCount,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning resource details")
		return nil, err
	}
	return &d, nil
}

// Create inserts a new resource and fills in the generated columns.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	sql, args, err := squirrel.Insert("resources").
		Columns("title", "description", "subject", "tags", "file_path", "uploaded_by", "status").
		Values(resource.Title, resource.Description, resource.Subject, resource.Tags,
			resource.FilePath, resource.UploadedBy, resource.Status).
		Suffix("RETURNING id, downloads_count, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create resource SQL")
		return nil, err
	}

	err = r.DB.QueryRow(ctx, sql, args...).
		Scan(&resource.ID, &resource.DownloadsCount, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create resource query")
		return nil, err
	}

	return resource, nil
}

// GetByID retrieves a single resource with uploader and rating details.
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*ResourceDetails, error) {
	sqlStr, args, err := r.selectResourceDetailsQuery().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanResourceDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// List retrieves a filtered catalog listing, capped at ResourceListLimit rows.
func (r *ResourceRepository) List(ctx context.Context, params ListResourcesParams) ([]*ResourceDetails, error) {
	builder := r.selectResourceDetailsQuery()

	if params.Subject != "" {
		builder = builder.Where(squirrel.Eq{"r.subject": params.Subject})
	}
	if params.Uploader > 0 {
		builder = builder.Where(squirrel.Eq{"r.uploaded_by": params.Uploader})
	}
	if params.Status != "" {
		builder = builder.Where(squirrel.Eq{"r.status": params.Status})
	}
	if len(params.Tags) > 0 {
		// Any-tag match against the text[] column
		builder = builder.Where("r.tags && ?", params.Tags)
	}
	if params.Query != "" {
		builder = builder.Where("r.title ILIKE ?", "%"+params.Query+"%")
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "r.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		direction = "ASC"
	}
	builder = builder.OrderBy(column + " " + direction)

	limit := params.Limit
	if limit <= 0 || limit > ResourceListLimit {
		limit = ResourceListLimit
	}
	builder = builder.Limit(uint64(limit))

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list resources SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list resources query")
		return nil, err
	}
	defer rows.Close()

	var items []*ResourceDetails
	for rows.Next() {
		d, err := scanResourceDetails(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Delete removes a resource; comments, ratings and bookmarks cascade.
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing delete resource query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// IncrementDownloads atomically bumps the download counter and returns the new value.
func (r *ResourceRepository) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx,
		`UPDATE resources SET downloads_count = downloads_count + 1, updated_at = NOW()
		 WHERE id = $1 RETURNING downloads_count`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error incrementing download counter")
		return 0, err
	}
	return count, nil
}

// SetStatus updates the moderation status and returns the updated resource.
func (r *ResourceRepository) SetStatus(ctx context.Context, id int64, status models.ResourceStatus) (*ResourceDetails, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE resources SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error updating resource status")
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrResourceNotFound
	}

	return r.GetByID(ctx, id)
}

// TopDownloadRow is one row of the top-downloads aggregation.
type TopDownloadRow struct {
	ID             int64
	Title          string
	DownloadsCount int64
}

// TopDownloads returns the most downloaded approved resources.
func (r *ResourceRepository) TopDownloads(ctx context.Context, limit int) ([]TopDownloadRow, error) {
	sqlStr, args, err := squirrel.Select("id", "title", "downloads_count").
		From("resources").
		Where(squirrel.Eq{"status": models.StatusApproved}).
		OrderBy("downloads_count DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing top downloads query")
		return nil, err
	}
	defer rows.Close()

	var result []TopDownloadRow
	for rows.Next() {
		var row TopDownloadRow
		if err := rows.Scan(&row.ID, &row.Title, &row.DownloadsCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// SubjectCountRow is one row of the per-subject aggregation.
type SubjectCountRow struct {
	Subject string
	Count   int64
}

// CountBySubject counts approved resources per subject, most populous first.
func (r *ResourceRepository) CountBySubject(ctx context.Context) ([]SubjectCountRow, error) {
	sqlStr, args, err := squirrel.Select("subject", "COUNT(*) AS count").
		From("resources").
		Where(squirrel.Eq{"status": models.StatusApproved}).
		GroupBy("subject").
		OrderBy("count DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing subject count query")
		return nil, err
	}
	defer rows.Close()

	var result []SubjectCountRow
	for rows.Next() {
		var row SubjectCountRow
		if err := rows.Scan(&row.Subject, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
