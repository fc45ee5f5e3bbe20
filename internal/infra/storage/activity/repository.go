package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/psqlbuilder"
)

// activityColumns активность вместе с категорией (LEFT JOIN), порядок совпадает с scanActivity
var activityColumns = []string{
	"a.id",
	"a.name",
	"a.category_id",
	"a.location",
	"a.address",
	"a.city",
	"a.postal_code",
	"a.latitude",
	"a.longitude",
	"a.duration_minutes",
	"a.min_participants",
	"a.max_participants",
	"a.price_per_person",
	"a.deposit_percent",
	"a.active",
	"a.created_at",
	"a.updated_at",
	"c.name",
	"c.max_participants_per_guide",
}

// Repository репозиторий активностей и их категорий (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория активностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectActivities() squirrel.SelectBuilder {
	return psqlbuilder.Select(activityColumns...).
		From("activities a").
		LeftJoin("activity_categories c ON c.id = a.category_id")
}

// GetByID получает активность с категорией
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectActivities().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	activity, err := scanActivity(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan activity: %w", ErrScanRow, err)
	}

	return activity, nil
}

// GetByIDs получает активности по списку ID
// Отсутствующие ID просто не попадают в результат
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Activity, error) {
	result := make(map[int64]*domain.Activity, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectActivities().
		Where(squirrel.Eq{"a.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan activity: %w", ErrScanRow, err)
		}
		result[activity.ID] = activity
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var (
		activity             domain.Activity
		createdAt, updatedAt sql.NullTime
		categoryName         sql.NullString
		categoryCeiling      sql.NullInt64
	)

	err := row.Scan(
		&activity.ID,
		&activity.Name,
		&activity.CategoryID,
		&activity.Location,
		&activity.LocationDetails.Address,
		&activity.LocationDetails.City,
		&activity.LocationDetails.PostalCode,
		&activity.LocationDetails.Latitude,
		&activity.LocationDetails.Longitude,
		&activity.DurationMinutes,
		&activity.MinParticipants,
		&activity.MaxParticipants,
		&activity.PricePerPerson,
		&activity.DepositPercent,
		&activity.Active,
		&createdAt,
		&updatedAt,
		&categoryName,
		&categoryCeiling,
	)
	if err != nil {
		return nil, err
	}

	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	if activity.CategoryID != nil && categoryName.Valid {
		activity.Category = &domain.ActivityCategory{
			ID:                      *activity.CategoryID,
			Name:                    categoryName.String,
			MaxParticipantsPerGuide: int(categoryCeiling.Int64),
		}
	}

	return &activity, nil
}
