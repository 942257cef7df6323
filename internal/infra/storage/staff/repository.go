package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var staffColumns = []string{
	"s.id",
	"s.user_id",
	"u.name",
	"s.position",
	"s.is_available",
	"s.service_ids",
}

// Repository репозиторий мастеров салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(staffColumns...).
		From("staff s").
		Join("users u ON u.id = s.user_id")
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"s.id": id}, false)
}

// GetByUserID получает мастера по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"s.user_id": userID}, false)
}

// LockForBooking блокирует строку мастера до конца транзакции.
// Все создания бронирований для одного мастера выстраиваются в очередь на этой блокировке.
func (r *Repository) LockForBooking(ctx context.Context, id int64) (*domain.Staff, error) {
	return r.getOne(ctx, "LockForBooking", squirrel.Eq{"s.id": id}, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer, forUpdate bool) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().Where(where)
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	staff, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan staff: %v", ErrScanRow, op, err)
	}

	return staff, nil
}

// List получает мастеров по фильтру
func (r *Repository) List(ctx context.Context, filter domain.StaffFilter) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Staff, 0)
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func listQuery(filter domain.StaffFilter) (string, []interface{}, error) {
	selectBuilder := baseSelect().OrderBy("s.id ASC")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.id": *filter.StaffID})
	}
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.is_available": true})
	}
	if len(filter.ServiceIDs) > 0 {
		// @> содержит все услуги, && хотя бы одну
		op := "&&"
		if filter.MatchAll {
			op = "@>"
		}
		selectBuilder = selectBuilder.Where("s.service_ids "+op+" ?", pq.Array(filter.ServiceIDs))
	}

	return selectBuilder.ToSql()
}

// SetAvailability включает или выключает прием записей мастером
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var staff domain.Staff
	var serviceIDs pq.Int64Array

	err := row.Scan(
		&staff.ID,
		&staff.UserID,
		&staff.Name,
		&staff.Position,
		&staff.IsAvailable,
		&serviceIDs,
	)
	if err != nil {
		return nil, err
	}

	staff.ServiceIDs = []int64(serviceIDs)
	if staff.ServiceIDs == nil {
		staff.ServiceIDs = []int64{}
	}

	return &staff, nil
}
