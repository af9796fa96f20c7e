package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (name, date, start_time, end_time, shift_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.Name, shift.Date, shift.StartTime, shift.EndTime, shift.Type}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	// TIME 列统一转成 text 读取，保证拿到的是 15:04:05 格式的字符串
	query := `
		SELECT name, date, start_time::text, end_time::text, shift_type, created_at
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.Name, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.Type, &shift.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) GetAllShifts() ([]*domain.Shift, error) {
	query := `
		SELECT id, name, date, start_time::text, end_time::text, shift_type, created_at
		FROM shifts
		ORDER BY date, start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

func (r *Repository) GetShiftsInRange(start, end time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, name, date, start_time::text, end_time::text, shift_type, created_at
		FROM shifts
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

// DeleteShift 删除班次及引用它的所有排班记录，两者在同一个事务中完成。
func (r *Repository) DeleteShift(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_assignments WHERE shift_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrShiftNotFound
	}

	return tx.Commit()
}

// EnsureWeekShifts 保证从 weekStart 开始的一周内存在班次。
// 如果这一周已经有班次则原样返回；否则把上一周的班次整体向后克隆 7 天，
// 并返回新班次 ID 到源班次 ID 的映射。
func (r *Repository) EnsureWeekShifts(weekStart time.Time) ([]*domain.Shift, map[int64]int64, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)

	target, err := r.GetShiftsInRange(weekStart, weekEnd)
	if err != nil {
		return nil, nil, err
	}
	if len(target) > 0 {
		return target, map[int64]int64{}, nil
	}

	source, err := r.GetShiftsInRange(weekStart.AddDate(0, 0, -7), weekEnd.AddDate(0, 0, -7))
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	cloneMap := map[int64]int64{}
	cloned := make([]*domain.Shift, 0, len(source))
	for _, shift := range source {
		clone := &domain.Shift{
			Name:      shift.Name,
			Date:      shift.Date.AddDate(0, 0, 7),
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			Type:      shift.Type,
		}

		query := `
			INSERT INTO shifts (name, date, start_time, end_time, shift_type)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`
		args := []any{clone.Name, clone.Date, clone.StartTime, clone.EndTime, clone.Type}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&clone.ID, &clone.CreatedAt); err != nil {
			return nil, nil, err
		}

		cloneMap[clone.ID] = shift.ID
		cloned = append(cloned, clone)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return cloned, cloneMap, nil
}

func scanShifts(rows *sql.Rows) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.Name, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.Type, &shift.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
