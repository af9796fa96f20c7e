package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/scheduler"
)

// 排班表上的唯一约束，作为并发写入时的最后一道防线。
// 事务提交阶段命中这两个约束时统一上报为 ErrShiftAlreadyCovered，
// 而不是笼统的存储错误。
const (
	constraintShiftCoverage = "uq_shift_coverage"
	constraintEmployeeShift = "uq_employee_shift"
)

// loadSnapshot 在事务内读取全量的员工、班次和排班记录，
// 构建调度计算用的内存快照。三个查询共享同一个事务，
// 配合可串行化隔离级别保证读到的是一致的状态。
// 注意：事务只持有一条连接，必须把上一个结果集读完关掉才能发起下一个查询。
func (r *Repository) loadSnapshot(ctx context.Context, tx *sql.Tx) (*scheduler.Snapshot, error) {
	employees, err := loadSnapshotEmployees(ctx, tx)
	if err != nil {
		return nil, err
	}

	shifts, err := loadSnapshotShifts(ctx, tx)
	if err != nil {
		return nil, err
	}

	assignments, err := loadSnapshotAssignments(ctx, tx)
	if err != nil {
		return nil, err
	}

	return scheduler.NewSnapshot(employees, shifts, assignments)
}

func loadSnapshotEmployees(ctx context.Context, tx *sql.Tx) ([]*domain.Employee, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, first_name, last_name, email, phone, department_id, avatar_url, created_at, version FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email, &employee.Phone, &employee.DepartmentID, &employee.AvatarURL, &employee.CreatedAt, &employee.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func loadSnapshotShifts(ctx context.Context, tx *sql.Tx) ([]*domain.Shift, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, date, start_time::text, end_time::text, shift_type, created_at FROM shifts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

func loadSnapshotAssignments(ctx context.Context, tx *sql.Tx) ([]*domain.Assignment, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, employee_id, shift_id, created_at FROM shift_assignments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// mapAssignmentConstraintError 把唯一约束冲突翻译成业务错误
func mapAssignmentConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.ConstraintName {
		case constraintShiftCoverage, constraintEmployeeShift:
			return domain.ErrShiftAlreadyCovered
		}
	}
	return err
}

// CreateAssignment 创建一条排班记录。冲突校验和插入在同一个可串行化
// 事务中完成，防止两个并发请求同时通过校验后把一个班次排给两个人。
func (r *Repository) CreateAssignment(assignment *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	snapshot, err := r.loadSnapshot(ctx, tx)
	if err != nil {
		return err
	}

	if err := snapshot.CanAssign(assignment.EmployeeID, assignment.ShiftID, 0); err != nil {
		return err
	}

	query := `
		INSERT INTO shift_assignments (employee_id, shift_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, query, assignment.EmployeeID, assignment.ShiftID).Scan(&assignment.ID, &assignment.CreatedAt); err != nil {
		return mapAssignmentConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapAssignmentConstraintError(err)
	}

	return nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT employee_id, shift_id, created_at
		FROM shift_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.Assignment{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&assignment.EmployeeID, &assignment.ShiftID, &assignment.CreatedAt); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) GetAllAssignments() ([]*domain.Assignment, error) {
	query := `
		SELECT id, employee_id, shift_id, created_at FROM shift_assignments
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// GetAssignmentsInRange 返回班次日期落在 [start, end] 内的所有排班记录
func (r *Repository) GetAssignmentsInRange(start, end time.Time) ([]*domain.Assignment, error) {
	query := `
		SELECT a.id, a.employee_id, a.shift_id, a.created_at
		FROM shift_assignments a
		JOIN shifts s ON s.id = a.shift_id
		WHERE s.date BETWEEN $1 AND $2
		ORDER BY s.date, s.start_time, a.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *Repository) DeleteAssignment(id int64) error {
	query := `
		DELETE FROM shift_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAssignmentNotFound
	}

	return nil
}

// AutoBalance 为所有未覆盖的班次自动安排员工。整个平衡过程在一个
// 可串行化事务中执行，排班决策由 scheduler.Snapshot 在内存中算出，
// 这里只负责按提议的顺序逐条落库。
func (r *Repository) AutoBalance() ([]*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	snapshot, err := r.loadSnapshot(ctx, tx)
	if err != nil {
		return nil, err
	}

	proposals := snapshot.AutoBalance()

	created := make([]*domain.Assignment, 0, len(proposals))
	for _, proposal := range proposals {
		assignment := &domain.Assignment{
			EmployeeID: proposal.EmployeeID,
			ShiftID:    proposal.ShiftID,
		}

		query := `
			INSERT INTO shift_assignments (employee_id, shift_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`
		if err := tx.QueryRowContext(ctx, query, assignment.EmployeeID, assignment.ShiftID).Scan(&assignment.ID, &assignment.CreatedAt); err != nil {
			return nil, mapAssignmentConstraintError(err)
		}

		created = append(created, assignment)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapAssignmentConstraintError(err)
	}

	return created, nil
}

// ReconcileMove 把日历拖拽上报的新时间窗口落实到排班记录上：
// 先把窗口解析成一个具体班次，再校验冲突，最后把记录重新指向新班次。
// 返回的 moved 为 false 表示解析出的班次就是当前班次，此时不做任何修改。
func (r *Repository) ReconcileMove(assignmentID int64, newStart, newEnd time.Time) (*domain.Shift, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	assignment := &domain.Assignment{
		ID: assignmentID,
	}
	query := `
		SELECT employee_id, shift_id, created_at
		FROM shift_assignments WHERE id = $1
	`
	if err := tx.QueryRowContext(ctx, query, assignmentID).Scan(&assignment.EmployeeID, &assignment.ShiftID, &assignment.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, domain.ErrAssignmentNotFound
		}
		return nil, false, err
	}

	snapshot, err := r.loadSnapshot(ctx, tx)
	if err != nil {
		return nil, false, err
	}

	target, err := snapshot.MatchShiftWindow(newStart, newEnd)
	if err != nil {
		return nil, false, err
	}

	// 解析出的班次就是当前班次，视为已到位，不做任何修改
	if target.ID == assignment.ShiftID {
		return target, false, nil
	}

	if err := snapshot.CanAssign(assignment.EmployeeID, target.ID, assignment.ID); err != nil {
		return nil, false, err
	}

	// 重新指向而不是删除重建，排班记录的 ID 在移动前后保持不变
	if _, err := tx.ExecContext(ctx, `UPDATE shift_assignments SET shift_id = $1 WHERE id = $2`, target.ID, assignment.ID); err != nil {
		return nil, false, mapAssignmentConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, mapAssignmentConstraintError(err)
	}

	return target, true, nil
}

func scanAssignments(rows *sql.Rows) ([]*domain.Assignment, error) {
	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		if err := rows.Scan(&assignment.ID, &assignment.EmployeeID, &assignment.ShiftID, &assignment.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
