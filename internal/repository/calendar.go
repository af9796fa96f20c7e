package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// GetCalendarEvents 拼装日期范围内的排班日历视图。
// 日历事件是排班记录、班次和员工的派生组合，只在读取时计算，不落库。
func (r *Repository) GetCalendarEvents(start, end time.Time) ([]*domain.CalendarEvent, error) {
	query := `
		SELECT
			a.id,
			s.id,
			s.name,
			s.date,
			s.start_time::text,
			s.end_time::text,
			s.shift_type,
			e.id,
			e.first_name,
			e.last_name,
			e.email,
			e.phone,
			e.department_id,
			e.avatar_url,
			e.created_at,
			e.version
		FROM shift_assignments a
		JOIN shifts s ON s.id = a.shift_id
		JOIN employees e ON e.id = a.employee_id
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

	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		employee := &domain.Employee{}
		event := &domain.CalendarEvent{
			Employee: employee,
		}

		dst := []any{
			&event.AssignmentID,
			&shift.ID,
			&shift.Name,
			&shift.Date,
			&shift.StartTime,
			&shift.EndTime,
			&shift.Type,
			&employee.ID,
			&employee.FirstName,
			&employee.LastName,
			&employee.Email,
			&employee.Phone,
			&employee.DepartmentID,
			&employee.AvatarURL,
			&employee.CreatedAt,
			&employee.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		startAt, endAt, err := shift.EffectiveWindow()
		if err != nil {
			return nil, err
		}

		event.ShiftID = shift.ID
		event.ShiftName = shift.Name
		event.ShiftType = shift.Type
		event.StartAt = startAt
		event.EndAt = endAt
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
