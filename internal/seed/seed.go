package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/utils"
)

var lastNames = []string{"李", "王", "张", "刘", "陈", "杨", "黄", "赵", "周", "吴", "徐", "孙", "马", "胡", "郭", "林", "何", "高", "梁", "郑"}

var firstNames = []string{"伟", "芳", "娜", "敏", "静", "秀英", "丽", "强", "磊", "军", "洋", "勇", "艳", "杰", "涛", "明", "超", "秀兰", "霞", "平"}

// 每天的默认班次，夜班跨越午夜，结束时间在次日
var defaultShifts = []struct {
	Name      string
	StartTime string
	EndTime   string
	Type      domain.ShiftType
}{
	{Name: "早班", StartTime: "06:00:00", EndTime: "14:00:00", Type: domain.ShiftTypeMorning},
	{Name: "午班", StartTime: "14:00:00", EndTime: "22:00:00", Type: domain.ShiftTypeAfternoon},
	{Name: "夜班", StartTime: "22:00:00", EndTime: "06:00:00", Type: domain.ShiftTypeNight},
}

// RandomEmployees 插入 n 个随机员工，邮箱由姓名的拼音加随机数字构成
func RandomEmployees(r *repository.Repository, n int, emailDomain string) error {
	for i := 0; i < n; i++ {
		lastName := lastNames[rand.Intn(len(lastNames))]
		firstName := firstNames[rand.Intn(len(firstNames))]

		parts := pinyin.LazyConvert(lastName+firstName, nil)
		local := strings.Join(parts, "")
		email := fmt.Sprintf("%s%d@%s", local, rand.Intn(10000), emailDomain)
		phone := utils.GenerateRandomPhone()

		employee := &domain.Employee{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Phone:     &phone,
		}

		if err := r.CreateEmployee(employee); err != nil {
			return err
		}

		slog.Info("已插入随机员工", "id", employee.ID, "name", lastName+firstName, "email", email)
	}

	return nil
}

// WeekShifts 为从 weekStart 开始的一周插入默认的三班班次
func WeekShifts(r *repository.Repository, weekStart time.Time) error {
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)

		for _, ds := range defaultShifts {
			shift := &domain.Shift{
				Name:      ds.Name,
				Date:      date,
				StartTime: ds.StartTime,
				EndTime:   ds.EndTime,
				Type:      ds.Type,
			}

			if err := r.CreateShift(shift); err != nil {
				return err
			}

			slog.Info("已插入班次", "id", shift.ID, "name", shift.Name, "date", date.Format("2006-01-02"))
		}
	}

	return nil
}

// RandomAssignments 随机创建 n 条排班记录。
// 撞上冲突（班次已被覆盖、时间冲突）时跳过重试，
// 连续失败过多则放弃，避免在全排满的数据上死循环。
func RandomAssignments(r *repository.Repository, n int) error {
	employees, err := r.GetAllEmployees()
	if err != nil {
		return err
	}
	shifts, err := r.GetAllShifts()
	if err != nil {
		return err
	}

	if len(employees) == 0 || len(shifts) == 0 {
		slog.Warn("没有员工或班次，无法插入排班记录")
		return nil
	}

	created := 0
	failures := 0
	for created < n && failures < n*10 {
		employee := employees[rand.Intn(len(employees))]
		shift := shifts[rand.Intn(len(shifts))]

		assignment := &domain.Assignment{
			EmployeeID: employee.ID,
			ShiftID:    shift.ID,
		}

		if err := r.CreateAssignment(assignment); err != nil {
			if errors.Is(err, domain.ErrShiftAlreadyCovered) || errors.Is(err, domain.ErrTimeConflict) {
				failures++
				continue
			}
			return err
		}

		created++
		slog.Info("已插入排班记录", "id", assignment.ID, "employeeID", employee.ID, "shiftID", shift.ID)
	}

	return nil
}
