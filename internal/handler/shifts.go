package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/utils"
)

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string    `json:"name" validate:"required"`
		Date      time.Time `json:"date" validate:"required"`
		StartTime string    `json:"startTime" validate:"required"`
		EndTime   string    `json:"endTime" validate:"required"`
		ShiftType string    `json:"shiftType" validate:"required,oneof=MORNING AFTERNOON NIGHT"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检查开始和结束时间的格式；结束时间早于开始时间是合法的，表示跨夜班次
	if err := utils.ValidateShiftTimes(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		Name:      req.Name,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      domain.ShiftType(req.ShiftType),
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "uq_shift_date_name":
				h.errorResponse(w, r, "当天已存在同名班次")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateCalendarCache(r)
	h.successResponse(w, r, "创建班次成功", shift)
}

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.repository.GetAllShifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftInfoCtx).(*domain.Shift)
	h.successResponse(w, r, "获取班次信息成功", shift)
}

// DeleteShift 删除班次。引用该班次的排班记录会被一并级联删除。
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftInfoCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		if msg := businessErrorMessage(err); msg != "" {
			h.errorResponse(w, r, msg)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateCalendarCache(r)
	h.successResponse(w, r, "删除班次成功", nil)
}

// EnsureWeekShifts 保证指定周存在班次，不存在时从上一周克隆
func (h *Handler) EnsureWeekShifts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStart string `json:"weekStart" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekStart, err := utils.ParseDateParam(req.WeekStart)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, cloneMap, err := h.repository.EnsureWeekShifts(weekStart)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(cloneMap) > 0 {
		h.invalidateCalendarCache(r)
	}

	h.successResponse(w, r, "获取本周班次成功", struct {
		Shifts   []*domain.Shift `json:"shifts"`
		CloneMap map[int64]int64 `json:"cloneMap"`
	}{
		Shifts:   shifts,
		CloneMap: cloneMap,
	})
}
