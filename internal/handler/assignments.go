package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/utils"
)

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID int64 `json:"employeeID" validate:"required"`
		ShiftID    int64 `json:"shiftID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment := &domain.Assignment{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
	}

	if err := h.repository.CreateAssignment(assignment); err != nil {
		if msg := businessErrorMessage(err); msg != "" {
			h.metrics.RecordRuleRejection(businessErrorReason(err))
			h.errorResponse(w, r, msg)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.metrics.RecordAssignmentCreated("direct")
	h.invalidateCalendarCache(r)
	h.notifyAssignment(r, "assignment_created", assignment)

	h.successResponse(w, r, "创建排班成功", assignment)
}

// GetAssignments 返回排班记录列表。
// 带上 start 和 end 查询参数（YYYY-MM-DD）时只返回班次日期在该范围内的记录。
func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	if startParam == "" && endParam == "" {
		assignments, err := h.repository.GetAllAssignments()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "获取排班列表成功", assignments)
		return
	}

	start, err := utils.ParseDateParam(startParam)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	end, err := utils.ParseDateParam(endParam)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignments, err := h.repository.GetAssignmentsInRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班列表成功", assignments)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.Assignment)

	if err := h.repository.DeleteAssignment(assignment.ID); err != nil {
		if msg := businessErrorMessage(err); msg != "" {
			h.errorResponse(w, r, msg)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateCalendarCache(r)
	h.successResponse(w, r, "删除排班成功", nil)
}

// AutoBalance 为所有没人值的班次自动安排员工。
// 某个班次排不出人只是跳过，不算错误，所以这个接口不会因为冲突而失败。
func (h *Handler) AutoBalance(w http.ResponseWriter, r *http.Request) {
	created, err := h.repository.AutoBalance()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.metrics.RecordAutoBalance(len(created))
	for range created {
		h.metrics.RecordAssignmentCreated("auto_balance")
	}

	if len(created) > 0 {
		h.invalidateCalendarCache(r)
		for _, assignment := range created {
			h.notifyAssignment(r, "assignment_created", assignment)
		}
	}

	h.successResponse(w, r, "自动平衡完成", struct {
		CreatedCount       int                  `json:"createdCount"`
		CreatedAssignments []*domain.Assignment `json:"createdAssignments"`
	}{
		CreatedCount:       len(created),
		CreatedAssignments: created,
	})
}

// ReconcileMove 处理日历上的拖拽或缩放手势。日历组件只会上报新的时间
// 窗口，这里把窗口解析回一个具体班次，校验冲突后把排班记录重新指过去。
func (h *Handler) ReconcileMove(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.Assignment)

	var req struct {
		NewStart time.Time `json:"newStart" validate:"required"`
		NewEnd   time.Time `json:"newEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	target, moved, err := h.repository.ReconcileMove(assignment.ID, req.NewStart, req.NewEnd)
	if err != nil {
		if msg := businessErrorMessage(err); msg != "" {
			h.metrics.RecordRuleRejection(businessErrorReason(err))
			h.errorResponse(w, r, msg)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	if !moved {
		// 解析出的班次就是当前班次，没有任何修改
		h.successResponse(w, r, "排班已在目标班次上", struct {
			MovedTo int64 `json:"movedTo"`
			Moved   bool  `json:"moved"`
		}{
			MovedTo: target.ID,
			Moved:   false,
		})
		return
	}

	h.metrics.RecordReconcileMove()
	h.invalidateCalendarCache(r)
	assignment.ShiftID = target.ID
	h.notifyAssignment(r, "assignment_moved", assignment)

	h.successResponse(w, r, "移动排班成功", struct {
		MovedTo int64 `json:"movedTo"`
		Moved   bool  `json:"moved"`
	}{
		MovedTo: target.ID,
		Moved:   true,
	})
}

// notifyAssignment 把排班通知邮件投递到消息队列。
// 通知是尽力而为的：投递失败只记日志，不影响已经提交的排班操作。
func (h *Handler) notifyAssignment(r *http.Request, mailType string, assignment *domain.Assignment) {
	employee, err := h.repository.GetEmployeeByID(assignment.EmployeeID)
	if err != nil {
		slog.Error("无法获取排班通知的员工信息", "employeeID", assignment.EmployeeID, "error", err)
		return
	}
	shift, err := h.repository.GetShiftByID(assignment.ShiftID)
	if err != nil {
		slog.Error("无法获取排班通知的班次信息", "shiftID", assignment.ShiftID, "error", err)
		return
	}

	fullName := employee.LastName + employee.FirstName

	var mailMessage domain.MailMessage
	switch mailType {
	case "assignment_created":
		mailMessage = domain.MailMessage{
			Type: mailType,
			To:   employee.Email,
			Data: domain.AssignmentCreatedMailData{
				FullName:  fullName,
				ShiftName: shift.Name,
				Date:      shift.Date.Format("2006-01-02"),
				StartTime: shift.StartTime,
				EndTime:   shift.EndTime,
			},
		}
	case "assignment_moved":
		mailMessage = domain.MailMessage{
			Type: mailType,
			To:   employee.Email,
			Data: domain.AssignmentMovedMailData{
				FullName:  fullName,
				ShiftName: shift.Name,
				Date:      shift.Date.Format("2006-01-02"),
				StartTime: shift.StartTime,
				EndTime:   shift.EndTime,
			},
		}
	default:
		return
	}

	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("排班通知序列化失败", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notify_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        emailData,
		},
	); err != nil {
		slog.Error("排班通知投递失败", "requestID", r.Context().Value(RequestIDCtx), "error", err)
	}
}
