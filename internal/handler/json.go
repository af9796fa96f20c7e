package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "requestID", r.Context().Value(RequestIDCtx), "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "服务器内部错误",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// businessErrorMessage 把核心业务错误翻译成给调用方看的提示信息。
// 返回空字符串表示这不是业务错误，应该按内部错误处理。
func businessErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return "员工不存在"
	case errors.Is(err, domain.ErrShiftNotFound):
		return "班次不存在"
	case errors.Is(err, domain.ErrAssignmentNotFound):
		return "排班记录不存在"
	case errors.Is(err, domain.ErrShiftAlreadyCovered):
		return "该班次已有人值班"
	case errors.Is(err, domain.ErrTimeConflict):
		return "与该员工已有班次的时间冲突"
	case errors.Is(err, domain.ErrNoMatchingShift):
		return "找不到与该时间窗口匹配的班次"
	default:
		return ""
	}
}

// businessErrorReason 返回业务错误的指标标签，供 Prometheus 统计拒绝原因
func businessErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrShiftAlreadyCovered):
		return "shift_already_covered"
	case errors.Is(err, domain.ErrTimeConflict):
		return "time_conflict"
	case errors.Is(err, domain.ErrNoMatchingShift):
		return "no_matching_shift"
	default:
		return "not_found"
	}
}
