package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/utils"
)

const calendarGenerationKey = "calendar:generation"

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}

// GetCalendar 返回日期范围内的排班日历视图。
// 视图由排班记录、班次和员工在读取时拼装，结果会短暂缓存在 redis 中，
// 缓存键里带着代数，写操作把代数加一之后旧缓存自然失效。
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	start, err := utils.ParseDateParam(r.URL.Query().Get("start"))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	end, err := utils.ParseDateParam(r.URL.Query().Get("end"))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	generation, err := h.redisClient.Get(ctx, calendarGenerationKey).Int64()
	if err != nil && err != redis.Nil {
		// 缓存不可用时直接回源查询
		slog.Warn("无法读取日历缓存代数", "error", err)
		generation = -1
	}

	cacheKey := fmt.Sprintf("calendar:%d:%s:%s", generation, start.Format("2006-01-02"), end.Format("2006-01-02"))

	if generation >= 0 {
		cached, err := h.redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil {
			h.successResponse(w, r, "获取排班日历成功", json.RawMessage(cached))
			return
		}
		if err != redis.Nil {
			slog.Warn("无法读取日历缓存", "key", cacheKey, "error", err)
		}
	}

	events, err := h.repository.GetCalendarEvents(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if generation >= 0 {
		if data, err := json.Marshal(events); err == nil {
			expiration := time.Duration(h.config.Calendar.CacheExpiration) * time.Second
			if err := h.redisClient.Set(ctx, cacheKey, data, expiration).Err(); err != nil {
				slog.Warn("无法写入日历缓存", "key", cacheKey, "error", err)
			}
		}
	}

	h.successResponse(w, r, "获取排班日历成功", events)
}

// invalidateCalendarCache 把日历缓存的代数加一，使所有已缓存的范围失效。
// 缓存失效是尽力而为的：redis 不可用时只记日志，不影响写操作本身。
func (h *Handler) invalidateCalendarCache(r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Incr(ctx, calendarGenerationKey).Err(); err != nil {
		slog.Warn("无法更新日历缓存代数", "requestID", r.Context().Value(RequestIDCtx), "error", err)
	}
}
