package handler

import (
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	metrics     *metrics.Collector
	gatherer    prometheus.Gatherer

	limiterMu sync.Mutex
	limiters  map[string]*ipLimiter

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, collector *metrics.Collector, gatherer prometheus.Gatherer) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		metrics:     collector,
		gatherer:    gatherer,
		limiters:    make(map[string]*ipLimiter),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.rateLimit)

	h.Mux.Get("/healthz", h.Healthz)
	h.Mux.Handle("/metrics", metrics.Handler(h.gatherer))

	h.Mux.Route("/employees", func(r chi.Router) {
		r.Post("/", h.CreateEmployee)
		r.Get("/", h.GetAllEmployees)
		r.Route("/departments", func(r chi.Router) {
			r.Post("/", h.CreateDepartment)
			r.Get("/", h.GetAllDepartments)
		})
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.employeeInfo)
			r.Get("/", h.GetEmployee)
			r.Patch("/", h.UpdateEmployee)
			r.Delete("/", h.DeleteEmployee)
		})
	})

	h.Mux.Route("/shifts", func(r chi.Router) {
		r.Post("/", h.CreateShift)
		r.Get("/", h.GetAllShifts)
		r.Post("/ensure-week", h.EnsureWeekShifts)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.shiftInfo)
			r.Get("/", h.GetShift)
			r.Delete("/", h.DeleteShift)
		})
	})

	h.Mux.Route("/assignments", func(r chi.Router) {
		r.Post("/", h.CreateAssignment)
		r.Get("/", h.GetAssignments)
		r.Post("/auto-balance", h.AutoBalance)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.assignmentInfo)
			r.Delete("/", h.DeleteAssignment)
			r.Post("/reconcile", h.ReconcileMove)
		})
	})

	h.Mux.Get("/calendar", h.GetCalendar)
}
