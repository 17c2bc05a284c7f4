package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/service"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	service    service.StudentService
	translator ut.Translator
	logger     *slog.Logger

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, svc service.StudentService, logger *slog.Logger) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		service:    svc,
		translator: trans,
		logger:     logger,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.identity)

	h.Mux.Route("/students", func(r chi.Router) {
		r.Get("/", h.ListStudents)
		r.Post("/", h.CreateStudent)
		r.Get("/export", h.ExportStudents)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetStudent)
			r.Put("/", h.UpdateStudent)
			r.Patch("/status", h.SetStudentStatus)
			r.Delete("/", h.DeleteStudent)
		})
	})
}
