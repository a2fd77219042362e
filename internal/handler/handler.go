package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/config"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/crew"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/schedule"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/repository"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/tracking"
)

type Handler struct {
	validate        *validator.Validate
	config          *config.Config
	repository      *repository.Repository
	translator      ut.Translator
	locationChannel *amqp.Channel
	sampleCache     *tracking.RedisSampleCache
	scorer          *crew.Scorer
	segmentOpts     schedule.Options

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, locationCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:        validate,
		config:          cfg,
		repository:      repo,
		translator:      trans,
		locationChannel: locationCh,
		sampleCache:     tracking.NewRedisSampleCache(cfg, rdb),
		scorer:          crew.NewScorer(crew.DefaultSkillMatrix(), cfg.Dispatch.AlternativeCount),
		segmentOpts: schedule.Options{
			DefaultDayMinutes: cfg.Dispatch.DefaultDayMinutes,
			MaxWorkingDays:    cfg.Dispatch.MaxWorkingDays,
		},

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/crew-members", func(r chi.Router) {
		r.Post("/", h.CreateCrewMember)
		r.Get("/", h.ListCrewMembers)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.crewMember)
			r.Get("/", h.GetCrewMember)
			r.Patch("/", h.UpdateCrewMember)
			r.Delete("/", h.DeleteCrewMember)
			r.Get("/location", h.GetLatestLocation)
		})
	})

	h.Mux.Route("/availability-blocks", func(r chi.Router) {
		r.Post("/", h.CreateAvailabilityBlock)
		r.Get("/", h.ListAvailabilityBlocks)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.availabilityBlock)
			r.Delete("/", h.CancelAvailabilityBlock)
		})
	})

	h.Mux.Route("/jobs", func(r chi.Router) {
		r.Post("/", h.CreateJob)
		r.Get("/", h.ListJobs)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.job)
			r.Get("/", h.GetJob)
			r.Post("/schedule", h.ScheduleJob)
			r.Get("/crew-suggestion", h.SuggestCrew)
			r.Post("/crew", h.CommitCrew)
			r.Post("/status", h.UpdateJobStatus)
		})
	})

	h.Mux.Post("/locations", h.IngestLocation)
}
