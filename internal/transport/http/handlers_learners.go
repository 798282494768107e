package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	learnerModels "campus/internal/learner/models"
	"campus/internal/query"
	"campus/internal/resolver"
	"campus/pkg/platform/httputil"
)

// LearnerService is the part of the resolver the learner routes need.
type LearnerService interface {
	ListLearners(ctx context.Context, criteria *learnerModels.Criteria, opts query.Options) ([]resolver.LearnerDetails, error)
	GetLearner(ctx context.Context, id string) (*resolver.LearnerDetails, error)
	FindLearnersByField(ctx context.Context, field string) []resolver.LearnerDetails
	CreateLearner(ctx context.Context, req learnerModels.CreateRequest) (*resolver.LearnerDetails, error)
	UpdateLearner(ctx context.Context, id string, req learnerModels.UpdateRequest) (*resolver.LearnerDetails, error)
	DeleteLearner(ctx context.Context, id string) error
	LinkLearnerSubject(ctx context.Context, learnerID, subjectID string) (*resolver.LearnerDetails, error)
	UnlinkLearnerSubject(ctx context.Context, learnerID, subjectID string) (*resolver.LearnerDetails, error)
}

type LearnerHandler struct {
	learners LearnerService
	logger   *slog.Logger
}

func NewLearnerHandler(learners LearnerService, logger *slog.Logger) *LearnerHandler {
	return &LearnerHandler{learners: learners, logger: logger}
}

func (h *LearnerHandler) Register(r chi.Router) {
	r.Route("/learners", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/search", h.handleSearch)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Put("/{id}/subjects/{subjectID}", h.handleLink)
		r.Delete("/{id}/subjects/{subjectID}", h.handleUnlink)
	})
}

func (h *LearnerHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	criteria, opts, err := parseLearnerQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	learners, err := h.learners.ListLearners(ctx, criteria, opts)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, learnerListResponse{Learners: learners, Count: len(learners)})
}

func (h *LearnerHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	learners := h.learners.FindLearnersByField(r.Context(), r.URL.Query().Get("field_of_study"))
	httputil.WriteJSON(w, http.StatusOK, learnerListResponse{Learners: learners, Count: len(learners)})
}

func (h *LearnerHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	learner, err := h.learners.GetLearner(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, learner)
}

func (h *LearnerHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req learnerModels.CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	learner, err := h.learners.CreateLearner(ctx, req)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, learner)
}

func (h *LearnerHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req learnerModels.UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	learner, err := h.learners.UpdateLearner(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, learner)
}

func (h *LearnerHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.learners.DeleteLearner(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deleteResponse{Deleted: true})
}

func (h *LearnerHandler) handleLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	learner, err := h.learners.LinkLearnerSubject(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "subjectID"))
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, learner)
}

func (h *LearnerHandler) handleUnlink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	learner, err := h.learners.UnlinkLearnerSubject(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "subjectID"))
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, learner)
}
