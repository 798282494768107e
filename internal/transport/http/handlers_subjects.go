package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campus/internal/query"
	"campus/internal/resolver"
	subjectModels "campus/internal/subject/models"
	"campus/pkg/platform/httputil"
)

// SubjectService is the part of the resolver the subject routes need.
type SubjectService interface {
	ListSubjects(ctx context.Context, criteria *subjectModels.Criteria, opts query.Options) ([]resolver.SubjectDetails, error)
	GetSubject(ctx context.Context, id string) (*resolver.SubjectDetails, error)
	CreateSubject(ctx context.Context, req subjectModels.CreateRequest) (*resolver.SubjectDetails, error)
	UpdateSubject(ctx context.Context, id string, req subjectModels.UpdateRequest) (*resolver.SubjectDetails, error)
	DeleteSubject(ctx context.Context, id string) error
}

type SubjectHandler struct {
	subjects SubjectService
	logger   *slog.Logger
}

func NewSubjectHandler(subjects SubjectService, logger *slog.Logger) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, logger: logger}
}

func (h *SubjectHandler) Register(r chi.Router) {
	r.Route("/subjects", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *SubjectHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	criteria, opts, err := parseSubjectQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	subjects, err := h.subjects.ListSubjects(ctx, criteria, opts)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, subjectListResponse{Subjects: subjects, Count: len(subjects)})
}

func (h *SubjectHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, err := h.subjects.GetSubject(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req subjectModels.CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	subject, err := h.subjects.CreateSubject(ctx, req)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, subject)
}

func (h *SubjectHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req subjectModels.UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	subject, err := h.subjects.UpdateSubject(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.subjects.DeleteSubject(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deleteResponse{Deleted: true})
}
