package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/rolekit/pkg/logger"
	"github.com/dmitrymomot/rolekit/pkg/org"
)

// Handler exposes the user-management service over HTTP. Authentication and
// org-context resolution are expected from upstream middleware.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates an HTTP handler over the service.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to encode response", logger.Error(err))
	}
}

// respondErr maps domain errors to HTTP statuses: unknown users → 404,
// conflicts → 409, self-OTP-reset → 401, validation failures → 400.
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrDuplicateUser):
		status = http.StatusConflict
	case errors.Is(err, ErrResetSelfOTP):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrRootOrgInvite),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrUsernameRequired):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	h.respond(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "userID"))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	oc, _ := org.FromContext(r.Context())
	filter := ListFilter{Search: r.URL.Query().Get("search")}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	batch, err := h.svc.List(r.Context(), oc, filter)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, batch)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	oc, _ := org.FromContext(r.Context())

	u, err := h.svc.Get(r.Context(), oc, id)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, u)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := h.decode(r, &params); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	u, err := h.svc.Create(r.Context(), params)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusCreated, u)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	var params UpdateParams
	if err := h.decode(r, &params); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	params.ID = id

	u, err := h.svc.Update(r.Context(), params)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, u)
}

func (h *Handler) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	var batch []UpdateParams
	if err := h.decode(r, &batch); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	out, err := h.svc.BulkUpdate(r.Context(), batch)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, out)
}

type idsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *Handler) bulkDelete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := h.decode(r, &req); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.svc.BulkDelete(r.Context(), req.IDs); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	oc, _ := org.FromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	batch, err := h.svc.Suggest(r.Context(), oc, r.URL.Query().Get("search"), limit)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, batch)
}

func (h *Handler) invite(w http.ResponseWriter, r *http.Request) {
	oc, _ := org.FromContext(r.Context())
	var params InviteParams
	if err := h.decode(r, &params); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.svc.Invite(r.Context(), oc, params); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusCreated, nil)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) bulkRemove(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := h.decode(r, &req); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.svc.BulkRemove(r.Context(), req.IDs); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) resetOTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		h.respond(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	if err := h.svc.ResetOTP(r.Context(), actor, id); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"msg": "success"})
}

func (h *Handler) unblock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	if err := h.svc.Unblock(r.Context(), id); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"msg": "success"})
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	var req changePasswordRequest
	if err := h.decode(r, &req); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.svc.ChangePassword(r.Context(), id, req.Password); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"msg": "success"})
}
