package container

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Message string `json:"message"`
}

// Handler exposes container gateway HTTP endpoints using go-chi.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler returns a Handler that uses the given Service and Logger.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes returns the router for the container endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/containers", h.ListContainers)
	r.Route("/containers/{container_id}", func(r chi.Router) {
		r.Get("/", h.GetContainer)
		r.Get("/ads", h.GetAdvertisements)
		r.Get("/images", h.GetImages)
		r.Get("/videos", h.GetVideos)
	})
	return r
}

// ListContainers handles GET /containers.
func (h *Handler) ListContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.svc.ListContainers(r.Context())
	if err != nil {
		h.log.Error("list containers failed", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "failed to list containers")
		return
	}
	h.respondJSON(w, http.StatusOK, containers)
}

// GetContainer handles GET /containers/{container_id}.
func (h *Handler) GetContainer(w http.ResponseWriter, r *http.Request) {
	containerID, ok := h.containerID(w, r)
	if !ok {
		return
	}

	container, err := h.svc.GetContainer(r.Context(), containerID)
	if err != nil {
		h.log.Error("get container failed",
			slog.Int("container_id", containerID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "failed to get container")
		return
	}
	h.respondJSON(w, http.StatusOK, container)
}

// GetAdvertisements handles GET /containers/{container_id}/ads.
func (h *Handler) GetAdvertisements(w http.ResponseWriter, r *http.Request) {
	containerID, ok := h.containerID(w, r)
	if !ok {
		return
	}

	ads, err := h.svc.ListAdvertisements(r.Context(), containerID)
	if err != nil {
		h.log.Error("list advertisements failed",
			slog.Int("container_id", containerID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "no advertisements found for this container")
		return
	}
	if ads == nil {
		ads = []Advertisement{}
	}
	h.respondJSON(w, http.StatusOK, ads)
}

// GetImages handles GET /containers/{container_id}/images.
func (h *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	containerID, ok := h.containerID(w, r)
	if !ok {
		return
	}

	images, err := h.svc.ListImages(r.Context(), containerID)
	if err != nil {
		h.log.Error("list images failed",
			slog.Int("container_id", containerID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "no images found for this container")
		return
	}
	if images == nil {
		images = []Image{}
	}
	h.respondJSON(w, http.StatusOK, images)
}

// GetVideos handles GET /containers/{container_id}/videos.
func (h *Handler) GetVideos(w http.ResponseWriter, r *http.Request) {
	containerID, ok := h.containerID(w, r)
	if !ok {
		return
	}

	videos, err := h.svc.ListVideos(r.Context(), containerID)
	if err != nil {
		h.log.Error("list videos failed",
			slog.Int("container_id", containerID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "no videos found for this container")
		return
	}
	if videos == nil {
		videos = []Video{}
	}
	h.respondJSON(w, http.StatusOK, videos)
}

// containerID parses the container_id URL parameter, responding with 400 on a
// non-integer value.
func (h *Handler) containerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "container_id")
	containerID, err := strconv.Atoi(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "container id must be an integer")
		return 0, false
	}
	return containerID, true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("write response failed", slog.String("error", err.Error()))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Message: message})
}
