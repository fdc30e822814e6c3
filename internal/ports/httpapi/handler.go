package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"livechess/internal/app/onboarding"
	"livechess/internal/domain"
	"livechess/internal/ports"
)

// Handler exposes the registration surface: a client trades a username and
// color for an owner identity and its session token.
type Handler struct {
	directory ports.OwnerDirectory
	log       *slog.Logger
}

// NewHandler constructs the HTTP API over the owner directory.
func NewHandler(directory ports.OwnerDirectory, log *slog.Logger) *Handler {
	return &Handler{directory: directory, log: log}
}

// Routes registers the API endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/register", h.handleRegister)
}

type registerRequest struct {
	Username string `json:"username"`
	Color    string `json:"color"`
}

type registerResponse struct {
	Owner ports.Owner `json:"owner"`
	Token string      `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	owner, token, err := h.directory.Register(r.Context(), req.Username, req.Color)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, onboarding.ErrUsernameLength), errors.Is(err, onboarding.ErrUnknownColor):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrNoSideAvailable):
			status = http.StatusConflict
		default:
			h.log.Error("register failed", "err", err)
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	h.log.Info("owner registered", "owner", owner.ID, "username", owner.Username, "color", owner.Color)
	writeJSON(w, http.StatusCreated, registerResponse{Owner: owner, Token: token})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
