package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techstyle/chatdesk/internal/app/chat"
	"github.com/techstyle/chatdesk/internal/domain"
	"github.com/techstyle/chatdesk/internal/observability"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type Server struct {
	svc *chat.Service
}

// NewServer builds the HTTP handler. registry may be nil; when set, the
// metrics endpoint is mounted and request metrics are recorded.
func NewServer(svc *chat.Service, metrics *observability.Metrics, registry *prometheus.Registry) http.Handler {
	s := &Server{svc: svc}

	r := mux.NewRouter()
	if metrics != nil {
		r.Use(withMetrics(metrics))
	}

	r.HandleFunc("/api/chat/message", s.handleSendMessage).Methods(http.MethodPost)
	r.HandleFunc("/api/chat/{sessionID}/history", s.handleGetHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/chat/health", s.handleHealth).Methods(http.MethodGet)

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	// CORS, request-id and logging wrap the router itself: mux middleware only
	// runs on matched routes, which would skip preflight OPTIONS requests,
	// unknown paths and rejected methods.
	return withRequestID(withLogging(withCORS(r)))
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type sendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type sendMessageResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

type messageDTO struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type historyResponse struct {
	SessionID string       `json:"sessionId"`
	Messages  []messageDTO `json:"messages"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.svc.Send(r.Context(), chat.SendInput{
		Text:         req.Message,
		SessionToken: req.SessionID,
	})
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			badRequest(w, vErr.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		Reply:     out.Reply,
		SessionID: out.SessionToken,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["sessionID"]

	convID, msgs, err := s.svc.History(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			badRequest(w, "Invalid session ID format")
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error:   "Not Found",
				Message: "Conversation not found",
			})
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		SessionID: string(convID),
		Messages:  toMessageDTOs(msgs),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "chatdesk",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error:   "Not Found",
		Message: "The requested resource was not found",
	})
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error:   "Method Not Allowed",
		Message: "The method is not allowed for the requested resource",
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toMessageDTOs(msgs []*domain.Message) []messageDTO {
	out := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageDTO{
			ID:        string(m.ID),
			Sender:    string(m.Sender),
			Text:      m.Text,
			Timestamp: m.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Bad Request",
		Message: msg,
	})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "Internal Server Error",
		Message: "Something went wrong. Please try again later.",
	})
}
