// Package handler exposes the profile synchronization engine over HTTP. The
// routes mirror the bot protocol: operation-named paths with identifiers as
// path parameters and bare JSON values as bodies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	platformMetrics "wordwatch/internal/platform/metrics"
	"wordwatch/internal/platform/middleware"
	"wordwatch/pkg/models"
	"wordwatch/pkg/platform/httputil"
)

// Service defines the synchronization operations the transport needs.
type Service interface {
	ServerExists(ctx context.Context, serverID int64) (bool, error)
	CreateServer(ctx context.Context, serverID int64) (*models.ServerProfile, error)
	GetServer(ctx context.Context, serverID int64) (*models.ServerProfile, error)
	GetServerTotalWords(ctx context.Context, serverID int64) (int64, error)
	GetServerTotalFlaggedWords(ctx context.Context, serverID int64) (int64, error)
	GetServerFlaggedWords(ctx context.Context, serverID int64) (map[string]int64, error)
	GetServerWordCount(ctx context.Context, serverID int64, word string) (int64, error)
	FlagServerWords(ctx context.Context, serverID int64, words []string) (*models.FlagWordsResult, error)
	UnflagServerWords(ctx context.Context, serverID int64, words []string) (*models.UnflagWordsResult, error)
	AddServerTotalWords(ctx context.Context, serverID int64, delta int64) error
	ApplyServerFlagDeltas(ctx context.Context, serverID int64, deltas map[string]int64) error

	UserExists(ctx context.Context, serverID, userID int64) (bool, error)
	CreateUser(ctx context.Context, serverID, userID int64) (*models.UserProfile, error)
	CreateUsers(ctx context.Context, serverID int64, userIDs []int64) (*models.CreateManyResult, error)
	GetUser(ctx context.Context, serverID, userID int64) (*models.UserProfile, error)
	GetUserTotalWords(ctx context.Context, serverID, userID int64) (int64, error)
	GetUserTotalFlaggedWords(ctx context.Context, serverID, userID int64) (int64, error)
	GetUserFlaggedWords(ctx context.Context, serverID, userID int64) (map[string]int64, error)
	GetUserWordCount(ctx context.Context, serverID, userID int64, word string) (int64, error)
	FlagUserWords(ctx context.Context, serverID int64, words []string) (*models.FlagWordsResult, error)
	UnflagUserWords(ctx context.Context, serverID int64, words []string) (*models.UnflagWordsResult, error)
	ApplyUserFlagDeltas(ctx context.Context, serverID, userID int64, deltas map[string]int64) error
	AddUserTotalWords(ctx context.Context, serverID, userID int64, delta int64) error
	RemoveUser(ctx context.Context, serverID, userID int64) error
}

// Handler handles profile endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	metrics      *platformMetrics.Metrics
	jwtValidator middleware.JWTValidator
	rateLimit    func(http.Handler) http.Handler
}

// Option configures optional Handler dependencies.
type Option func(*Handler)

// WithMetrics attaches transport metrics.
func WithMetrics(m *platformMetrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithAuth enables bearer-token authentication on all routes.
func WithAuth(v middleware.JWTValidator) Option {
	return func(h *Handler) { h.jwtValidator = v }
}

// WithRateLimit installs a rate-limit middleware. It runs after
// authentication so the limiter keys on the caller's bot ID.
func WithRateLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) { h.rateLimit = mw }
}

// New creates a profile Handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger:  logger,
		service: service,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the profile routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	if h.metrics != nil {
		router.Use(middleware.Latency(h.metrics))
	}
	if h.jwtValidator != nil {
		router.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	}
	if h.rateLimit != nil {
		router.Use(h.rateLimit)
	}

	router.Route("/servers", func(r chi.Router) {
		r.Get("/check_if_exists/{serverID}", h.handleServerExists)
		r.Get("/get_profile/{serverID}", h.handleGetServer)
		r.Get("/get_word_count/{serverID}", h.handleServerWordCount)
		r.Get("/get_total_words/{serverID}", h.handleServerTotalWords)
		r.Get("/get_total_flagged_words/{serverID}", h.handleServerTotalFlaggedWords)
		r.Get("/get_flagged_words/{serverID}", h.handleServerFlaggedWords)
		r.Post("/create_profile/{serverID}", h.handleCreateServer)
		r.Patch("/flag_words/{serverID}", h.handleFlagWords)
		r.Patch("/unflag_words/{serverID}", h.handleUnflagWords)
		r.Put("/update_total_words_count/{serverID}", h.handleUpdateServerTotalWords)
		r.Put("/update_flags/{serverID}", h.handleUpdateServerFlags)
	})

	router.Route("/users", func(r chi.Router) {
		r.Get("/check_if_exists/{serverID}/{userID}", h.handleUserExists)
		r.Get("/get_profile/{serverID}/{userID}", h.handleGetUser)
		r.Get("/get_word_count/{serverID}/{userID}", h.handleUserWordCount)
		r.Get("/get_total_words/{serverID}/{userID}", h.handleUserTotalWords)
		r.Get("/get_total_flagged_words/{serverID}/{userID}", h.handleUserTotalFlaggedWords)
		r.Get("/get_flagged_words/{serverID}/{userID}", h.handleUserFlaggedWords)
		r.Post("/create_profile/{serverID}/{userID}", h.handleCreateUser)
		r.Post("/create_multiple_profiles/{serverID}", h.handleCreateUsers)
		r.Patch("/flag_words/{serverID}", h.handleFlagUserWords)
		r.Patch("/unflag_words/{serverID}", h.handleUnflagUserWords)
		r.Put("/update_user_flags/{serverID}/{userID}", h.handleUpdateUserFlags)
		r.Put("/update_user_total_words/{serverID}/{userID}", h.handleUpdateUserTotalWords)
		r.Delete("/remove_profile/{serverID}/{userID}", h.handleRemoveUser)
	})

	r.Mount("/", router)
}

// ---- server scope ----

func (h *Handler) handleServerExists(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	exists, err := h.service.ServerExists(r.Context(), serverID)
	if err != nil {
		h.writeServiceError(w, r, "check server", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, existsResponse{Exists: exists})
}

func (h *Handler) handleGetServer(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	profile, err := h.service.GetServer(r.Context(), serverID)
	if err != nil {
		h.writeServiceError(w, r, "get server profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleServerWordCount(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	word, err := queryWord(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	count, err := h.service.GetServerWordCount(r.Context(), serverID, word)
	if err != nil {
		h.writeServiceError(w, r, "get server word count", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wordCountResponse{Word: word, Count: count})
}

func (h *Handler) handleServerTotalWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	total, err := h.service.GetServerTotalWords(r.Context(), serverID)
	if err != nil {
		h.writeServiceError(w, r, "get server total words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, totalWordsResponse{TotalWords: total})
}

func (h *Handler) handleServerTotalFlaggedWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	total, err := h.service.GetServerTotalFlaggedWords(r.Context(), serverID)
	if err != nil {
		h.writeServiceError(w, r, "get server total flagged words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, totalFlaggedWordsResponse{TotalFlaggedWords: total})
}

func (h *Handler) handleServerFlaggedWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	words, err := h.service.GetServerFlaggedWords(r.Context(), serverID)
	if err != nil {
		h.writeServiceError(w, r, "get server flagged words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, flaggedWordsResponse{Words: words})
}

func (h *Handler) handleCreateServer(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	profile, err := h.service.CreateServer(r.Context(), serverID)
	if err != nil {
		h.writeServiceError(w, r, "create server profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, profile)
}

// handleFlagWords adds words to the server vocabulary, then pushes the
// eligible ones into every member profile. The server result is the response;
// the member propagation piggybacks on the same request.
func (h *Handler) handleFlagWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var words []string
	if err := decodeBody(r, &words); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.FlagServerWords(r.Context(), serverID, words)
	if err != nil {
		h.writeServiceError(w, r, "flag server words", err)
		return
	}
	if _, err := h.service.FlagUserWords(r.Context(), serverID, words); err != nil {
		h.writeServiceError(w, r, "propagate flagged words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// handleUnflagWords removes words from the server vocabulary, then from every
// member profile.
func (h *Handler) handleUnflagWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var words []string
	if err := decodeBody(r, &words); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.UnflagServerWords(r.Context(), serverID, words)
	if err != nil {
		h.writeServiceError(w, r, "unflag server words", err)
		return
	}
	if _, err := h.service.UnflagUserWords(r.Context(), serverID, words); err != nil {
		h.writeServiceError(w, r, "propagate unflagged words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleUpdateServerTotalWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var delta int64
	if err := decodeBody(r, &delta); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.AddServerTotalWords(r.Context(), serverID, delta); err != nil {
		h.writeServiceError(w, r, "update server total words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) handleUpdateServerFlags(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var deltas map[string]int64
	if err := decodeBody(r, &deltas); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.ApplyServerFlagDeltas(r.Context(), serverID, deltas); err != nil {
		h.writeServiceError(w, r, "update server flags", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

// ---- user scope ----

func (h *Handler) handleUserExists(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	exists, err := h.service.UserExists(r.Context(), serverID, userID)
	if err != nil {
		h.writeServiceError(w, r, "check user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, existsResponse{Exists: exists})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	profile, err := h.service.GetUser(r.Context(), serverID, userID)
	if err != nil {
		h.writeServiceError(w, r, "get user profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleUserWordCount(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	word, err := queryWord(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	count, err := h.service.GetUserWordCount(r.Context(), serverID, userID, word)
	if err != nil {
		h.writeServiceError(w, r, "get user word count", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wordCountResponse{Word: word, Count: count})
}

func (h *Handler) handleUserTotalWords(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	total, err := h.service.GetUserTotalWords(r.Context(), serverID, userID)
	if err != nil {
		h.writeServiceError(w, r, "get user total words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, totalWordsResponse{TotalWords: total})
}

func (h *Handler) handleUserTotalFlaggedWords(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	total, err := h.service.GetUserTotalFlaggedWords(r.Context(), serverID, userID)
	if err != nil {
		h.writeServiceError(w, r, "get user total flagged words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, totalFlaggedWordsResponse{TotalFlaggedWords: total})
}

func (h *Handler) handleUserFlaggedWords(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	words, err := h.service.GetUserFlaggedWords(r.Context(), serverID, userID)
	if err != nil {
		h.writeServiceError(w, r, "get user flagged words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, flaggedWordsResponse{Words: words})
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	profile, err := h.service.CreateUser(r.Context(), serverID, userID)
	if err != nil {
		h.writeServiceError(w, r, "create user profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, profile)
}

func (h *Handler) handleCreateUsers(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var userIDs []int64
	if err := decodeBody(r, &userIDs); err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.CreateUsers(r.Context(), serverID, userIDs)
	if err != nil {
		h.writeServiceError(w, r, "create user profiles", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleFlagUserWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var words []string
	if err := decodeBody(r, &words); err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.FlagUserWords(r.Context(), serverID, words)
	if err != nil {
		h.writeServiceError(w, r, "flag user words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleUnflagUserWords(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "serverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var words []string
	if err := decodeBody(r, &words); err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.UnflagUserWords(r.Context(), serverID, words)
	if err != nil {
		h.writeServiceError(w, r, "unflag user words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// handleUpdateUserFlags reports one member's usage deltas: the counts land on
// the server aggregate first, then on the member profile. Each scope filters
// the deltas against its own vocabulary.
func (h *Handler) handleUpdateUserFlags(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var deltas map[string]int64
	if err := decodeBody(r, &deltas); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.ApplyServerFlagDeltas(r.Context(), serverID, deltas); err != nil {
		h.writeServiceError(w, r, "update server flags", err)
		return
	}
	if err := h.service.ApplyUserFlagDeltas(r.Context(), serverID, userID, deltas); err != nil {
		h.writeServiceError(w, r, "update user flags", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) handleUpdateUserTotalWords(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var delta int64
	if err := decodeBody(r, &delta); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.AddServerTotalWords(r.Context(), serverID, delta); err != nil {
		h.writeServiceError(w, r, "update server total words", err)
		return
	}
	if err := h.service.AddUserTotalWords(r.Context(), serverID, userID, delta); err != nil {
		h.writeServiceError(w, r, "update user total words", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	serverID, userID, err := pathPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.RemoveUser(r.Context(), serverID, userID); err != nil {
		h.writeServiceError(w, r, "remove user profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, op+" failed",
		"error", err,
		"request_id", middleware.GetRequestID(ctx),
	)
	httputil.WriteError(w, err)
}
