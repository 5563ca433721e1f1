package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/conduit/internal/metrics"
	"github.com/hitoshi/conduit/internal/middleware"
	"github.com/hitoshi/conduit/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Signup は新規ユーザーを登録し、ユーザーとトークンを返す。
	Signup(ctx context.Context, email, username, password string) (*model.User, string, error)
	// Signin は資格情報を検証し、ユーザーとトークンを返す。
	Signin(ctx context.Context, email, password string) (*model.User, string, error)
	// FindByID は指定IDのユーザーを取得する。
	FindByID(ctx context.Context, id string) (*model.User, error)
	// Update はユーザー属性を部分更新する。
	Update(ctx context.Context, userID string, changes model.UpdateUserChanges) (*model.User, error)
}

// TokenIssuer は認証済みリクエストへのトークン再発行インターフェース。
// auth.Serviceの部分集合として定義する。
type TokenIssuer interface {
	IssueToken(userID string, issuedAt time.Time) (string, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
	issuer  TokenIssuer
	metrics metrics.MetricsCollector
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface, issuer TokenIssuer) *UserHandler {
	return &UserHandler{
		service: service,
		issuer:  issuer,
	}
}

// SetMetrics はビジネスメトリクスのコレクターを設定する。
// 未設定の場合は収集しない。
func (h *UserHandler) SetMetrics(collector metrics.MetricsCollector) {
	h.metrics = collector
}

// signupRequest はアカウント登録リクエストのボディ。
type signupRequest struct {
	User struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"user"`
}

// signinRequest はログインリクエストのボディ。
type signinRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// updateUserRequest はユーザー更新リクエストのボディ。
// 省略されたフィールドは変更しない。
type updateUserRequest struct {
	User struct {
		Email    *string `json:"email"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

// userBody は認証済みユーザーのAPIレスポンス。
type userBody struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// userEnvelope はユーザーレスポンスのエンベロープ。
type userEnvelope struct {
	User userBody `json:"user"`
}

// Signup はアカウント登録を処理する。
// POST /api/users
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	user, token, err := h.service.Signup(r.Context(), req.User.Email, req.User.Username, req.User.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSignup()
	}

	writeJSON(w, http.StatusCreated, toUserEnvelope(user, token))
}

// Signin はログインを処理する。
// POST /api/users/login
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	user, token, err := h.service.Signin(r.Context(), req.User.Email, req.User.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordSignin(false)
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSignin(true)
	}

	writeJSON(w, http.StatusOK, toUserEnvelope(user, token))
}

// Me は認証済みユーザー自身の情報を返す。
// GET /api/user
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	user, err := h.service.FindByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.issuer.IssueToken(user.ID, time.Now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserEnvelope(user, token))
}

// Update は認証済みユーザーの属性を部分更新する。
// PUT /api/user
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	changes := model.UpdateUserChanges{
		Email:    req.User.Email,
		Username: req.User.Username,
		Password: req.User.Password,
		Bio:      req.User.Bio,
		Image:    req.User.Image,
	}

	user, err := h.service.Update(r.Context(), userID, changes)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.issuer.IssueToken(user.ID, time.Now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserEnvelope(user, token))
}

// SetupUserRoutes はユーザー管理関連のルーティングを設定したchi.Routerを返す。
// authMiddleware が nil でない場合、GET/PUT /api/user に認証を適用する。
func SetupUserRoutes(service UserServiceInterface, issuer TokenIssuer, authMiddleware func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	h := NewUserHandler(service, issuer)

	r.Post("/api/users", h.Signup)
	r.Post("/api/users/login", h.Signin)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Get("/api/user", h.Me)
		r.Put("/api/user", h.Update)
	})

	return r
}

// toUserEnvelope はmodel.UserとトークンからAPIレスポンスに変換する。
func toUserEnvelope(user *model.User, token string) userEnvelope {
	return userEnvelope{
		User: userBody{
			Email:    user.Email,
			Token:    token,
			Username: user.Username,
			Bio:      user.Bio,
			Image:    user.Image,
		},
	}
}
