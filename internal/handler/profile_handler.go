package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/conduit/internal/middleware"
	"github.com/hitoshi/conduit/internal/model"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// ShowByUsername はユーザー名で閲覧者相対プロフィールを取得する。
	ShowByUsername(ctx context.Context, username string, viewerID *string) (*model.Profile, error)
	// FollowByUsername は指定ユーザーをフォローし、更新後のプロフィールを返す。
	FollowByUsername(ctx context.Context, viewerID, username string) (*model.Profile, error)
	// UnfollowByUsername は指定ユーザーのフォローを解除し、更新後のプロフィールを返す。
	UnfollowByUsername(ctx context.Context, viewerID, username string) (*model.Profile, error)
}

// ProfileHandler はプロフィールのHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// profileBody はプロフィールのAPIレスポンス。
type profileBody struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// profileEnvelope はプロフィールレスポンスのエンベロープ。
type profileEnvelope struct {
	Profile profileBody `json:"profile"`
}

// Show は閲覧者相対プロフィールを取得する。匿名でも閲覧できる。
// GET /api/profiles/{username}
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	viewerID := middleware.OptionalUserIDFromContext(r.Context())

	profile, err := h.service.ShowByUsername(r.Context(), username, viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileEnvelope(profile))
}

// Follow は指定ユーザーをフォローする。
// POST /api/profiles/{username}/follow
func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request) {
	viewerID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	username := chi.URLParam(r, "username")

	profile, err := h.service.FollowByUsername(r.Context(), viewerID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileEnvelope(profile))
}

// Unfollow は指定ユーザーのフォローを解除する。
// DELETE /api/profiles/{username}/follow
func (h *ProfileHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	viewerID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	username := chi.URLParam(r, "username")

	profile, err := h.service.UnfollowByUsername(r.Context(), viewerID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileEnvelope(profile))
}

// SetupProfileRoutes はプロフィール関連のルーティングを設定したchi.Routerを返す。
func SetupProfileRoutes(service ProfileServiceInterface, optionalAuth, requiredAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	h := NewProfileHandler(service)

	r.Route("/api/profiles/{username}", func(r chi.Router) {
		if optionalAuth != nil {
			r.With(optionalAuth).Get("/", h.Show)
		} else {
			r.Get("/", h.Show)
		}

		r.Group(func(r chi.Router) {
			if requiredAuth != nil {
				r.Use(requiredAuth)
			}
			r.Post("/follow", h.Follow)
			r.Delete("/follow", h.Unfollow)
		})
	})

	return r
}

// toProfileEnvelope はmodel.ProfileからAPIレスポンスに変換する。
func toProfileEnvelope(profile *model.Profile) profileEnvelope {
	return profileEnvelope{
		Profile: profileBody{
			Username:  profile.Username,
			Bio:       profile.Bio,
			Image:     profile.Image,
			Following: profile.Following,
		},
	}
}
