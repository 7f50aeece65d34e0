package user

import (
	"encoding/json"
	"mime"
	"net/http"
	"time"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type Handler struct {
	service      UserService
	cookieDomain string
}

func NewHandler(service UserService, cookieDomain string) *Handler {
	return &Handler{service: service, cookieDomain: cookieDomain}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := validation.DecodeJSON(r, registerSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.Register(r.Context(), dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

// Login accepts a JSON body or an OAuth2 password-style form.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := decodeLogin(r, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	config.JSON(w, http.StatusOK, token)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.RefreshToken(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	config.JSON(w, http.StatusOK, token)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Me(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) LinkCalendar(w http.ResponseWriter, r *http.Request) {
	var dto LinkCalendarDTO
	if err := validation.DecodeJSON(r, linkCalendarSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.LinkCalendar(r.Context(), dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token *TokenResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token.AccessToken,
		Path:     "/",
		Domain:   h.cookieDomain,
		Expires:  time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func decodeLogin(r *http.Request, dto *LoginDTO) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" && mediaType != "multipart/form-data" {
		return validation.DecodeJSON(r, loginSchema, dto)
	}

	if err := r.ParseForm(); err != nil {
		return apperror.Invalid("body", nil, "could not be read")
	}
	raw, err := json.Marshal(map[string]string{
		"username": r.PostFormValue("username"),
		"password": r.PostFormValue("password"),
	})
	if err != nil {
		return err
	}
	return validation.Decode(raw, loginSchema, dto)
}
