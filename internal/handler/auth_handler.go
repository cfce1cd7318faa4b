package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go-bookstore/internal/service"
	"go-bookstore/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Token exchanges form-encoded username and password for an access token.
// The body is the bare OAuth2 token response, not the envelope.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		writeError(w, r, apierror.New("BAD_REQUEST", "invalid form body", "", http.StatusBadRequest))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	var missing []string
	if strings.TrimSpace(username) == "" {
		missing = append(missing, "username: field required")
	}
	if password == "" {
		missing = append(missing, "password: field required")
	}
	if len(missing) > 0 {
		writeError(w, r, apierror.Validation(strings.Join(missing, "; ")))
		return
	}

	resp, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
