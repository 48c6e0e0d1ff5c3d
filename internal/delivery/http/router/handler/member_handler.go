// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"board/internal/delivery/http/response"
	"board/internal/domain/entity"
	"board/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SignupRequest is the payload for member registration.
type SignupRequest struct {
	Email    string `json:"email" validate:"required"`
	NickName string `json:"nickName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenRequest is the payload for credential login.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EditRequest is the payload for updating a member record.
type EditRequest struct {
	ID          int    `json:"id" validate:"required"`
	NickName    string `json:"nickName" validate:"required"`
	Password    string `json:"password"`
	OldPassword string `json:"oldPassword" validate:"required"`
}

// DeleteRequest carries the password check for member removal.
type DeleteRequest struct {
	Password string `json:"password" validate:"required"`
}

// MemberResponse is the public view of a member record. It never carries
// the password hash.
type MemberResponse struct {
	ID       int       `json:"id"`
	Email    string    `json:"email"`
	NickName string    `json:"nickName"`
	Inserted time.Time `json:"inserted"`
}

func toMemberResponse(m *entity.Member) MemberResponse {
	return MemberResponse{
		ID:       m.ID,
		Email:    m.Email,
		NickName: m.NickName,
		Inserted: m.Inserted,
	}
}

// MemberHandler holds dependencies for member-related handlers.
type MemberHandler struct {
	uc     usecase.MemberUsecase
	logger *slog.Logger
}

// NewMemberHandler is the constructor for MemberHandler, injected by Fx.
func NewMemberHandler(uc usecase.MemberUsecase, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		uc:     uc,
		logger: logger,
	}
}

// Signup handles the member registration request.
func (h *MemberHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing required signup fields")
	}

	member := &entity.Member{
		Email:    req.Email,
		NickName: req.NickName,
		Password: req.Password,
	}
	if !h.uc.Validate(member) {
		return response.BadRequest(c, "VALIDATION_FAILED", "Signup fields failed validation")
	}

	ctx := c.Request().Context()

	existing, err := h.uc.GetByEmail(ctx, req.Email)
	if err != nil {
		return errors.WithStack(err)
	}
	if existing != nil {
		return response.Conflict(c, "EMAIL_ALREADY_EXISTS", "Email is already registered")
	}

	existing, err = h.uc.GetByNickName(ctx, req.NickName)
	if err != nil {
		return errors.WithStack(err)
	}
	if existing != nil {
		return response.Conflict(c, "NICKNAME_ALREADY_EXISTS", "Nickname is already taken")
	}

	if err := h.uc.Add(ctx, member); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toMemberResponse(member), "Member registered successfully")
}

// Check reports whether an email or nickname is still available.
func (h *MemberHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()
	result := map[string]bool{}

	if email := c.QueryParam("email"); email != "" {
		member, err := h.uc.GetByEmail(ctx, email)
		if err != nil {
			return errors.WithStack(err)
		}
		result["email"] = member == nil
	}

	if nickName := c.QueryParam("nickName"); nickName != "" {
		member, err := h.uc.GetByNickName(ctx, nickName)
		if err != nil {
			return errors.WithStack(err)
		}
		result["nickName"] = member == nil
	}

	if len(result) == 0 {
		return response.BadRequest(c, "INVALID_INPUT", "Provide an email or nickName query parameter")
	}

	return response.Success(c, http.StatusOK, result, "Availability checked")
}

// Token exchanges valid credentials for a signed token.
func (h *MemberHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Email and password are required")
	}

	token, err := h.uc.GetToken(c.Request().Context(), &entity.Member{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if token == nil {
		// Unknown email and wrong password are deliberately indistinguishable.
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	return response.Success(c, http.StatusOK, token, "Login successful")
}

// List returns every member without password hashes.
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		views = append(views, toMemberResponse(m))
	}

	return response.Success(c, http.StatusOK, views, "Members retrieved")
}

// Get returns a single member by id.
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Member id must be an integer")
	}

	member, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if member == nil {
		return response.NotFound(c, "MEMBER_NOT_FOUND", "Member does not exist")
	}

	return response.Success(c, http.StatusOK, toMemberResponse(member), "Member retrieved")
}

// Edit updates a member's nickname and, optionally, password. The caller
// must prove knowledge of the current password.
func (h *MemberHandler) Edit(c echo.Context) error {
	var req EditRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid edit input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing required edit fields")
	}

	ctx := c.Request().Context()
	member := &entity.Member{
		ID:          req.ID,
		NickName:    req.NickName,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	}

	allowed, err := h.uc.HasAccessModify(ctx, member)
	if err != nil {
		return errors.WithStack(err)
	}
	if !allowed {
		return response.Forbidden(c, "FORBIDDEN", "Current password check failed")
	}

	if err := h.uc.Modify(ctx, member); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Member updated successfully")
}

// Delete removes a member after a password check.
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Member id must be an integer")
	}

	var req DeleteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid delete input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Password is required")
	}

	ctx := c.Request().Context()

	allowed, err := h.uc.HasAccess(ctx, &entity.Member{ID: id, Password: req.Password})
	if err != nil {
		return errors.WithStack(err)
	}
	if !allowed {
		return response.Forbidden(c, "FORBIDDEN", "Password check failed")
	}

	if err := h.uc.Remove(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Member removed successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
