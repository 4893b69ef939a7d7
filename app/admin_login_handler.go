package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/domain"
	"resale/pkg/httperror"
)

type AdminLoginHandler struct {
	repository Repository
}

func NewAdminLoginHandler(repository Repository) *AdminLoginHandler {
	return &AdminLoginHandler{
		repository: repository,
	}
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h AdminLoginHandler) Handle(ctx context.Context, req *AdminLoginRequest) (*LoginResponse, error) {
	if err := validateRequest(req, "auth.admin_login.validation_failed"); err != nil {
		return nil, err
	}

	user, err := h.repository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.BadRequest("auth.admin_login.invalid_credential", httperror.MsgInvalidCredential, nil)
		}
		return nil, httperror.InternalServerError("auth.admin_login.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if user.Role != domain.RoleAdmin {
		return nil, httperror.BadRequest("auth.admin_login.invalid_credential", httperror.MsgInvalidCredential, nil)
	}

	return finishLogin(user, req.Password, "auth.admin_login")
}
