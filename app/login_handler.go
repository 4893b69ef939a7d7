package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/domain"
	"resale/pkg/httperror"
	"resale/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type LoginHandler struct {
	repository Repository
}

func NewLoginHandler(repository Repository) *LoginHandler {
	return &LoginHandler{
		repository: repository,
	}
}

type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User   domain.User `json:"user"`
	Tokens token.Pair  `json:"tokens"`
}

func (h LoginHandler) Handle(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := validateRequest(req, "auth.login.validation_failed"); err != nil {
		return nil, err
	}

	user, err := h.repository.GetUserByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.BadRequest("auth.login.invalid_credential", httperror.MsgInvalidCredential, nil)
		}
		return nil, httperror.InternalServerError("auth.login.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return finishLogin(user, req.Password, "auth.login")
}

// finishLogin runs the checks shared by user and admin login.
func finishLogin(user domain.User, password, codePrefix string) (*LoginResponse, error) {
	if user.IsReported {
		return nil, httperror.Forbidden(codePrefix+".blocked", httperror.MsgBlocked, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, httperror.BadRequest(codePrefix+".invalid_credential", httperror.MsgInvalidCredential, nil)
	}

	tokens, err := token.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, httperror.InternalServerError(codePrefix+".token_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &LoginResponse{User: user, Tokens: tokens}, nil
}
