package app

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"resale/pkg/httperror"

	"github.com/go-playground/validator/v10"
)

func validateRequest(req interface{}, code string) *httperror.Error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return httperror.BadRequest(code, httperror.MsgInvalidRequest, ve.Error())
		}
		return httperror.InternalServerError(code, httperror.MsgSomethingWentWrong, nil)
	}
	return nil
}

// generateOtp returns a 4-digit one-time password.
func generateOtp() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "1234"
	}
	return fmt.Sprintf("%04d", n.Int64())
}
