package app

import (
	"context"

	"resale/internal/middleware"
	"resale/pkg/httperror"
	"resale/pkg/razorpay"
)

type UpdateFundHandler struct {
	repository Repository
	gateway    PaymentGateway
}

func NewUpdateFundHandler(repository Repository, gateway PaymentGateway) *UpdateFundHandler {
	return &UpdateFundHandler{
		repository: repository,
		gateway:    gateway,
	}
}

type UpdateFundRequest struct {
	BankAccountNumber string `json:"bankAccountNumber" validate:"required_without=UPI"`
	IFSCCode          string `json:"ifscCode" validate:"required_with=BankAccountNumber"`
	AccountHolderName string `json:"accountHolderName" validate:"required_with=BankAccountNumber"`
	UPI               string `json:"upi"`
}

type UpdateFundResponse struct {
	Message string `json:"message"`
}

// Handle registers a payout destination. A fresh fund account is created at
// the gateway each time; payouts always use the latest one on record.
func (h UpdateFundHandler) Handle(ctx context.Context, req *UpdateFundRequest) (*UpdateFundResponse, error) {
	if err := validateRequest(req, "user.update_fund.validation_failed"); err != nil {
		return nil, err
	}

	userID := middleware.UserID(ctx)

	user, err := h.repository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, httperror.NotFound("user.update_fund.no_user", httperror.MsgNoUserFound, nil)
	}

	contactID := stringValue(user.CustomerID)
	if contactID == "" {
		contact, err := h.gateway.CreateContact(ctx, razorpay.ContactParams{
			Name:   user.Name,
			Email:  user.Email,
			Mobile: user.Mobile,
		})
		if err != nil {
			return nil, httperror.InternalServerError("user.update_fund.gateway_contact_failed", httperror.MsgSomethingWentWrong, nil)
		}
		contactID = contact.ID
	}

	fund, err := h.gateway.CreateFundAccount(ctx, razorpay.FundAccountParams{
		ContactID:         contactID,
		UPI:               req.UPI,
		AccountHolderName: req.AccountHolderName,
		IFSCCode:          req.IFSCCode,
		BankAccountNumber: req.BankAccountNumber,
	})
	if err != nil {
		return nil, httperror.InternalServerError("user.update_fund.gateway_fund_failed", httperror.MsgSomethingWentWrong, nil)
	}

	err = h.repository.UpdateUserFunds(ctx, userID,
		req.BankAccountNumber, req.IFSCCode, req.AccountHolderName, req.UPI, fund.ID)
	if err != nil {
		return nil, httperror.InternalServerError("user.update_fund.update_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &UpdateFundResponse{Message: "Fund details updated"}, nil
}
