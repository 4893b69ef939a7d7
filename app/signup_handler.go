package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resale/domain"
	"resale/pkg/config"
	"resale/pkg/events"
	"resale/pkg/httperror"
	"resale/pkg/razorpay"
	"resale/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type SignupHandler struct {
	repository     Repository
	gateway        PaymentGateway
	eventPublisher events.Publisher
}

func NewSignupHandler(repository Repository, gateway PaymentGateway, eventPublisher events.Publisher) *SignupHandler {
	return &SignupHandler{
		repository:     repository,
		gateway:        gateway,
		eventPublisher: eventPublisher,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8"`

	IdentityProofType     int    `json:"identityProofType" validate:"required"`
	IdentityProofNumber   string `json:"identityProofNumber" validate:"required"`
	IdentityProofImageURI string `json:"identityProofImageUri" validate:"required"`

	AddressLine1 string  `json:"addressLine1" validate:"required"`
	Landmark     *string `json:"landmark"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required"`
	ZipCode      string  `json:"zipCode" validate:"required"`
	Country      string  `json:"country" validate:"required"`

	BankAccountNumber *string `json:"bankAccountNumber"`
	IFSCCode          *string `json:"ifscCode"`
	AccountHolderName *string `json:"accountHolderName"`
	UPI               *string `json:"upi"`
}

type SignupResponse struct {
	User   domain.User `json:"user"`
	Tokens token.Pair  `json:"tokens"`
}

func (h SignupHandler) Handle(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	if err := validateRequest(req, "auth.signup.validation_failed"); err != nil {
		return nil, err
	}

	if _, err := h.repository.GetUserByEmailOrMobile(ctx, req.Email, req.Mobile); err == nil {
		return nil, httperror.Conflict("auth.signup.user_exists", httperror.MsgUserAlreadyExist, nil)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.InternalServerError("auth.signup.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperror.InternalServerError("auth.signup.hash_failed", httperror.MsgSomethingWentWrong, nil)
	}

	contact, err := h.gateway.CreateContact(ctx, razorpay.ContactParams{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
	})
	if err != nil {
		return nil, httperror.InternalServerError("auth.signup.gateway_contact_failed", httperror.MsgSomethingWentWrong, nil)
	}

	user := domain.User{
		Name:                  req.Name,
		Email:                 req.Email,
		Mobile:                req.Mobile,
		Role:                  domain.RoleUser,
		Password:              string(hash),
		IdentityProofType:     req.IdentityProofType,
		IdentityProofNumber:   req.IdentityProofNumber,
		IdentityProofImageURI: req.IdentityProofImageURI,
		AddressLine1:          req.AddressLine1,
		Landmark:              req.Landmark,
		City:                  req.City,
		State:                 req.State,
		ZipCode:               req.ZipCode,
		Country:               req.Country,
		BankAccountNumber:     req.BankAccountNumber,
		IFSCCode:              req.IFSCCode,
		AccountHolderName:     req.AccountHolderName,
		UPI:                   req.UPI,
		CustomerID:            &contact.ID,
	}

	if hasFundDetails(req) {
		fund, err := h.gateway.CreateFundAccount(ctx, razorpay.FundAccountParams{
			ContactID:         contact.ID,
			UPI:               stringValue(req.UPI),
			AccountHolderName: stringValue(req.AccountHolderName),
			IFSCCode:          stringValue(req.IFSCCode),
			BankAccountNumber: stringValue(req.BankAccountNumber),
		})
		if err != nil {
			return nil, httperror.InternalServerError("auth.signup.gateway_fund_failed", httperror.MsgSomethingWentWrong, nil)
		}
		user.FundAccountID = &fund.ID
	}

	otp := generateOtp()
	expiry := time.Now().Add(time.Duration(config.Read().OtpExpiryMinutes) * time.Minute)
	user.Otp = &otp
	user.OtpExpiry = &expiry

	created, err := h.repository.CreateUser(ctx, user)
	if err != nil {
		return nil, httperror.InternalServerError("auth.signup.create_failed", httperror.MsgSomethingWentWrong, nil)
	}

	publishEvent(ctx, h.eventPublisher, events.AuthExchange, events.OtpRequestedEvent, events.OtpRequestedPayload{
		UserID:      created.ID,
		Mobile:      created.Mobile,
		Otp:         otp,
		Purpose:     "signup",
		RequestedAt: time.Now().UTC(),
	})

	tokens, err := token.IssuePair(created.ID, created.Role)
	if err != nil {
		return nil, httperror.InternalServerError("auth.signup.token_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &SignupResponse{User: created, Tokens: tokens}, nil
}

func hasFundDetails(req *SignupRequest) bool {
	if stringValue(req.UPI) != "" {
		return true
	}
	return stringValue(req.BankAccountNumber) != "" &&
		stringValue(req.IFSCCode) != "" &&
		stringValue(req.AccountHolderName) != ""
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
