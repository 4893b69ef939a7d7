package domain

import "time"

type User struct {
	ID       string   `db:"id" json:"id"`
	Name     string   `db:"name" json:"name"`
	Email    string   `db:"email" json:"email"`
	Mobile   string   `db:"mobile" json:"mobile"`
	Role     UserRole `db:"role" json:"role"`
	Password string   `db:"password" json:"-"`

	TempMobile *string `db:"temp_mobile" json:"-"`
	ProfileURI *string `db:"profile_uri" json:"profileUri"`

	IdentityProofType     int    `db:"identity_proof_type" json:"identityProofType"`
	IdentityProofNumber   string `db:"identity_proof_number" json:"identityProofNumber"`
	IdentityProofImageURI string `db:"identity_proof_image_uri" json:"identityProofImageUri"`

	AddressLine1 string  `db:"address_line1" json:"addressLine1"`
	Landmark     *string `db:"landmark" json:"landmark"`
	City         string  `db:"city" json:"city"`
	State        string  `db:"state" json:"state"`
	ZipCode      string  `db:"zip_code" json:"zipCode"`
	Country      string  `db:"country" json:"country"`

	BankAccountNumber *string `db:"bank_account_number" json:"bankAccountNumber"`
	IFSCCode          *string `db:"ifsc_code" json:"ifscCode"`
	AccountHolderName *string `db:"account_holder_name" json:"accountHolderName"`
	UPI               *string `db:"upi" json:"upi"`
	CustomerID        *string `db:"customer_id" json:"-"`
	FundAccountID     *string `db:"fund_account_id" json:"-"`

	IsReported         bool    `db:"is_reported" json:"isReported"`
	ReasonForReporting *string `db:"reason_for_reporting" json:"reasonForReporting"`

	Otp                   *string    `db:"otp" json:"-"`
	OtpExpiry             *time.Time `db:"otp_expiry" json:"-"`
	UpdateMobileOtp       *string    `db:"update_mobile_otp" json:"-"`
	UpdateMobileOtpExpiry *time.Time `db:"update_mobile_otp_expiry" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UserSummary is the projection embedded in product, bid and notification
// reads. Never carries credentials or OTP state.
type UserSummary struct {
	ID         string   `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	Email      string   `db:"email" json:"email"`
	Mobile     string   `db:"mobile" json:"mobile"`
	Role       UserRole `db:"role" json:"role"`
	ProfileURI *string  `db:"profile_uri" json:"profileUri"`
}

// FullAddress joins the address fields the way shipping labels expect.
func (u *User) FullAddress() string {
	addr := u.AddressLine1
	if u.Landmark != nil && *u.Landmark != "" {
		addr += " " + *u.Landmark
	}
	return addr + " " + u.City + " " + u.State + " " + u.Country + " " + u.ZipCode
}

// HasFundAccount reports whether a payout destination is registered.
func (u *User) HasFundAccount() bool {
	return u.FundAccountID != nil && *u.FundAccountID != ""
}
