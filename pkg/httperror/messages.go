package httperror

// Static message catalog. Every user-visible error resolves to one of these;
// provider or driver detail never leaks into responses.
const (
	MsgInvalidRequest       = "Invalid request"
	MsgNoDataFound          = "No data found"
	MsgNoUserFound          = "User not found"
	MsgUserAlreadyExist     = "User already exist with mobile or email"
	MsgInvalidCategory      = "Please select a valid category"
	MsgInvalidProduct       = "Please select a valid product"
	MsgProductNotFound      = "Product not found"
	MsgProductNotAccepted   = "You are not allowed to access this, Product bid is still in pending state"
	MsgBidNotFound          = "Bid not found"
	MsgBidNotAllowed        = "You are not allowed to edit this bid"
	MsgBiddingStarted       = "Bidding has already started on this product"
	MsgPickupNotEstimated   = "Pick-up date has not been estimated yet"
	MsgProductPaid          = "Product has already been paid out"
	MsgProductNotPicked     = "Product has not been picked up yet"
	MsgPayoutInProgress     = "A payout is already in progress for this product"
	MsgBankDetailMissing    = "Bank or UPI details are missing"
	MsgCannotDeleteCategory = "Category with subcategories can not be deleted"
	MsgInvalidCredential    = "Invalid credential. Please try again."
	MsgUnauthorized         = "Unauthorize User"
	MsgForbidden            = "Forbidden"
	MsgTokenExpired         = "Token expired"
	MsgIncorrectPassword    = "Incorrect current password"
	MsgIncorrectOtp         = "Incorrect otp"
	MsgOtpExpired           = "Otp has been expired"
	MsgOtpSent              = "Otp has been sent to your registered number"
	MsgMobileExist          = "Mobile number already in use"
	MsgBlocked              = "Your account has been blocked, Please contact to admin"
	MsgSomethingWentWrong   = "Something Went wrong"
)
