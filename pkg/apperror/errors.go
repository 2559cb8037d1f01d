package apperror

// Validation
var (
	ErrZeroAmount     = New(KindValidation, "zero_amount", "amount must not be zero")
	ErrInvalidAmount  = New(KindValidation, "invalid_amount", "amount must be positive")
	ErrBelowMinimum   = New(KindValidation, "below_minimum", "amount is below the minimum payout")
	ErrMissingField   = New(KindValidation, "missing_field", "required field is missing")
	ErrInvalidInput   = New(KindValidation, "invalid_input", "invalid input")
	ErrInvalidAction  = New(KindValidation, "invalid_action", "unknown action")
	ErrNotPurchasable = New(KindValidation, "not_purchasable", "content is not sold individually")
)

// State
var (
	ErrInvalidState        = New(KindState, "invalid_state", "operation not allowed in current state")
	ErrAlreadyOwned        = New(KindState, "already_owned", "content already unlocked")
	ErrSelfPurchase        = New(KindState, "self_purchase", "cannot purchase your own content")
	ErrInsufficientBalance = New(KindState, "insufficient_balance", "insufficient available earnings")
	ErrStatementsDisabled  = New(KindState, "statements_disabled", "statement storage is not configured")
)

// Authorization
var (
	ErrNotApproved      = New(KindAuthorization, "verification_not_approved", "creator verification is not approved")
	ErrForbidden        = New(KindAuthorization, "forbidden", "forbidden")
	ErrInvalidSignature = New(KindAuthorization, "invalid_signature", "invalid webhook signature")
)

// Not found
var (
	ErrNotFound            = New(KindNotFound, "not_found", "not found")
	ErrContentNotFound     = New(KindNotFound, "content_not_found", "content not found")
	ErrPayoutNotFound      = New(KindNotFound, "payout_not_found", "payout not found")
	ErrTransactionNotFound = New(KindNotFound, "transaction_not_found", "transaction not found")
	ErrCreatorNotFound     = New(KindNotFound, "creator_not_found", "creator not found")
)

// Conflict
var (
	ErrDuplicateRequest = New(KindConflict, "duplicate_payout_request", "a payout request is already in progress")
	ErrConcurrentUpdate = New(KindConflict, "concurrent_update", "resource was modified by another request")
)
