package structs

// SubmitEmailRequest starts the verification flow for an email address.
// DeviceId is optional; web clients get a fingerprint derived from request
// headers when it is absent.
type SubmitEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Platform string `json:"platform" validate:"omitempty,max=20"`
	DeviceId string `json:"device_id" validate:"omitempty,max=100"`
}

// VerifyEmailRequest confirms a pending token (POST variant; the emailed link
// uses the GET variant with a query parameter).
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required,len=64,hexadecimal"`
}

type CheckTokenRequest struct {
	Token string `json:"token" validate:"required"`
}
