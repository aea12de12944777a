package structs

type FeedbackRequest struct {
	Token       string `json:"token" validate:"required"`
	Line        string `json:"line" validate:"required,max=100"`
	Destination string `json:"destination" validate:"required,max=100"`
	GeoLocation string `json:"geo_location" validate:"required,max=100"`
}

// BadJsonReport carries a client-side payload that failed to parse, for
// diagnostics. The target names the screen or endpoint the payload was meant for.
type BadJsonReport struct {
	Token  string `json:"token" validate:"required"`
	Json   string `json:"json" validate:"required"`
	Target string `json:"target" validate:"required,max=100"`
}
