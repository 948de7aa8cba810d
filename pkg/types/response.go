package types

// APIError is one entry of the error envelope shared by every resource.
type APIError struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// Envelope wraps every response: payload on success, errors on failure.
// The shape is identical on both paths; only the populated half differs.
type Envelope struct {
	Payload any        `json:"payload,omitempty"`
	Errors  []APIError `json:"errors"`
}
