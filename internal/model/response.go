package model

// ErrorResponse is the error envelope written for every failed request.
type ErrorResponse struct {
	Detail         string `json:"detail"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
	OpenAPI string `json:"openapi"`
}
