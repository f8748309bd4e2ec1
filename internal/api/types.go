package api

// ConvertResponse is returned by POST /convert on success
type ConvertResponse struct {
	Success   bool   `json:"success"`
	Text      string `json:"text"`
	AudioData string `json:"audio_data"`
	Filename  string `json:"filename"`
}

// ConvertTextRequest is the JSON body of POST /convert-text
type ConvertTextRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// ConvertTextResponse is returned by POST /convert-text on success
type ConvertTextResponse struct {
	Success   bool   `json:"success"`
	AudioData string `json:"audio_data"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
