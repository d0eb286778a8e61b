package model

// CodeValidation is the outcome of running a learner's snippet.
type CodeValidation struct {
	Success   bool    `json:"success"`
	Output    string  `json:"output"`
	Error     *string `json:"error"`
	IsCorrect bool    `json:"is_correct"`
}
