package dto

// CommandResponseDTO is the envelope of every bridge response.
type CommandResponseDTO struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type CommandListDTO struct {
	Commands []string `json:"commands"`
}

type HealthDTO struct {
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
}
