package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"lessonhub/internal/api/v1/dto"
	"lessonhub/internal/command"

	"github.com/rs/zerolog"
)

// maxArgsBytes bounds a command's argument object. Avatar uploads are the largest.
const maxArgsBytes = 8 << 20

// CommandHandler exposes the command catalogue over HTTP.
type CommandHandler struct {
	dispatcher *command.Dispatcher
	logger     zerolog.Logger
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(dispatcher *command.Dispatcher, logger zerolog.Logger) *CommandHandler {
	return &CommandHandler{
		dispatcher: dispatcher,
		logger:     logger.With().Str("handler", "CommandHandler").Logger(),
	}
}

// RegisterRoutes mounts command routes
func (h *CommandHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/commands", authMw(http.HandlerFunc(h.listCommands)))
	mux.Handle("/commands/", authMw(http.HandlerFunc(h.runCommand)))
}

// listCommands godoc
// @Summary List commands
// @Description Returns the names of all registered commands.
// @Tags commands
// @Produce json
// @Success 200 {object} dto.CommandListDTO
// @Router /commands [get]
func (h *CommandHandler) listCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, dto.CommandListDTO{Commands: h.dispatcher.Commands()})
}

// runCommand godoc
// @Summary Run a command
// @Description Runs the named command with the JSON argument object in the body.
// @Tags commands
// @Accept json
// @Produce json
// @Param name path string true "Command name"
// @Success 200 {object} dto.CommandResponseDTO
// @Failure 400 {object} dto.CommandResponseDTO "Invalid arguments"
// @Failure 404 {object} dto.CommandResponseDTO "Unknown command"
// @Failure 500 {object} dto.CommandResponseDTO "Command failed"
// @Router /commands/{name} [post]
func (h *CommandHandler) runCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/commands/")
	if name == "" || strings.Contains(name, "/") {
		writeJSON(w, http.StatusNotFound, dto.CommandResponseDTO{Error: "unknown command: " + name})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.CommandResponseDTO{Error: "Invalid JSON payload: " + err.Error()})
		return
	}

	data, err := h.dispatcher.Dispatch(r.Context(), name, body)
	if err != nil {
		writeJSON(w, statusFor(err), dto.CommandResponseDTO{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.CommandResponseDTO{OK: true, Data: data})
}

func statusFor(err error) int {
	var argErr *command.ArgumentError
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		return http.StatusNotFound
	case errors.As(err, &argErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
