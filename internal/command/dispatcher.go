// Package command is the named-operation surface the desktop shell talks to. Each
// command decodes a JSON argument object, validates it and calls one service method.
package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"lessonhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var ErrUnknownCommand = errors.New("unknown command")

// ArgumentError means the arguments could not be decoded or failed validation.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// Services are the handlers commands delegate to. Remote-backed services are nil when
// the Supabase configuration is missing.
type Services struct {
	Auth         service.AuthService
	Content      service.ContentService
	Search       service.SearchService
	Progress     service.ProgressService
	Profile      service.ProfileService
	Achievements service.AchievementService
	Runner       service.CodeRunner

	// JWTSecret verifies session_info tokens when Auth is unavailable.
	JWTSecret string
}

type operation struct {
	remote bool
	run    func(ctx context.Context, raw json.RawMessage) (any, error)
}

type Dispatcher struct {
	svc      Services
	ops      map[string]operation
	validate *validator.Validate
	// configErr is returned by every remote-backed command when set.
	configErr error
	logger    zerolog.Logger
}

// NewDispatcher registers the full command catalogue. configErr is the reason the
// Supabase client could not be built, or nil.
func NewDispatcher(svc Services, configErr error, validate *validator.Validate, logger zerolog.Logger) *Dispatcher {
	if validate == nil {
		validate = NewValidator()
	}
	d := &Dispatcher{
		svc:       svc,
		ops:       make(map[string]operation),
		validate:  validate,
		configErr: configErr,
		logger:    logger.With().Str("service", "Dispatcher").Logger(),
	}
	d.registerAuth()
	d.registerContent()
	d.registerProgress()
	return d
}

// NewValidator returns a validator that names fields by their JSON key.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Commands lists the registered command names, sorted.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.ops))
	for name := range d.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configured reports whether remote-backed commands can run.
func (d *Dispatcher) Configured() bool {
	return d.configErr == nil
}

// Dispatch runs the named command. The error is ErrUnknownCommand, an *ArgumentError,
// or the operation's own error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (any, error) {
	op, ok := d.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if op.remote && d.configErr != nil {
		return nil, d.configErr
	}
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		args = json.RawMessage("{}")
	}

	res, err := op.run(ctx, args)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			d.logger.Debug().Str("command", name).Err(err).Msg("Rejected command arguments")
		} else {
			d.logger.Warn().Str("command", name).Err(err).Msg("Command failed")
		}
		return nil, err
	}
	return res, nil
}

func (d *Dispatcher) register(name string, remote bool, run func(ctx context.Context, raw json.RawMessage) (any, error)) {
	if _, dup := d.ops[name]; dup {
		panic("command registered twice: " + name)
	}
	d.ops[name] = operation{remote: remote, run: run}
}

// handle registers a command whose arguments decode into A.
func handle[A any, R any](d *Dispatcher, name string, remote bool, fn func(ctx context.Context, args A) (R, error)) {
	d.register(name, remote, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Msg: "Invalid JSON payload: " + err.Error()}
		}
		if err := d.validate.Struct(&args); err != nil {
			return nil, &ArgumentError{Msg: "Validation failed: " + err.Error()}
		}
		return fn(ctx, args)
	})
}

// alias registers name as another spelling of an existing command.
func (d *Dispatcher) alias(name, target string) {
	op, ok := d.ops[target]
	if !ok {
		panic("alias target not registered: " + target)
	}
	d.register(name, op.remote, op.run)
}

type none struct{}

// unit adapts operations without a result value.
func unit(err error) (*none, error) {
	return nil, err
}
