package application

import (
	"context"
	"errors"
	"strings"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
)

// ResultKind tags every outcome that crosses into the view layer.
type ResultKind string

const (
	KindOK         ResultKind = "ok"
	KindValidation ResultKind = "validation"
	KindNotFound   ResultKind = "not_found"
	KindConnect    ResultKind = "connect"
	KindInit       ResultKind = "init"
	KindNoSession  ResultKind = "no_session"
	KindInternal   ResultKind = "internal"
)

// Result is the displayable outcome of an operation.
type Result struct {
	Kind    ResultKind `json:"kind"`
	Code    string     `json:"code,omitempty"`
	Detail  string     `json:"detail,omitempty"`
	Message string     `json:"message"`
}

// OK reports whether the result is a success.
func (r Result) OK() bool { return r.Kind == KindOK }

// ResultOf converts err to a localized Result. A nil error is KindOK.
func ResultOf(ctx context.Context, err error) Result {
	ctx = withDefaultLocale(ctx)
	if err == nil {
		return Result{Kind: KindOK, Message: i18n.T(ctx, "result.ok")}
	}

	var connErr *domain.ConnectError
	var initErr *domain.InitError
	switch {
	case errors.As(err, &connErr):
		return Result{
			Kind:   KindConnect,
			Code:   string(connErr.Reason),
			Detail: connErr.Diagnostic(),
			Message: i18n.T(ctx, "result.connect", i18n.M{
				"servers": strings.Join(connErr.Servers, ","),
				"detail":  connErr.Diagnostic(),
			}),
		}
	case errors.As(err, &initErr):
		return Result{
			Kind:    KindInit,
			Detail:  initErr.Err.Error(),
			Message: i18n.T(ctx, "result.init", i18n.M{"detail": initErr.Err.Error()}),
		}
	case errors.Is(err, domain.ErrValidation):
		detail := validationDetail(err)
		return Result{
			Kind:    KindValidation,
			Code:    validationCode(err),
			Detail:  detail,
			Message: i18n.T(ctx, "result.validation", i18n.M{"detail": detail}),
		}
	case errors.Is(err, domain.ErrNotFound):
		var nf *NotFoundError
		name := ""
		if errors.As(err, &nf) {
			name = nf.Name
		}
		return Result{
			Kind:    KindNotFound,
			Detail:  name,
			Message: i18n.T(ctx, "result.not_found", i18n.M{"detail": name}),
		}
	case errors.Is(err, domain.ErrNoSession):
		return Result{Kind: KindNoSession, Message: i18n.T(ctx, "result.no_session")}
	default:
		return Result{
			Kind:    KindInternal,
			Detail:  err.Error(),
			Message: i18n.T(ctx, "result.internal", i18n.M{"detail": err.Error()}),
		}
	}
}

// NotFoundError names the missing profile.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return "profile " + e.Name + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == domain.ErrNotFound }

func validationCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return "empty_name"
	case errors.Is(err, domain.ErrEmptyServers):
		return "empty_servers"
	case errors.Is(err, domain.ErrInvalidServer):
		return "invalid_server"
	case errors.Is(err, domain.ErrMalformedCredentials):
		return "malformed_credentials"
	default:
		return "invalid"
	}
}

func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}

func withDefaultLocale(ctx context.Context) context.Context {
	if ctxi18n.Locale(ctx) != nil {
		return ctx
	}
	if lctx, err := ctxi18n.WithLocale(ctx, "en"); err == nil {
		return lctx
	}
	return ctx
}
