package identity

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/client/config"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
)

// Resolver maps the session to the signed-in external subject.
type Resolver struct {
	settings config.Settings
	session  *Session
	provider Provider
	log      logging.Logger
}

func NewResolver(settings config.Settings, session *Session, provider Provider, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.Nop{}
	}
	return &Resolver{settings: settings, session: session, provider: provider, log: log.With("module", "identity")}
}

// Resolve returns the external subject id and true when someone is signed
// in. With no identity provider configured it always reports nobody and
// never calls the provider.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	if r == nil || !r.settings.IdentityConfigured() || r.provider == nil || r.session == nil {
		return "", false
	}

	token := r.session.Token()
	if token == "" {
		return "", false
	}

	subject, err := r.provider.Verify(ctx, token)
	if err != nil {
		r.log.Warn(ctx, "identity token rejected", "error", err)
		return "", false
	}
	return subject, true
}

// Token exposes the raw session token for transports that forward it.
func (r *Resolver) Token() string {
	if r == nil || r.session == nil {
		return ""
	}
	return r.session.Token()
}

// Changes forwards session changes so consumers can re-derive.
func (r *Resolver) Changes() (<-chan struct{}, func()) {
	if r == nil || r.session == nil {
		ch := make(chan struct{})
		return ch, func() {}
	}
	return r.session.Changes()
}
