package resolver

import (
	"context"

	"campus/internal/audit"
	authModels "campus/internal/auth/models"
	dErrors "campus/pkg/domain-errors"
)

// RegisterCredential creates a system user and returns a bearer token for it.
func (r *Resolver) RegisterCredential(ctx context.Context, req authModels.CredentialRequest) (_ *authModels.AuthResult, err error) {
	ctx, span := startSpan(ctx, "RegisterCredential")
	defer func() { endSpan(span, err) }()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	taken := r.auth.EmailTaken(ctx, req.Email)
	r.mu.RUnlock()
	if taken {
		return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
	}

	user, err := r.auth.Prepare(req)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	err = r.auth.Save(ctx, user)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	result, err := r.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}
	r.emit(ctx, audit.Event{ActorID: user.ID, Action: audit.ActionCredentialRegistered, EntityKind: "credential", EntityID: user.ID})
	return result, nil
}

// AuthenticateCredential checks an email and password and returns a fresh
// bearer token. Unknown emails and wrong passwords fail with the same error.
func (r *Resolver) AuthenticateCredential(ctx context.Context, req authModels.CredentialRequest) (_ *authModels.AuthResult, err error) {
	ctx, span := startSpan(ctx, "AuthenticateCredential")
	defer func() { endSpan(span, err) }()

	req.Normalize()

	if r.lockout != nil {
		if err := r.lockout.Check(ctx, req.Email); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	user := r.auth.Lookup(ctx, req.Email)
	r.mu.RUnlock()

	if err := r.auth.CheckPassword(ctx, user, req.Password); err != nil {
		if r.lockout != nil {
			if lerr := r.lockout.RecordFailure(ctx, req.Email); lerr != nil {
				r.logger.ErrorContext(ctx, "failed to record login failure", "error", lerr)
			}
		}
		return nil, err
	}
	if r.lockout != nil {
		if err := r.lockout.Clear(ctx, req.Email); err != nil {
			r.logger.ErrorContext(ctx, "failed to clear login lockout", "error", err)
		}
	}
	return r.auth.IssueToken(user)
}

// VerifyToken resolves a bearer token to the user it was issued for, or nil.
func (r *Resolver) VerifyToken(ctx context.Context, token string) *authModels.CurrentUser {
	return r.auth.Verify(ctx, token)
}
