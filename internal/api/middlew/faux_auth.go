package middlew

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/repository"
	"api_ledger/pkg/response"

	"github.com/google/uuid"
)

// AuthenticatedUser is the caller resolved by the faux auth middleware.
type AuthenticatedUser struct {
	ID       uuid.UUID
	WalletID uuid.UUID
	Email    string
}

// FauxAuth is a stand-in for real authentication: the earliest-created user
// and their wallet become the authenticated caller for every request.
func FauxAuth(users repository.User, wallets repository.Wallet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := GetLogger(r.Context())

			user, err := users.GetOldest(r.Context())
			if err != nil {
				if errors.Is(err, custom_err.ErrNotFound) {
					response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "No authenticated user available")
					return
				}
				log.Error("failed to resolve authenticated user", slog.String("error", err.Error()))
				response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Error retrieving authenticated user")
				return
			}

			wallet, err := wallets.GetByUserID(r.Context(), user.ID)
			if err != nil {
				if errors.Is(err, custom_err.ErrNotFound) {
					response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User has no wallet")
					return
				}
				log.Error("failed to resolve user wallet", slog.String("error", err.Error()))
				response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Error retrieving authenticated user")
				return
			}

			auth := &AuthenticatedUser{
				ID:       user.ID,
				WalletID: wallet.ID,
				Email:    user.Email,
			}
			ctx := context.WithValue(r.Context(), authUserKey, auth)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAuthenticatedUser(ctx context.Context) (*AuthenticatedUser, bool) {
	auth, ok := ctx.Value(authUserKey).(*AuthenticatedUser)
	return auth, ok
}

// WithAuthenticatedUser injects a caller directly; used by handler tests.
func WithAuthenticatedUser(ctx context.Context, auth *AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserKey, auth)
}
