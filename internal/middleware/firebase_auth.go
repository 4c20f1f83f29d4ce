package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/emilyand-i/AgileWebGroup82/internal/models"
)

// IDTokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAccountFinder looks up the local account linked to a Firebase UID.
type FirebaseAccountFinder interface {
	FindByFirebaseUID(ctx context.Context, uid string) (*models.Account, error)
}

// FirebaseResolver accepts Firebase ID tokens whose identity has already been
// linked to an account through /auth/firebase-login.
func FirebaseResolver(verifier IDTokenVerifier, accounts FirebaseAccountFinder) IdentityResolver {
	return func(ctx context.Context, idToken string) (uint, bool) {
		token, err := verifier.VerifyIDToken(ctx, idToken)
		if err != nil {
			return 0, false
		}
		account, err := accounts.FindByFirebaseUID(ctx, token.UID)
		if err != nil {
			return 0, false
		}
		return account.ID, true
	}
}
