package cli

import (
	"context"
	"fmt"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/spf13/cobra"
)

// seedUsernames are the demo accounts; the nth gets password "password<n>".
var seedUsernames = []string{
	"matthew", "andoni", "eli", "emily", "luke",
	"frank", "mario", "heidi", "ivan", "judy",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo accounts",
	Long:  "Creates ten demo accounts named matthew through judy. Accounts that already exist are left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(loadConfig())
		if err != nil {
			return err
		}
		defer db.CloseDB()

		created, err := SeedAccounts(cmd.Context(), repositories.NewPostgresAccountRepository(db.SQL))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d demo accounts\n", created, len(seedUsernames))
		return nil
	},
}

// SeedAccounts creates the demo accounts and reports how many were new.
func SeedAccounts(ctx context.Context, accounts repositories.AccountRepository) (int, error) {
	created := 0
	for i, username := range seedUsernames {
		hash, err := security.HashPassword(fmt.Sprintf("password%d", i+1))
		if err != nil {
			return created, err
		}
		account := &models.Account{
			Username:     username,
			Email:        username + "@plantly.com",
			PasswordHash: hash,
		}
		if err := accounts.Create(ctx, account); err != nil {
			if apperrors.Is(err, apperrors.KindAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("seed %s: %w", username, err)
		}
		created++
	}
	return created, nil
}
