package service

import (
	"fmt"

	"github.com/fbafinance/directory-api/internal/model"
	"github.com/fbafinance/directory-api/internal/utils"
)

// CompletionError rejects an action because the account's profile is not
// filled in far enough.  Handlers translate it into 403.
type CompletionError struct {
	Have float64
	Want float64
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("Profile is only %.2f%% complete. %.0f%% completion required for this action.",
		e.Have, e.Want)
}

// RequireCompletion is an explicit guard called at the top of handlers that
// need a sufficiently complete profile.  It returns nil when the account's
// completion percentage meets min, otherwise a *CompletionError.
func RequireCompletion(acct model.Account, min float64) error {
	have := utils.CompletionPercent(acct)
	if have < min {
		return &CompletionError{Have: have, Want: min}
	}
	return nil
}
