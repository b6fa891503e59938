package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-diddoc/verification"
)

const (
	// ScopeFlagName is the flag name for the method scope.
	ScopeFlagName = "scope"

	// ScopeFlagUsage is the usage text for the scope flag.
	ScopeFlagUsage = "Verification relationship to search"
)

type resolved struct {
	Index  int                  `json:"index"`
	Scope  string               `json:"scope"`
	Method *verification.Method `json:"method"`
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <document> <query>",
		Short: "Resolve a verification method",
		Long:  `Resolve a verification method of a document by fragment, DID URL or position`,
		Args:  cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			scopeName, err := cmd.Flags().GetString(ScopeFlagName)
			if err != nil {
				return fmt.Errorf("scope flag not found: %w", err)
			}

			validate, err := cmd.Flags().GetBool(ValidateFlagName)
			if err != nil {
				return fmt.Errorf("validate flag not found: %w", err)
			}

			scope, err := verification.ParseMethodScope(scopeName)
			if err != nil {
				return err
			}

			doc, err := readDocument(args[0], validate)
			if err != nil {
				return err
			}

			wrap, err := doc.TryResolve(parseQuery(args[1]).In(scope))
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), resolved{
				Index:  wrap.Index(),
				Scope:  wrap.Scope().String(),
				Method: wrap.Method(),
			})
		},
	}

	cmd.Flags().String(ScopeFlagName, verification.VerificationMethod.String(), ScopeFlagUsage)
	cmd.Flags().Bool(ValidateFlagName, false, ValidateFlagUsage)

	return cmd
}

// parseQuery treats a bare number as a position and anything else as an ident.
func parseQuery(s string) verification.MethodQuery {
	if pos, err := strconv.Atoi(s); err == nil && pos >= 0 {
		return verification.QueryAt(pos)
	}

	return verification.Query(s)
}
