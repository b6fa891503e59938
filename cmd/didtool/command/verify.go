package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <document>",
		Short: "Verify the proof of a DID document",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			validate, err := cmd.Flags().GetBool(ValidateFlagName)
			if err != nil {
				return fmt.Errorf("validate flag not found: %w", err)
			}

			doc, err := readDocument(args[0], validate)
			if err != nil {
				return err
			}

			if err := doc.VerifyWith(Registry()); err != nil {
				logger.Errorf("verification of %s failed: %s", doc.ID(), err)
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "valid %s proof by %s\n", doc.Proof().Type(), doc.Proof().VerificationMethod)

			return err
		},
	}

	cmd.Flags().Bool(ValidateFlagName, false, ValidateFlagUsage)

	return cmd
}
