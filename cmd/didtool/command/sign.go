package command

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-diddoc/config"
	"github.com/pilacorp/go-diddoc/signature"
)

const (
	// SecretFlagName is the flag name for the hex encoded signing secret.
	SecretFlagName = "secret"

	// MethodFlagName is the flag name for the signing verification method.
	MethodFlagName = "method"

	// MethodFlagShorthand is the flag shorthand for the signing verification method.
	MethodFlagShorthand = "m"

	// PurposeFlagName is the flag name for the proof purpose.
	PurposeFlagName = "purpose"

	// CreatedFlagName is the flag name for stamping the proof creation time.
	CreatedFlagName = "created"

	// NonceFlagName is the flag name for adding a random nonce.
	NonceFlagName = "nonce"

	// DomainFlagName is the flag name for the proof domain.
	DomainFlagName = "domain"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <document>",
		Short: "Sign a DID document",
		Long:  `Sign a DID document with one of its own verification methods and print the signed document`,
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			secretHex, _ := flags.GetString(SecretFlagName)
			method, _ := flags.GetString(MethodFlagName)
			suiteName, _ := flags.GetString(SuiteFlagName)
			purpose, _ := flags.GetString(PurposeFlagName)
			domain, _ := flags.GetString(DomainFlagName)
			created, _ := flags.GetBool(CreatedFlagName)
			nonce, _ := flags.GetBool(NonceFlagName)
			validate, _ := flags.GetBool(ValidateFlagName)

			cfg := config.New(config.Config{
				Suite:          suiteName,
				ProofPurpose:   purpose,
				Domain:         domain,
				AddCreated:     created,
				AddNonce:       nonce,
				ValidateSchema: validate,
			})

			secret, err := hex.DecodeString(strings.TrimPrefix(secretHex, "0x"))
			if err != nil {
				return fmt.Errorf("failed to decode secret: %w", err)
			}

			suite, err := Registry().Get(cfg.Suite)
			if err != nil {
				return err
			}

			opts, err := cfg.SignatureOpts(time.Now())
			if err != nil {
				return err
			}

			doc, err := readDocument(args[0], cfg.ValidateSchema)
			if err != nil {
				return err
			}

			if err := doc.Sign(suite, signature.NewOptions(method, opts...), secret); err != nil {
				return err
			}

			logger.Infof("signed %s with %s", doc.ID(), method)

			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}

	cmd.Flags().String(SecretFlagName, "", "Hex encoded secret key")
	cmd.Flags().StringP(MethodFlagName, MethodFlagShorthand, "", "Verification method id used to sign")
	cmd.Flags().StringP(SuiteFlagName, SuiteFlagShorthand, config.DefaultSuite, SuiteFlagUsage)
	cmd.Flags().String(PurposeFlagName, config.DefaultProofPurpose, "Proof purpose (verification relationship)")
	cmd.Flags().String(DomainFlagName, "", "Proof domain")
	cmd.Flags().Bool(CreatedFlagName, false, "Stamp the proof with the current time")
	cmd.Flags().Bool(NonceFlagName, false, "Add a random nonce to the proof")
	cmd.Flags().Bool(ValidateFlagName, false, ValidateFlagUsage)

	_ = cmd.MarkFlagRequired(SecretFlagName)
	_ = cmd.MarkFlagRequired(MethodFlagName)

	return cmd
}
