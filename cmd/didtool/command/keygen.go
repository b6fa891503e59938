package command

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-diddoc/common/jsonmap"
	"github.com/pilacorp/go-diddoc/config"
	"github.com/pilacorp/go-diddoc/did"
	"github.com/pilacorp/go-diddoc/verification"
)

const (
	// IDFlagName is the flag name for the verification method id.
	IDFlagName = "id"

	// IDFlagUsage is the usage text for the id flag.
	IDFlagUsage = "DID URL of the verification method to emit for the new key"
)

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		Long:  `Generate a key pair for a signature suite and print the public key data and hex secret`,
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := cmd.Flags().GetString(SuiteFlagName)
			if err != nil {
				return fmt.Errorf("suite flag not found: %w", err)
			}

			id, err := cmd.Flags().GetString(IDFlagName)
			if err != nil {
				return fmt.Errorf("id flag not found: %w", err)
			}

			suite, err := keySuite(name)
			if err != nil {
				return err
			}

			public, secret, err := suite.GenerateKeyPair()
			if err != nil {
				return fmt.Errorf("failed to generate key pair: %w", err)
			}

			data := suite.KeyData(public)
			out := jsonmap.Object{
				"type":       suite.MethodType().String(),
				data.Field(): data.Value(),
				"secret":     hex.EncodeToString(secret),
			}

			if id != "" {
				methodID, err := did.Parse(id)
				if err != nil {
					return err
				}

				m, err := verification.NewMethod(verification.MethodConfig{
					ID:         methodID,
					Controller: methodID.Base(),
					Type:       suite.MethodType(),
					Data:       data,
				})
				if err != nil {
					return err
				}

				out["verificationMethod"] = m
			}

			logger.Infof("generated %s key pair", suite.Name())

			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringP(SuiteFlagName, SuiteFlagShorthand, config.DefaultSuite, SuiteFlagUsage)
	cmd.Flags().String(IDFlagName, "", IDFlagUsage)

	return cmd
}

func keySuite(name string) (KeySuite, error) {
	suite, err := Registry().Get(name)
	if err != nil {
		return nil, err
	}

	ks, ok := suite.(KeySuite)
	if !ok {
		return nil, fmt.Errorf("suite %s cannot generate keys", name)
	}

	return ks, nil
}
