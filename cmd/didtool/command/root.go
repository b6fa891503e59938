// Package command holds the didtool cobra commands.
package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/spf13/cobra"

	"github.com/pilacorp/go-diddoc/config"
	"github.com/pilacorp/go-diddoc/document"
	"github.com/pilacorp/go-diddoc/signature"
	"github.com/pilacorp/go-diddoc/suite/ecdsasecp256k1signature2019"
	"github.com/pilacorp/go-diddoc/suite/ed25519signature2018"
	"github.com/pilacorp/go-diddoc/suite/jsonwebsignature2020"
	"github.com/pilacorp/go-diddoc/verifiable"
	"github.com/pilacorp/go-diddoc/verification"
)

const (
	// LogLevelFlagName is the flag name for the log level.
	LogLevelFlagName = "log-level"

	// LogLevelFlagUsage is the usage text for the log level flag.
	LogLevelFlagUsage = "Logging level: DEBUG, INFO, WARNING, ERROR or CRITICAL"

	// SuiteFlagName is the flag name for the signature suite.
	SuiteFlagName = "suite"

	// SuiteFlagShorthand is the flag shorthand for the signature suite.
	SuiteFlagShorthand = "s"

	// SuiteFlagUsage is the usage text for the suite flag.
	SuiteFlagUsage = "Signature suite name"

	// ValidateFlagName is the flag name for schema validation of input documents.
	ValidateFlagName = "validate"

	// ValidateFlagUsage is the usage text for the validate flag.
	ValidateFlagUsage = "Validate input documents against the DID document schema"
)

var logger = log.New("diddoc/didtool")

var logModules = []string{
	"diddoc/didtool",
	"diddoc/document",
	"diddoc/signature",
	"diddoc/verifiable",
}

// KeySuite is a signature suite that can mint key pairs for its method type.
type KeySuite interface {
	signature.Suite
	MethodType() verification.MethodType
	KeyData(public []byte) verification.MethodData
	GenerateKeyPair() (public, secret []byte, err error)
}

// Suites returns every suite the tool supports.
func Suites() []KeySuite {
	return []KeySuite{
		ed25519signature2018.New(),
		ecdsasecp256k1signature2019.New(),
		jsonwebsignature2020.New(),
	}
}

// Registry returns a registry holding Suites.
func Registry() *signature.Registry {
	registry := signature.NewRegistry()
	for _, s := range Suites() {
		registry.Register(s)
	}

	return registry
}

// NewRoot returns the didtool root command.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "didtool",
		Short:        "Work with DID documents",
		Long:         `Generate keys, resolve verification methods, sign and verify DID documents`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := cmd.Flags().GetString(LogLevelFlagName)
			if err != nil {
				return fmt.Errorf("log level flag not found: %w", err)
			}

			return setLogLevel(level)
		},
	}

	root.PersistentFlags().String(LogLevelFlagName, config.DefaultLogLevel, LogLevelFlagUsage)

	root.AddCommand(keygenCmd(), resolveCmd(), signCmd(), verifyCmd())

	return root
}

func setLogLevel(value string) error {
	level, err := log.ParseLevel(value)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", value, err)
	}

	for _, module := range logModules {
		log.SetLevel(module, level)
	}

	return nil
}

func readDocument(path string, validate bool) (*verifiable.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var opts []document.ParseOpt
	if validate {
		opts = append(opts, document.WithSchemaValidation())
	}

	return verifiable.Parse(raw, opts...)
}

func writeJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(raw))

	return err
}
