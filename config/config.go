package config

import (
	"time"

	"github.com/pilacorp/go-diddoc/signature"
	"github.com/pilacorp/go-diddoc/verification"
)

// Default values
const (
	DefaultSuite        = "Ed25519Signature2018"
	DefaultProofPurpose = "assertionMethod"
	DefaultLogLevel     = "INFO"
)

// Config holds the settings used when signing and verifying documents
type Config struct {
	Suite          string
	ProofPurpose   string
	Domain         string
	LogLevel       string
	AddCreated     bool
	AddNonce       bool
	ValidateSchema bool
}

// New creates a new Config instance with the provided values.
// If a value is empty/zero, it will use the default value.
// Pass an empty Config{} to use all defaults.
func New(cfg Config) *Config {
	result := &Config{
		Suite:          DefaultSuite,
		ProofPurpose:   DefaultProofPurpose,
		LogLevel:       DefaultLogLevel,
		Domain:         cfg.Domain,
		AddCreated:     cfg.AddCreated,
		AddNonce:       cfg.AddNonce,
		ValidateSchema: cfg.ValidateSchema,
	}

	if cfg.Suite != "" {
		result.Suite = cfg.Suite
	}
	if cfg.ProofPurpose != "" {
		result.ProofPurpose = cfg.ProofPurpose
	}
	if cfg.LogLevel != "" {
		result.LogLevel = cfg.LogLevel
	}

	return result
}

// SignatureOpts returns the proof options described by c, stamping created
// with now when enabled.
func (c *Config) SignatureOpts(now time.Time) ([]signature.Opt, error) {
	scope, err := verification.ParseMethodScope(c.ProofPurpose)
	if err != nil {
		return nil, err
	}

	opts := []signature.Opt{signature.WithPurpose(scope)}

	if c.AddCreated {
		opts = append(opts, signature.WithCreated(now))
	}
	if c.AddNonce {
		opts = append(opts, signature.WithRandomNonce())
	}
	if c.Domain != "" {
		opts = append(opts, signature.WithDomain(c.Domain))
	}

	return opts, nil
}
