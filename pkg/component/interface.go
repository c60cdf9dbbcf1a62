// Package component provides backing-store clients and their shared contracts.
package component

import "github.com/spf13/pflag"

// ConfigOptions defines the standard interface for all component options.
// All component configuration types (PostgreSQL, Redis, etc.) implement this
// interface to ensure consistent behavior across the system.
//
// This interface provides a unified contract for:
//   - Completing configuration with default values
//   - Validating configuration parameters
//   - Adding command-line flags
type ConfigOptions interface {
	// Complete fills in any fields not set that are required to have valid data.
	// This method should set default values for optional fields and derive
	// computed fields from other configuration.
	Complete() error

	// Validate validates the options and returns an error if any option is invalid.
	// Validate should be called after Complete() to ensure all fields are
	// properly set.
	Validate() error

	// AddFlags adds flags for the options to the specified FlagSet.
	// The namePrefix parameter is prepended to flag names to avoid conflicts
	// (e.g., "postgres." results in flags like "--postgres.host").
	AddFlags(fs *pflag.FlagSet, namePrefix string)
}
