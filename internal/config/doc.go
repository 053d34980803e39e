// Package config loads gitscribe configuration and the provider credential.
//
// Effective configuration is the merge of defaults, the JSON config file
// under the user config directory, GITSCRIBE_* environment variables, and
// CLI flag overrides, in that order. The provider API key is resolved
// separately from the environment or a repo-local .env file and its absence
// is fatal before any git or network operation runs.
package config
