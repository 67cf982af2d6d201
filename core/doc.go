// Package core contains the exclusion list retrieval contracts, configuration,
// error envelope and the Fetcher that orchestrates credential acquisition and
// file retrieval. Provider and transport packages depend on core; core must not
// depend on them.
package core
