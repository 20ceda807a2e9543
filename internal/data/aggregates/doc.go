// Package aggregates implements the catalog's transactional write paths. Each
// aggregate owns its transaction, composes the table repos under
// internal/data/repos, and reports outcomes through Hooks.
package aggregates
