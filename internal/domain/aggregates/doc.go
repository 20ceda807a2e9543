// Package aggregates defines domain-facing aggregate contracts and the catalog error taxonomy.
package aggregates
