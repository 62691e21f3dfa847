// Package models contains GORM persistence models for the storefront tables.
// Models carry the ORM tags and column layout so that domain types stay free
// of infrastructure concerns; each model converts to and from its domain
// entity with ToDomain and FromDomain.
//
// Nested values (product variants, order items, image lists, feature flags)
// are stored as jsonb text and decoded on read.
package models
