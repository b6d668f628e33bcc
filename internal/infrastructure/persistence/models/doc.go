// Package models contains GORM persistence models. Domain entities carry no
// ORM tags; each model converts with ToDomain and a ...ModelFromDomain helper.
//
// Balance columns are nullable and read as zero when NULL, so rows written by
// older tooling without balances still load.
package models
