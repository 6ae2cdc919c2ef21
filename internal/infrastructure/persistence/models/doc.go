// Package models maps the forecast and inventory tables to gorm structs.
// Each model converts to and from its domain type with ToDomain and
// FromDomain, so gorm tags never leak into the domain packages.
package models
