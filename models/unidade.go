package models

import "time"

// Unidade é uma unidade de saúde da rede municipal.
type Unidade struct {
	ID          int32      `json:"id"`
	Nome        string     `json:"nome"`
	Localizacao string     `json:"localizacao"`
	Foto        string     `json:"foto"`
	Slug        string     `json:"slug"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
