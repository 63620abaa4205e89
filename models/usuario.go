package models

import "time"

type StatusUsuario string

const (
	StatusAtivo   StatusUsuario = "ativo"
	StatusInativo StatusUsuario = "inativo"
)

// Usuario é uma conta do portal (única entidade com autoridade local).
type Usuario struct {
	ID        int32         `json:"id"`
	UserID    string        `json:"user_id"`
	Nome      string        `json:"nome"`
	Senha     string        `json:"senha,omitempty"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	Status    StatusUsuario `json:"status"`
	CreatedAt *time.Time    `json:"createdAt,omitempty"`
}

func (u *Usuario) IsValidStatus(status StatusUsuario) bool {
	return status == StatusAtivo || status == StatusInativo
}
