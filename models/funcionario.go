package models

import "time"

type TipoEscala string

const (
	Escala8h    TipoEscala = "8h"
	Escala12x36 TipoEscala = "12x36"
	Escala24x72 TipoEscala = "24x72"
)

// Funcionario pertence a exatamente uma Unidade. IDBiometrico é opcional:
// o serviço do leitor atribui de forma assíncrona após o cadastro da digital.
type Funcionario struct {
	ID           int32      `json:"id"`
	Nome         string     `json:"nome"`
	CPF          string     `json:"cpf"`
	Cargo        string     `json:"cargo"`
	UnidadeID    int32      `json:"unidade_id"`
	Matricula    string     `json:"matricula"`
	Email        string     `json:"email"`
	Telefone     string     `json:"telefone"`
	TipoEscala   TipoEscala `json:"tipo_escala"`
	IDBiometrico *string    `json:"id_biometrico,omitempty"`
	DataAdmissao *time.Time `json:"data_admissao,omitempty"`
}

func (f *Funcionario) IsValidEscala(e TipoEscala) bool {
	return e == Escala8h || e == Escala12x36 || e == Escala24x72
}
