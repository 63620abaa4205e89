package models

// OrigemLocal marca registros de contingência gravados no banco local
// quando a escrita na API remota falhou. Eles nunca são reconciliados.
const OrigemLocal = "local"

// RegistroPonto é o registro de ponto de um funcionário em um dia.
// Data usa o formato yyyy-MM-dd no fio; Status é derivado (ponto.StatusDe),
// nunca armazenado.
type RegistroPonto struct {
	ID            int32   `json:"id"`
	RegistroID    string  `json:"registro_id,omitempty"` // uuid sintético dos registros locais
	FuncionarioID int32   `json:"funcionario_id"`
	UnidadeID     int32   `json:"unidade_id"`
	Data          string  `json:"data"`
	HoraEntrada   *string `json:"hora_entrada"`
	HoraSaida     *string `json:"hora_saida"`
	Status        string  `json:"status,omitempty"`
	Origem        string  `json:"origem,omitempty"`
}
