package ponto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPresente          Status = "Presente"
	StatusEntradaRegistrada Status = "Entrada registrada"
	StatusAusente           Status = "Ausente"
)

// StatusDe é a única derivação de status do sistema: Presente quando há
// entrada e saída, Entrada registrada quando há só entrada, senão Ausente.
func StatusDe(entrada, saida *string) Status {
	switch {
	case presente(entrada) && presente(saida):
		return StatusPresente
	case presente(entrada):
		return StatusEntradaRegistrada
	default:
		return StatusAusente
	}
}

func presente(v *string) bool {
	return v != nil && *v != "" && *v != "-"
}

// Horas aceita duração como string ("08:30" / "08:30:00") ou como número
// de horas decimais, conforme o endpoint remoto que respondeu.
type Horas string

func (h *Horas) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*h = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*h = Horas(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("horas inválidas %q: %w", string(b), err)
	}
	total := int(f*60 + 0.5)
	*h = Horas(fmt.Sprintf("%02d:%02d", total/60, total%60))
	return nil
}

// HHMM trunca para HH:MM; vazio vira o placeholder "00:00".
func (h Horas) HHMM() string {
	s := string(h)
	if s == "" || s == "-" {
		return "00:00"
	}
	if parts := strings.Split(s, ":"); len(parts) >= 2 {
		return parts[0] + ":" + parts[1]
	}
	return s
}

// Minutos converte "HH:MM[:SS]" em minutos; formatos irreconhecíveis valem 0.
func (h Horas) Minutos() int {
	parts := strings.Split(string(h), ":")
	if len(parts) < 2 {
		return 0
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return hh*60 + mm
}

// FormataMinutos faz o caminho inverso de Minutos ("HH:MM").
func FormataMinutos(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// RegistroBruto é o superset dos campos devolvidos pelos endpoints
// pontos-unidade e levantamento-horas (presença de campo varia).
type RegistroBruto struct {
	FuncionarioID   int32   `json:"funcionario_id"`
	FuncionarioNome string  `json:"funcionario_nome"`
	Nome            string  `json:"nome"`
	Data            string  `json:"data"`
	HoraEntrada     *string `json:"hora_entrada"`
	HoraSaida       *string `json:"hora_saida"`
	HorasNormais    Horas   `json:"horas_normais"`
	HoraExtra       Horas   `json:"hora_extra"`
	HoraDesconto    Horas   `json:"hora_desconto"`
}

// Registro é o registro uniforme do pipeline: data como time.Time (nunca
// comparada como string) e status derivado.
type Registro struct {
	FuncionarioID   int32
	FuncionarioNome string
	Data            time.Time
	HoraEntrada     *string
	HoraSaida       *string
	Status          Status
}

var formatosData = []string{"2006-01-02", "02/01/2006", time.RFC3339}

// ParseData aceita os formatos de data que os endpoints remotos misturam
// (yyyy-MM-dd, dd/MM/yyyy, RFC3339) e devolve uma data comparável.
func ParseData(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, f := range formatosData {
		if t, err := time.Parse(f, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("data em formato desconhecido: %q", s)
}

// Normalizar mapeia registros brutos no registro uniforme, derivando o
// status. Registros com data ilegível são descartados, nunca propagados.
func Normalizar(brutos []RegistroBruto) []Registro {
	regs := make([]Registro, 0, len(brutos))
	for _, b := range brutos {
		data, err := ParseData(b.Data)
		if err != nil {
			continue
		}
		nome := b.FuncionarioNome
		if nome == "" {
			nome = b.Nome
		}
		regs = append(regs, Registro{
			FuncionarioID:   b.FuncionarioID,
			FuncionarioNome: nome,
			Data:            data,
			HoraEntrada:     b.HoraEntrada,
			HoraSaida:       b.HoraSaida,
			Status:          StatusDe(b.HoraEntrada, b.HoraSaida),
		})
	}
	return regs
}
