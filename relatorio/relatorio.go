package relatorio

import (
	"fmt"
	"time"

	"github.com/prefeitura-itaguai/biometrico-saude/ponto"
)

// Funcionario é o cabeçalho do relatório mensal; MesAno no formato MM/YYYY.
type Funcionario struct {
	Nome        string `json:"nome"`
	Matricula   string `json:"matricula"`
	Cargo       string `json:"cargo"`
	TipoEscala  string `json:"tipo_escala"`
	UnidadeNome string `json:"unidade_nome"`
	MesAno      string `json:"mes_ano"`
}

// RegistroDia é o registro cru do endpoint /relat. Os três campos de
// total mensal podem vir preenchidos em qualquer registro do mês.
type RegistroDia struct {
	Data            string      `json:"data"`
	HoraEntrada     *string     `json:"hora_entrada"`
	HoraSaida       *string     `json:"hora_saida"`
	TotalTrabalhado ponto.Horas `json:"total_trabalhado"`
	HoraExtra       ponto.Horas `json:"hora_extra"`
	HoraDesconto    ponto.Horas `json:"hora_desconto"`
	Justificativa   string      `json:"justificativa"`

	TotalTrabalhadoMes ponto.Horas `json:"total_trabalhado_mes"`
	TotalHoraExtraMes  ponto.Horas `json:"total_hora_extra_mes"`
	TotalDescontoMes   ponto.Horas `json:"total_hora_desconto_mes"`
}

// Linha é uma linha pronta da tabela do relatório.
type Linha struct {
	Data          string
	Dia           string
	Entrada       string
	Saida         string
	HorasNormais  string
	HorasExtras   string
	Descontos     string
	Justificativa string
}

type Totais struct {
	Trabalhado string
	Extras     string
	Descontos  string
}

type Relatorio struct {
	Funcionario Funcionario
	Linhas      []Linha
	Totais      Totais
}

var diasSemana = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// Montar enumera todos os dias do mês de referência e faz o left join dos
// registros por data parseada. Dias sem registro viram linhas com
// placeholders ("--", "00:00", "0"). Os totais mensais vêm do primeiro
// registro que os carrega; na ausência, são somados dos próprios dias.
func Montar(f Funcionario, registros []RegistroDia) (*Relatorio, error) {
	ref, err := time.Parse("01/2006", f.MesAno)
	if err != nil {
		return nil, fmt.Errorf("mes_ano inválido %q: %w", f.MesAno, err)
	}

	porDia := make(map[time.Time]RegistroDia, len(registros))
	for _, r := range registros {
		d, err := ponto.ParseData(r.Data)
		if err != nil {
			continue
		}
		if _, ok := porDia[d]; !ok {
			porDia[d] = r
		}
	}

	dias := ponto.DiasDoMes(ref.Year(), ref.Month())
	linhas := make([]Linha, 0, len(dias))
	for _, dia := range dias {
		r, ok := porDia[dia]
		l := Linha{
			Data:         dia.Format("02/01/2006"),
			Dia:          diasSemana[int(dia.Weekday())],
			Entrada:      "--",
			Saida:        "--",
			HorasNormais: "00:00",
			HorasExtras:  "00:00",
			Descontos:    "0",
		}
		if ok {
			l.Entrada = hora(r.HoraEntrada)
			l.Saida = hora(r.HoraSaida)
			l.HorasNormais = r.TotalTrabalhado.HHMM()
			l.HorasExtras = r.HoraExtra.HHMM()
			if r.HoraDesconto != "" && r.HoraDesconto != "-" {
				l.Descontos = string(r.HoraDesconto)
			}
			if r.Justificativa != "" && r.Justificativa != "-" {
				l.Justificativa = r.Justificativa
			}
		}
		linhas = append(linhas, l)
	}

	return &Relatorio{Funcionario: f, Linhas: linhas, Totais: totais(registros)}, nil
}

// totais devolve os agregados do mês: o primeiro registro com totais
// preenchidos vence; sem agregados, soma os campos diários.
func totais(registros []RegistroDia) Totais {
	for _, r := range registros {
		if r.TotalTrabalhadoMes != "" || r.TotalHoraExtraMes != "" || r.TotalDescontoMes != "" {
			return Totais{
				Trabalhado: r.TotalTrabalhadoMes.HHMM(),
				Extras:     r.TotalHoraExtraMes.HHMM(),
				Descontos:  r.TotalDescontoMes.HHMM(),
			}
		}
	}

	var trabalhado, extras, descontos int
	for _, r := range registros {
		trabalhado += r.TotalTrabalhado.Minutos()
		extras += r.HoraExtra.Minutos()
		descontos += r.HoraDesconto.Minutos()
	}
	return Totais{
		Trabalhado: ponto.FormataMinutos(trabalhado),
		Extras:     ponto.FormataMinutos(extras),
		Descontos:  ponto.FormataMinutos(descontos),
	}
}

func hora(v *string) string {
	if v == nil || *v == "" || *v == "-" {
		return "--"
	}
	return *v
}
