package ponto

import "time"

// DiaCalendario é um dia do mês com zero ou mais registros casados.
// Dias sem registro ficam na lista mesmo assim (a visão mensal nunca
// omite dias).
type DiaCalendario struct {
	Dia       time.Time  `json:"dia"`
	Registros []Registro `json:"registros"`
}

// DiasDoMes enumera todos os dias do mês de referência; o tamanho do
// resultado é sempre o número de dias daquele mês.
func DiasDoMes(ano int, mes time.Month) []time.Time {
	primeiro := time.Date(ano, mes, 1, 0, 0, 0, 0, time.UTC)
	n := primeiro.AddDate(0, 1, -1).Day()

	dias := make([]time.Time, n)
	for i := range dias {
		dias[i] = primeiro.AddDate(0, 0, i)
	}
	return dias
}

// AgruparPorDia faz o left join dos registros normalizados sobre o
// calendário do mês, casando por ano/mês/dia da data já parseada.
func AgruparPorDia(ano int, mes time.Month, registros []Registro) []DiaCalendario {
	porDia := make(map[time.Time][]Registro, len(registros))
	for _, r := range registros {
		porDia[r.Data] = append(porDia[r.Data], r)
	}

	dias := DiasDoMes(ano, mes)
	out := make([]DiaCalendario, len(dias))
	for i, d := range dias {
		out[i] = DiaCalendario{Dia: d, Registros: porDia[d]}
	}
	return out
}
