package relatorio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func funcionarioTeste(mesAno string) Funcionario {
	return Funcionario{
		Nome:        "Maria da Silva",
		Matricula:   "12345",
		Cargo:       "Enfermeira",
		TipoEscala:  "12x36",
		UnidadeNome: "UBS Centro",
		MesAno:      mesAno,
	}
}

func TestMontarMesSemRegistros(t *testing.T) {
	rel, err := Montar(funcionarioTeste("03/2025"), nil)
	require.NoError(t, err)
	require.Len(t, rel.Linhas, 31, "uma linha por dia do mês mesmo sem registros")

	for _, l := range rel.Linhas {
		assert.Equal(t, "--", l.Entrada)
		assert.Equal(t, "--", l.Saida)
		assert.Equal(t, "00:00", l.HorasNormais)
		assert.Equal(t, "0", l.Descontos)
		assert.Empty(t, l.Justificativa)
	}

	assert.Equal(t, "01/03/2025", rel.Linhas[0].Data)
	assert.Equal(t, "sábado", rel.Linhas[0].Dia)
	assert.Equal(t, "domingo", rel.Linhas[1].Dia)
	assert.Equal(t, "00:00", rel.Totais.Trabalhado)
}

func TestMontarRegistroUnico(t *testing.T) {
	registros := []RegistroDia{{
		Data:            "23/03/2025",
		HoraEntrada:     str("08:00:00"),
		HoraSaida:       str("17:00:00"),
		TotalTrabalhado: "08:00:00",
		HoraExtra:       "01:00:00",
	}}

	rel, err := Montar(funcionarioTeste("03/2025"), registros)
	require.NoError(t, err)
	require.Len(t, rel.Linhas, 31)

	l := rel.Linhas[22] // 23 de março
	assert.Equal(t, "23/03/2025", l.Data)
	assert.Equal(t, "08:00:00", l.Entrada)
	assert.Equal(t, "17:00:00", l.Saida)
	assert.Equal(t, "08:00", l.HorasNormais)
	assert.Equal(t, "01:00", l.HorasExtras)
	// desconto só aparece quando vem na origem; nada de exceção por data
	assert.Equal(t, "0", l.Descontos)

	// os demais dias seguem com placeholder
	assert.Equal(t, "--", rel.Linhas[0].Entrada)
}

func TestMontarJustificativaTraco(t *testing.T) {
	registros := []RegistroDia{
		{Data: "2025-03-10", Justificativa: "-"},
		{Data: "2025-03-11", Justificativa: "atestado médico"},
	}

	rel, err := Montar(funcionarioTeste("03/2025"), registros)
	require.NoError(t, err)
	assert.Empty(t, rel.Linhas[9].Justificativa, `"-" vira justificativa em branco`)
	assert.Equal(t, "atestado médico", rel.Linhas[10].Justificativa)
}

func TestTotaisDoRegistro(t *testing.T) {
	registros := []RegistroDia{
		{Data: "2025-03-10"},
		{Data: "2025-03-11", TotalTrabalhadoMes: "160:00:00", TotalHoraExtraMes: "04:30:00", TotalDescontoMes: "02:00:00"},
	}

	tot := totais(registros)
	assert.Equal(t, "160:00", tot.Trabalhado)
	assert.Equal(t, "04:30", tot.Extras)
	assert.Equal(t, "02:00", tot.Descontos)
}

func TestTotaisSomados(t *testing.T) {
	// sem agregados na origem, os totais saem da soma dos dias;
	// nada de valores de fallback fixos
	registros := []RegistroDia{
		{Data: "2025-03-10", TotalTrabalhado: "08:00:00", HoraExtra: "01:00:00"},
		{Data: "2025-03-11", TotalTrabalhado: "07:30:00", HoraDesconto: "00:30:00"},
	}

	tot := totais(registros)
	assert.Equal(t, "15:30", tot.Trabalhado)
	assert.Equal(t, "01:00", tot.Extras)
	assert.Equal(t, "00:30", tot.Descontos)
}

func TestMontarMesAnoInvalido(t *testing.T) {
	_, err := Montar(funcionarioTeste("2025-03"), nil)
	assert.Error(t, err)
}

func TestAlturaLinha(t *testing.T) {
	// 28 a 31 dias cabem na página com folga acima do piso
	for _, dias := range []int{28, 29, 30, 31} {
		h := alturaLinha(dias)
		assert.GreaterOrEqual(t, h, alturaLinhaMin)
		assert.LessOrEqual(t, h*float64(dias), alturaUtil-alturaFixa-alturaRodape+0.001)
	}

	// o piso segura entradas absurdas
	assert.Equal(t, alturaLinhaMin, alturaLinha(1000))
	assert.Equal(t, alturaLinhaMin, alturaLinha(0))
}

func TestGerarPDF(t *testing.T) {
	registros := []RegistroDia{{
		Data:            "23/03/2025",
		HoraEntrada:     str("08:00:00"),
		HoraSaida:       str("17:00:00"),
		TotalTrabalhado: "08:00:00",
	}}

	rel, err := Montar(funcionarioTeste("03/2025"), registros)
	require.NoError(t, err)

	pdf, err := GerarPDF(rel)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
