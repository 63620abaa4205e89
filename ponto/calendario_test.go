package ponto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiasDoMes(t *testing.T) {
	casos := []struct {
		ano  int
		mes  time.Month
		dias int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29}, // bissexto
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, c := range casos {
		dias := DiasDoMes(c.ano, c.mes)
		require.Len(t, dias, c.dias)
		assert.Equal(t, 1, dias[0].Day())
		assert.Equal(t, c.dias, dias[len(dias)-1].Day())
		assert.Equal(t, c.mes, dias[0].Month())
	}
}

func TestAgruparPorDia(t *testing.T) {
	regs := Normalizar([]RegistroBruto{
		// formatos de data misturados: o join é por data parseada
		{FuncionarioID: 1, Data: "2025-03-23", HoraEntrada: str("08:00:00")},
		{FuncionarioID: 2, Data: "23/03/2025", HoraEntrada: str("09:00:00")},
		{FuncionarioID: 1, Data: "2025-03-10", HoraEntrada: str("08:00:00"), HoraSaida: str("17:00:00")},
	})

	dias := AgruparPorDia(2025, time.March, regs)
	require.Len(t, dias, 31, "todo dia do mês aparece, com ou sem registro")

	assert.Len(t, dias[22].Registros, 2, "os dois formatos de 23/03 casam no mesmo dia")
	assert.Len(t, dias[9].Registros, 1)
	assert.Empty(t, dias[0].Registros, "dia sem registro fica com lista vazia, não some")
}

func TestAgruparPorDiaSemRegistros(t *testing.T) {
	dias := AgruparPorDia(2025, time.February, nil)
	require.Len(t, dias, 28)
	for _, d := range dias {
		assert.Empty(t, d.Registros)
	}
}
