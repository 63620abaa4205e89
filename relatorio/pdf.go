package relatorio

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// alturas fixas (mm) das bandas do relatório em A4 paisagem
const (
	alturaUtil     = 190.0 // 210 - margens
	alturaFixa     = 59.0  // cabeçalho + dados + títulos + resumo + assinaturas
	alturaRodape   = 10.0
	alturaLinhaMin = 3.0
)

// alturaLinha divide o espaço vertical restante pelo número de dias,
// com piso mínimo. É isso que garante o relatório em uma única página.
func alturaLinha(dias int) float64 {
	if dias == 0 {
		return alturaLinhaMin
	}
	h := (alturaUtil - alturaFixa - alturaRodape) / float64(dias)
	if h < alturaLinhaMin {
		return alturaLinhaMin
	}
	return h
}

// GerarPDF emite o relatório mensal de frequência em uma página A4
// paisagem: banda de cabeçalho, dados do funcionário, tabela por dia,
// linha de resumo, duas linhas de assinatura e rodapé.
func GerarPDF(rel *Relatorio) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithBottomMargin(10).
		Build()

	m := maroto.New(cfg)

	m.RegisterFooter(
		row.New(3).Add(lineCol(12)),
		row.New(5).Add(
			text.NewCol(12,
				fmt.Sprintf("Biométrico Saúde — emitido em %s", time.Now().Format("02/01/2006 15:04")),
				props.Text{Size: 7, Align: align.Center}),
		),
	)

	// cabeçalho
	m.AddRow(8,
		text.NewCol(12, "PREFEITURA MUNICIPAL DE ITAGUAÍ",
			props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}),
	)
	m.AddRow(6,
		text.NewCol(12, "Secretaria de Saúde — Relatório Mensal de Frequência",
			props.Text{Size: 10, Align: align.Center}),
	)
	m.AddRow(3, lineCol(12))

	// dados do funcionário
	f := rel.Funcionario
	m.AddRow(5,
		text.NewCol(5, "Funcionário: "+f.Nome, props.Text{Size: 9}),
		text.NewCol(3, "Matrícula: "+f.Matricula, props.Text{Size: 9}),
		text.NewCol(4, "Cargo: "+f.Cargo, props.Text{Size: 9}),
	)
	m.AddRow(5,
		text.NewCol(5, "Unidade: "+f.UnidadeNome, props.Text{Size: 9}),
		text.NewCol(3, "Escala: "+f.TipoEscala, props.Text{Size: 9}),
		text.NewCol(4, "Referência: "+f.MesAno, props.Text{Size: 9}),
	)
	m.AddRow(2)

	// títulos das colunas
	m.AddRow(6,
		cabecalho(1, "Data"),
		cabecalho(2, "Dia"),
		cabecalho(1, "Entrada"),
		cabecalho(1, "Saída"),
		cabecalho(2, "Horas Normais"),
		cabecalho(1, "Horas Extras"),
		cabecalho(1, "Descontos"),
		cabecalho(3, "Justificativa"),
	)

	h := alturaLinha(len(rel.Linhas))
	for _, l := range rel.Linhas {
		m.AddRow(h,
			celula(1, l.Data),
			celula(2, l.Dia),
			celula(1, l.Entrada),
			celula(1, l.Saida),
			celula(2, l.HorasNormais),
			celula(1, l.HorasExtras),
			celula(1, l.Descontos),
			celula(3, l.Justificativa),
		)
	}

	// resumo do mês
	m.AddRow(6,
		text.NewCol(4, "Total trabalhado: "+rel.Totais.Trabalhado,
			props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewCol(4, "Horas extras: "+rel.Totais.Extras,
			props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
		text.NewCol(4, "Descontos: "+rel.Totais.Descontos,
			props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
	)

	// assinaturas
	m.AddRow(10)
	m.AddRow(3,
		lineCol(5),
		emptyCol(2),
		lineCol(5),
	)
	m.AddRow(5,
		text.NewCol(5, "Assinatura do funcionário", props.Text{Size: 8, Align: align.Center}),
		emptyCol(2),
		text.NewCol(5, "Assinatura do responsável", props.Text{Size: 8, Align: align.Center}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("gerando PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func cabecalho(size int, titulo string) core.Col {
	return text.NewCol(size, titulo,
		props.Text{Size: 7.5, Style: fontstyle.Bold, Align: align.Center})
}

func celula(size int, valor string) core.Col {
	return text.NewCol(size, valor, props.Text{Size: 7, Align: align.Center})
}

func lineCol(size int) core.Col {
	return col.New(size).Add(line.New())
}

func emptyCol(size int) core.Col {
	return col.New(size)
}
