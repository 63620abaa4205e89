package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prefeitura-itaguai/biometrico-saude/biometrico"
	"github.com/prefeitura-itaguai/biometrico-saude/models"
	"github.com/prefeitura-itaguai/biometrico-saude/relatorio"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// GET /api/relatorios/mensal?funcionario_id=&mes=&ano=
// Busca funcionário e registros em paralelo; qualquer falha aborta a
// geração e documento parcial nunca sai daqui.
func RelatorioMensal(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		funcionarioID, err := strconv.Atoi(q.Get("funcionario_id"))
		if err != nil || funcionarioID <= 0 {
			http.Error(w, "invalid funcionario_id", http.StatusBadRequest)
			return
		}
		mes, err := strconv.Atoi(q.Get("mes"))
		if err != nil || mes < 1 || mes > 12 {
			http.Error(w, "invalid mes (1-12)", http.StatusBadRequest)
			return
		}
		ano, err := strconv.Atoi(q.Get("ano"))
		if err != nil || ano < 2000 {
			http.Error(w, "invalid ano", http.StatusBadRequest)
			return
		}

		var (
			funcionario *models.Funcionario
			dias        []relatorio.RegistroDia
		)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			funcionario, err = api.BuscarFuncionario(ctx, int32(funcionarioID))
			return err
		})
		g.Go(func() error {
			var err error
			dias, err = api.RelatorioMensal(ctx, int32(funcionarioID), mes, ano)
			return err
		})
		if err := g.Wait(); err != nil {
			zap.S().Errorw("erro consultando a API para o relatório", "erro", err)
			http.Error(w, "error fetching report data", http.StatusBadGateway)
			return
		}

		unidadeNome := ""
		if u, err := api.BuscarUnidade(r.Context(), funcionario.UnidadeID); err == nil {
			unidadeNome = u.Nome
		}

		f := relatorio.Funcionario{
			Nome:        funcionario.Nome,
			Matricula:   funcionario.Matricula,
			Cargo:       funcionario.Cargo,
			TipoEscala:  string(funcionario.TipoEscala),
			UnidadeNome: unidadeNome,
			MesAno:      fmt.Sprintf("%02d/%04d", mes, ano),
		}

		rel, err := relatorio.Montar(f, dias)
		if err != nil {
			http.Error(w, "error building report", http.StatusInternalServerError)
			return
		}

		pdf, err := relatorio.GerarPDF(rel)
		if err != nil {
			zap.S().Errorw("erro gerando PDF", "erro", err)
			http.Error(w, "error generating PDF", http.StatusInternalServerError)
			return
		}

		nome := fmt.Sprintf("frequencia-%s-%02d-%04d.pdf", funcionario.Matricula, mes, ano)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nome))
		w.Write(pdf)
	}
}

// GET /api/relatorios/levantamento?funcionario_id=&mes=&ano=
// Versão JSON do levantamento de horas, para a tela de conferência.
func LevantamentoHoras(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := filtroDaQuery(r)
		if f.Mes < 1 || f.Mes > 12 || f.Ano == 0 {
			http.Error(w, "mes and ano are required", http.StatusBadRequest)
			return
		}

		brutos, err := api.LevantamentoHoras(r.Context(), f)
		if err != nil {
			zap.S().Warnw("falha no levantamento de horas", "erro", err)
		}
		writeJSON(w, http.StatusOK, brutos)
	}
}
