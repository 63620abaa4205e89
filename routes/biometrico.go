package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/biometrico"
	"github.com/prefeitura-itaguai/biometrico-saude/db"
	"github.com/prefeitura-itaguai/biometrico-saude/ponto"
)

// POST /api/biometrico/registrar
// O leitor identifica a digital e devolve o registro do dia; o registro
// então é escrito na API remota (com contingência local) e transmitido
// aos painéis conectados.
func RegistrarPontoBiometrico(leitor *biometrico.Leitor, api *biometrico.Client, database *db.Database, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := leitor.RegistrarPonto(r.Context())
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
				http.Error(w, "biometric reader timeout", http.StatusGatewayTimeout)
				return
			}
			zap.S().Errorw("erro no leitor biométrico", "erro", err)
			http.Error(w, "biometric reader error", http.StatusBadGateway)
			return
		}

		if resp.RegistroPonto == nil {
			// o leitor respondeu mas não identificou ninguém
			writeJSON(w, http.StatusOK, resp)
			return
		}

		reg := *resp.RegistroPonto
		reg.Status = string(ponto.StatusDe(reg.HoraEntrada, reg.HoraSaida))

		criado, err := api.CriarRegistro(r.Context(), reg)
		if err != nil {
			zap.S().Warnw("escrita remota falhou, gravando registro local", "erro", err)
			local, err := salvarRegistroLocal(r.Context(), database, reg)
			if err != nil {
				zap.S().Errorw("erro gravando registro local", "erro", err)
				http.Error(w, "could not persist registro", http.StatusInternalServerError)
				return
			}
			resp.RegistroPonto = &local
			writeJSON(w, http.StatusOK, resp)
			return
		}

		criado.Status = reg.Status
		resp.RegistroPonto = criado
		hub.Broadcast(criado)
		writeJSON(w, http.StatusOK, resp)
	}
}

// POST /api/biometrico/cadastrar/{funcionario_id}
// Dispara o cadastro de digital no leitor; o id_biometrico devolvido é
// repassado para a API remota quando vier na resposta (a atribuição é
// assíncrona no serviço do leitor).
func CadastrarDigital(leitor *biometrico.Leitor, api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("funcionario_id"))
		if err != nil {
			http.Error(w, "invalid funcionario_id", http.StatusBadRequest)
			return
		}

		f, err := api.BuscarFuncionario(r.Context(), int32(id))
		if errors.Is(err, biometrico.ErrNaoEncontrado) {
			http.Error(w, "funcionario not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "error fetching funcionario", http.StatusBadGateway)
			return
		}

		resp, err := leitor.CadastrarDigital(r.Context(), biometrico.CadastroDigital{
			FuncionarioID: f.ID,
			Nome:          f.Nome,
			CPF:           f.CPF,
			Matricula:     f.Matricula,
		})
		if err != nil {
			zap.S().Errorw("erro no cadastro de digital", "erro", err)
			http.Error(w, "biometric reader error", http.StatusBadGateway)
			return
		}

		if resp.User != nil && resp.User.IDBiometrico != "" {
			campos := map[string]any{"id_biometrico": resp.User.IDBiometrico}
			if err := api.AtualizarFuncionario(r.Context(), f.ID, campos); err != nil {
				zap.S().Warnw("não foi possível gravar id_biometrico", "erro", err)
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
