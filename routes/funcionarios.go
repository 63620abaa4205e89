package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/biometrico"
	"github.com/prefeitura-itaguai/biometrico-saude/models"
)

type criarFuncionarioInput struct {
	Nome         string `json:"nome" validate:"required"`
	CPF          string `json:"cpf" validate:"required,len=11,numeric"`
	Cargo        string `json:"cargo" validate:"required"`
	UnidadeID    int32  `json:"unidade_id" validate:"required,gt=0"`
	Matricula    string `json:"matricula" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telefone     string `json:"telefone"`
	TipoEscala   string `json:"tipo_escala" validate:"required,oneof=8h 12x36 24x72"`
	DataAdmissao string `json:"data_admissao" validate:"omitempty,datetime=2006-01-02"`
}

// --- LIST ---
func ListFuncionarios(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var unidadeID int32
		if v := r.URL.Query().Get("unidade_id"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "invalid unidade_id", http.StatusBadRequest)
				return
			}
			unidadeID = int32(n)
		}

		lista, err := api.ListarFuncionarios(r.Context(), unidadeID)
		if err != nil {
			zap.S().Warnw("falha ao listar funcionários", "erro", err)
		}
		writeJSON(w, http.StatusOK, lista)
	}
}

// --- GET BY ID ---
func GetFuncionario(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
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

		writeJSON(w, http.StatusOK, f)
	}
}

// --- CREATE ---
func CreateFuncionario(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in criarFuncionarioInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f := models.Funcionario{
			Nome:       in.Nome,
			CPF:        in.CPF,
			Cargo:      in.Cargo,
			UnidadeID:  in.UnidadeID,
			Matricula:  in.Matricula,
			Email:      in.Email,
			Telefone:   in.Telefone,
			TipoEscala: models.TipoEscala(in.TipoEscala),
		}
		if in.DataAdmissao != "" {
			d, _ := time.Parse("2006-01-02", in.DataAdmissao)
			f.DataAdmissao = &d
		}

		criado, err := api.CriarFuncionario(r.Context(), f)
		if err != nil {
			zap.S().Errorw("erro criando funcionário", "erro", err)
			http.Error(w, "could not create funcionario", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusCreated, criado)
	}
}

// --- UPDATE (PATCH) ---
func UpdateFuncionario(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		var f models.Funcionario
		campos := map[string]any{}
		for key, value := range input {
			switch key {
			case "nome", "cargo", "matricula", "email", "telefone", "unidade_id", "id_biometrico":
				campos[key] = value

			case "tipo_escala":
				escala := models.TipoEscala(fmt.Sprint(value))
				if !f.IsValidEscala(escala) {
					http.Error(w, "invalid tipo_escala", http.StatusBadRequest)
					return
				}
				campos[key] = escala
			}
		}
		if len(campos) == 0 {
			http.Error(w, "no valid fields to update", http.StatusBadRequest)
			return
		}

		if err := api.AtualizarFuncionario(r.Context(), int32(id), campos); err != nil {
			if errors.Is(err, biometrico.ErrNaoEncontrado) {
				http.Error(w, "funcionario not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not update funcionario", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// --- DELETE ---
func DeleteFuncionario(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := api.RemoverFuncionario(r.Context(), int32(id)); err != nil {
			if errors.Is(err, biometrico.ErrNaoEncontrado) {
				http.Error(w, "funcionario not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not delete funcionario", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
