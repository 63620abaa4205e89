package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/biometrico"
	"github.com/prefeitura-itaguai/biometrico-saude/models"
)

// --- LIST ---
// Falha na API remota não vira erro para o cliente: a lista degrada para
// o cache e, por fim, para vazia (o aviso fica no log).
func ListUnidades(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lista, err := api.ListarUnidades(r.Context())
		if err != nil {
			zap.S().Warnw("falha ao listar unidades", "erro", err)
		}
		writeJSON(w, http.StatusOK, lista)
	}
}

// --- GET BY SLUG ---
func GetUnidadePorSlug(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := r.PathValue("slug")
		if s == "" {
			http.Error(w, "slug is required", http.StatusBadRequest)
			return
		}

		u, err := api.BuscarUnidadePorSlug(r.Context(), s)
		if errors.Is(err, biometrico.ErrNaoEncontrado) {
			http.Error(w, "unidade not found", http.StatusNotFound)
			return
		} else if err != nil {
			zap.S().Errorw("erro buscando unidade por slug", "slug", s, "erro", err)
			http.Error(w, "error fetching unidade", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}

// --- GET BY ID ---
func GetUnidade(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		u, err := api.BuscarUnidade(r.Context(), int32(id))
		if errors.Is(err, biometrico.ErrNaoEncontrado) {
			http.Error(w, "unidade not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "error fetching unidade", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}

// --- CREATE ---
// Recebe multipart (a foto da unidade é arquivo) e repassa para a API
// remota; o slug é derivado do nome no cliente da API.
func CreateUnidade(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		u := models.Unidade{
			Nome:        r.FormValue("nome"),
			Localizacao: r.FormValue("localizacao"),
		}
		if u.Nome == "" {
			http.Error(w, "nome is required", http.StatusBadRequest)
			return
		}

		var (
			foto     io.Reader
			nomeFoto string
		)
		if arquivos := r.MultipartForm.File["foto"]; len(arquivos) > 0 {
			f, err := arquivos[0].Open()
			if err != nil {
				http.Error(w, "invalid foto", http.StatusBadRequest)
				return
			}
			defer f.Close()
			foto = f
			nomeFoto = arquivos[0].Filename
		}

		criada, err := api.CriarUnidade(r.Context(), u, foto, nomeFoto)
		if err != nil {
			zap.S().Errorw("erro criando unidade", "erro", err)
			http.Error(w, "could not create unidade", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusCreated, criada)
	}
}

// --- UPDATE (PATCH) ---
func UpdateUnidade(api *biometrico.Client) http.HandlerFunc {
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

		campos := map[string]any{}
		for key, value := range input {
			switch key {
			case "nome", "localizacao", "foto":
				campos[key] = value
			}
		}
		if len(campos) == 0 {
			http.Error(w, "no valid fields to update", http.StatusBadRequest)
			return
		}

		if err := api.AtualizarUnidade(r.Context(), int32(id), campos); err != nil {
			if errors.Is(err, biometrico.ErrNaoEncontrado) {
				http.Error(w, "unidade not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not update unidade", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// --- DELETE ---
func DeleteUnidade(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := api.RemoverUnidade(r.Context(), int32(id)); err != nil {
			if errors.Is(err, biometrico.ErrNaoEncontrado) {
				http.Error(w, "unidade not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not delete unidade", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
