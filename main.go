package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/auth"
	"github.com/prefeitura-itaguai/biometrico-saude/biometrico"
	"github.com/prefeitura-itaguai/biometrico-saude/config"
	"github.com/prefeitura-itaguai/biometrico-saude/cors"
	"github.com/prefeitura-itaguai/biometrico-saude/db"
	middleware "github.com/prefeitura-itaguai/biometrico-saude/middlewares"
	"github.com/prefeitura-itaguai/biometrico-saude/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := buildLogger(cfg.Ambiente)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	pool, err := db.NewPool(context.Background(), cfg.DB)
	if err != nil {
		zap.S().Fatalf("Error connecting database: %v", err)
	}
	defer pool.Close()

	api := biometrico.NewClient(cfg.APIBaseURL, cfg.CacheTTL)
	leitor := biometrico.NewLeitor(cfg.DeviceURL, cfg.Ambiente)
	hub := routes.NewHub()

	authJWT := middleware.AuthJWT(cfg.JWTSecret)
	requer := func(c auth.Capacidade, h http.Handler) http.Handler {
		return authJWT(middleware.RequireCapability(c)(h))
	}

	mux := http.NewServeMux()

	// Health Check Route
	mux.Handle("GET /api/hello", http.HandlerFunc(routes.Hello))

	// Rotas de Login
	mux.HandleFunc("POST /api/login", routes.Login(pool, cfg.JWTSecret))

	// Rotas de CRUD usuários do portal
	mux.Handle("POST /api/usuarios", requer(auth.CapGerenciarUsuarios, routes.CreateUsuario(pool)))
	mux.Handle("GET /api/usuarios", requer(auth.CapGerenciarUsuarios, routes.ListUsuarios(pool)))
	mux.Handle("GET /api/usuarios/{id}", requer(auth.CapGerenciarUsuarios, routes.GetUsuario(pool)))
	mux.Handle("PATCH /api/usuarios/{id}", requer(auth.CapGerenciarUsuarios, routes.UpdateUsuario(pool)))
	mux.Handle("DELETE /api/usuarios/{id}", requer(auth.CapGerenciarUsuarios, routes.DeleteUsuario(pool)))

	// Rotas de Unidades (proxy da API remota)
	mux.Handle("GET /api/unidades", authJWT(routes.ListUnidades(api)))
	mux.Handle("GET /api/unidades/slug/{slug}", authJWT(routes.GetUnidadePorSlug(api)))
	mux.Handle("GET /api/unidades/{id}", authJWT(routes.GetUnidade(api)))
	mux.Handle("POST /api/unidades", requer(auth.CapGerenciarUnidades, routes.CreateUnidade(api)))
	mux.Handle("PATCH /api/unidades/{id}", requer(auth.CapGerenciarUnidades, routes.UpdateUnidade(api)))
	mux.Handle("DELETE /api/unidades/{id}", requer(auth.CapGerenciarUnidades, routes.DeleteUnidade(api)))

	// Rotas de Funcionários (proxy da API remota)
	mux.Handle("GET /api/funcionarios", authJWT(routes.ListFuncionarios(api)))
	mux.Handle("GET /api/funcionarios/{id}", authJWT(routes.GetFuncionario(api)))
	mux.Handle("POST /api/funcionarios", requer(auth.CapGerenciarFuncionarios, routes.CreateFuncionario(api)))
	mux.Handle("PATCH /api/funcionarios/{id}", requer(auth.CapGerenciarFuncionarios, routes.UpdateFuncionario(api)))
	mux.Handle("DELETE /api/funcionarios/{id}", requer(auth.CapGerenciarFuncionarios, routes.DeleteFuncionario(api)))

	// Rotas de Registros de Ponto
	mux.Handle("GET /api/registros", requer(auth.CapVerRegistros, routes.ListRegistros(api)))
	mux.Handle("GET /api/registros/calendario", requer(auth.CapVerRegistros, routes.CalendarioRegistros(api)))
	mux.Handle("GET /api/registros/locais", requer(auth.CapVerRegistros, routes.ListRegistrosLocais(pool)))
	mux.Handle("POST /api/registros", requer(auth.CapRegistrarPonto, routes.CreateRegistro(api, pool, hub)))

	// Rotas do leitor biométrico
	mux.Handle("POST /api/biometrico/registrar", requer(auth.CapRegistrarPonto, routes.RegistrarPontoBiometrico(leitor, api, pool, hub)))
	mux.Handle("POST /api/biometrico/cadastrar/{funcionario_id}", requer(auth.CapGerenciarFuncionarios, routes.CadastrarDigital(leitor, api)))

	// Relatórios
	mux.Handle("GET /api/relatorios/mensal", requer(auth.CapGerarRelatorios, routes.RelatorioMensal(api)))
	mux.Handle("GET /api/relatorios/levantamento", requer(auth.CapGerarRelatorios, routes.LevantamentoHoras(api)))

	// Feed ao vivo dos painéis
	mux.Handle("GET /api/ws/pontos", authJWT(hub.ServeWS()))

	handler := cors.Cors(cfg.AllowedOrigins, true /* usa cookies/credenciais? */)(mux)

	zap.S().Infof("Server listening on port %s...", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		zap.S().Fatalf("Error start server: %v", err)
	}
}

func buildLogger(ambiente string) *zap.Logger {
	if ambiente == "dev" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}
