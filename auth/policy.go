package auth

// Capacidade é uma permissão concreta do portal. O papel do usuário é
// traduzido em um conjunto de capacidades por uma única função, em vez
// de condicionais de papel espalhadas pelos handlers.
type Capacidade string

const (
	CapGerenciarUsuarios     Capacidade = "usuarios:gerenciar"
	CapGerenciarUnidades     Capacidade = "unidades:gerenciar"
	CapGerenciarFuncionarios Capacidade = "funcionarios:gerenciar"
	CapVerRegistros          Capacidade = "registros:ver"
	CapRegistrarPonto        Capacidade = "ponto:registrar"
	CapGerarRelatorios       Capacidade = "relatorios:gerar"
)

var porPapel = map[string][]Capacidade{
	"admin": {
		CapGerenciarUsuarios, CapGerenciarUnidades, CapGerenciarFuncionarios,
		CapVerRegistros, CapRegistrarPonto, CapGerarRelatorios,
	},
	"rh": {
		CapGerenciarFuncionarios, CapVerRegistros, CapGerarRelatorios,
	},
	"gestor": {
		CapVerRegistros, CapRegistrarPonto, CapGerarRelatorios,
	},
	"funcionario": {
		CapRegistrarPonto,
	},
}

// Capacidades devolve o conjunto de capacidades do papel; papel
// desconhecido não tem nenhuma.
func Capacidades(papel string) []Capacidade {
	return porPapel[papel]
}

func Tem(caps []Capacidade, c Capacidade) bool {
	for _, v := range caps {
		if v == c {
			return true
		}
	}
	return false
}
