package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
	// Buscar looks an active customer up by CPF, CNPJ or phone number.
	Buscar(ctx context.Context, termo string) (*dto.ClienteBuscaResponse, error)
	Veiculos(ctx context.Context, id uuid.UUID) ([]dto.VeiculoResponse, error)
}

type clienteService struct {
	repo     repository.ClienteRepository
	veiculos repository.VeiculoRepository
}

func NewClienteService(repo repository.ClienteRepository, veiculos repository.VeiculoRepository) ClienteService {
	return &clienteService{repo: repo, veiculos: veiculos}
}

func (s *clienteService) Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	if err := s.validarDocumento(ctx, req.CpfCnpj, uuid.Nil); err != nil {
		return nil, err
	}
	c := &model.Cliente{ID: uuid.New(), Ativo: true}
	aplicarCliente(c, req)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Obter(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Cliente não encontrado")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		data = append(data, *clienteToResponse(&list[i]))
	}
	return &dto.ClienteListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPaginas(total, filter.Limit),
	}, nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Cliente não encontrado")
	}
	if err := s.validarDocumento(ctx, req.CpfCnpj, id); err != nil {
		return nil, err
	}
	aplicarCliente(c, req)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Cliente não encontrado")
	}
	return s.repo.SetAtivo(ctx, id, false)
}

func (s *clienteService) Reativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Cliente não encontrado")
	}
	return s.repo.SetAtivo(ctx, id, true)
}

// ── Buscar ───────────────────────────────────────────────────────────────────
// An 11-digit term is ambiguous: a valid CPF is tried as a document first,
// anything else as a phone first, then the other way round.

func (s *clienteService) Buscar(ctx context.Context, termo string) (*dto.ClienteBuscaResponse, error) {
	digitos := SoDigitos(termo)
	if digitos == "" {
		return &dto.ClienteBuscaResponse{Mensagem: "Termo de busca não pode estar vazio", Veiculos: []dto.VeiculoResponse{}}, nil
	}

	tentativas := []func(context.Context, string) (*model.Cliente, error){s.repo.FindByDocumento}
	if len(digitos) == 11 {
		if ValidarCPF(digitos) {
			tentativas = append(tentativas, s.repo.FindByTelefone)
		} else {
			tentativas = []func(context.Context, string) (*model.Cliente, error){s.repo.FindByTelefone, s.repo.FindByDocumento}
		}
	}

	var cliente *model.Cliente
	for _, buscar := range tentativas {
		c, err := buscar(ctx, digitos)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if c.Ativo {
			cliente = c
			break
		}
	}
	if cliente == nil {
		return &dto.ClienteBuscaResponse{
			Mensagem: "Cliente não encontrado. Deseja cadastrar um novo cliente?",
			Veiculos: []dto.VeiculoResponse{},
		}, nil
	}

	veiculos, err := s.Veiculos(ctx, cliente.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ClienteBuscaResponse{Encontrado: true, Cliente: clienteToResponse(cliente), Veiculos: veiculos}, nil
}

func (s *clienteService) Veiculos(ctx context.Context, id uuid.UUID) ([]dto.VeiculoResponse, error) {
	list, err := s.veiculos.ListByCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VeiculoResponse, 0, len(list))
	for i := range list {
		out = append(out, *veiculoToResponse(&list[i]))
	}
	return out, nil
}

// validarDocumento rejects malformed CPFs and documents already used by
// another customer.
func (s *clienteService) validarDocumento(ctx context.Context, doc *string, self uuid.UUID) error {
	if doc == nil || strings.TrimSpace(*doc) == "" {
		return nil
	}
	digitos := SoDigitos(*doc)
	switch len(digitos) {
	case 11:
		if !ValidarCPF(digitos) {
			return validacao("CPF inválido")
		}
	case 14:
	default:
		return validacao("CPF/CNPJ deve ter 11 ou 14 dígitos")
	}
	existing, err := s.repo.FindByDocumento(ctx, digitos)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return conflito("Já existe um cliente com este CPF/CNPJ")
	}
	return nil
}

// ValidarCPF checks the two CPF check digits. Repeated-digit numbers are invalid.
func ValidarCPF(cpf string) bool {
	cpf = SoDigitos(cpf)
	if len(cpf) != 11 || strings.Count(cpf, cpf[:1]) == 11 {
		return false
	}
	d := make([]int, 11)
	for i, r := range cpf {
		d[i] = int(r - '0')
	}
	digito := func(n int) int {
		soma := 0
		for i := 0; i < n; i++ {
			soma += d[i] * (n + 1 - i)
		}
		resto := soma % 11
		if resto < 2 {
			return 0
		}
		return 11 - resto
	}
	return digito(9) == d[9] && digito(10) == d[10]
}

// SoDigitos strips everything but ASCII digits.
func SoDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func aplicarCliente(c *model.Cliente, req dto.ClienteRequest) {
	c.Nome = strings.TrimSpace(req.Nome)
	c.CpfCnpj = req.CpfCnpj
	c.Email = req.Email
	c.Telefone = req.Telefone
	c.Telefone2 = req.Telefone2
	c.Whatsapp = req.Whatsapp
	c.Endereco = req.Endereco
	c.Numero = req.Numero
	c.Complemento = req.Complemento
	c.Bairro = req.Bairro
	c.Cidade = req.Cidade
	c.Estado = req.Estado
	c.Cep = req.Cep
	c.Tipo = valorOuPadrao(req.Tipo, "PF")
	c.DataNascimento = req.DataNascimento
	c.NomeFantasia = req.NomeFantasia
	c.RazaoSocial = req.RazaoSocial
	c.ContatoResponsavel = req.ContatoResponsavel
	c.RgIe = req.RgIe
	c.Observacoes = req.Observacoes
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:             c.ID.String(),
		Nome:           c.Nome,
		CpfCnpj:        c.CpfCnpj,
		Email:          c.Email,
		Telefone:       c.Telefone,
		Whatsapp:       c.Whatsapp,
		Endereco:       c.Endereco,
		Cidade:         c.Cidade,
		Estado:         c.Estado,
		Cep:            c.Cep,
		Tipo:           c.Tipo,
		DataNascimento: c.DataNascimento,
		RazaoSocial:    c.RazaoSocial,
		Observacoes:    c.Observacoes,
		Ativo:          c.Ativo,
	}
}
