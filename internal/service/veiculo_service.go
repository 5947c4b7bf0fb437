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

type VeiculoService interface {
	Criar(ctx context.Context, req dto.VeiculoRequest) (*dto.VeiculoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.VeiculoResponse, error)
	Listar(ctx context.Context, filter dto.VeiculoFilter) (*dto.VeiculoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.VeiculoRequest) (*dto.VeiculoResponse, error)
	AtualizarKm(ctx context.Context, id uuid.UUID, km int) (*dto.VeiculoResponse, error)
	Transferir(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) (*dto.VeiculoResponse, error)
	BuscarPorPlaca(ctx context.Context, placa string) (*dto.VeiculoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type veiculoService struct {
	repo     repository.VeiculoRepository
	clientes repository.ClienteRepository
}

func NewVeiculoService(repo repository.VeiculoRepository, clientes repository.ClienteRepository) VeiculoService {
	return &veiculoService{repo: repo, clientes: clientes}
}

func (s *veiculoService) Criar(ctx context.Context, req dto.VeiculoRequest) (*dto.VeiculoResponse, error) {
	cliente, err := s.clienteAtivo(ctx, req.ClienteID)
	if err != nil {
		return nil, err
	}
	v := &model.Veiculo{ID: uuid.New(), Ativo: true}
	if err := s.aplicar(ctx, v, req); err != nil {
		return nil, err
	}
	v.ClienteID = cliente.ID
	v.KmAtual = req.KmAtual
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, conflitoOr(err, "Já existe um veículo com esta placa")
	}
	v.Cliente = cliente
	return veiculoToResponse(v), nil
}

func (s *veiculoService) Obter(ctx context.Context, id uuid.UUID) (*dto.VeiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Veículo não encontrado")
	}
	return veiculoToResponse(v), nil
}

func (s *veiculoService) Listar(ctx context.Context, filter dto.VeiculoFilter) (*dto.VeiculoListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VeiculoResponse, 0, len(list))
	for i := range list {
		data = append(data, *veiculoToResponse(&list[i]))
	}
	return &dto.VeiculoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Atualizar keeps the owner and odometer; use Transferir and AtualizarKm for those.
func (s *veiculoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.VeiculoRequest) (*dto.VeiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Veículo não encontrado")
	}
	if err := s.aplicar(ctx, v, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, conflitoOr(err, "Já existe um veículo com esta placa")
	}
	return veiculoToResponse(v), nil
}

func (s *veiculoService) AtualizarKm(ctx context.Context, id uuid.UUID, km int) (*dto.VeiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Veículo não encontrado")
	}
	if km < v.KmAtual {
		return nil, validacao("Quilometragem informada (%d) menor que a atual (%d)", km, v.KmAtual)
	}
	v.KmAtual = km
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return veiculoToResponse(v), nil
}

func (s *veiculoService) Transferir(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) (*dto.VeiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Veículo não encontrado")
	}
	cliente, err := s.clienteAtivo(ctx, clienteID.String())
	if err != nil {
		return nil, err
	}
	if v.ClienteID == cliente.ID {
		return nil, validacao("Veículo já pertence a este cliente")
	}
	v.ClienteID = cliente.ID
	v.Cliente = cliente
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return veiculoToResponse(v), nil
}

func (s *veiculoService) BuscarPorPlaca(ctx context.Context, placa string) (*dto.VeiculoResponse, error) {
	p := NormalizarPlaca(placa)
	if p == "" {
		return nil, validacao("Placa é obrigatória")
	}
	v, err := s.repo.FindByPlaca(ctx, p)
	if err != nil {
		return nil, notFoundOr(err, "Veículo não encontrado")
	}
	if !v.Ativo || (v.Cliente != nil && !v.Cliente.Ativo) {
		return nil, naoEncontrado("Veículo não encontrado")
	}
	return veiculoToResponse(v), nil
}

func (s *veiculoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Veículo não encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *veiculoService) clienteAtivo(ctx context.Context, raw string) (*model.Cliente, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, validacao("cliente_id inválido")
	}
	c, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Cliente não encontrado")
	}
	if !c.Ativo {
		return nil, validacao("Cliente %s está inativo", c.Nome)
	}
	return c, nil
}

func (s *veiculoService) aplicar(ctx context.Context, v *model.Veiculo, req dto.VeiculoRequest) error {
	var placa *string
	if req.Placa != nil {
		p := NormalizarPlaca(*req.Placa)
		if len(p) != 7 {
			return validacao("Placa deve ter 7 caracteres alfanuméricos")
		}
		existing, err := s.repo.FindByPlaca(ctx, p)
		switch {
		case err == nil && existing.ID != v.ID:
			return conflito("Já existe um veículo com esta placa")
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		placa = &p
	}
	v.Marca = strings.TrimSpace(req.Marca)
	v.Modelo = strings.TrimSpace(req.Modelo)
	v.Ano = req.Ano
	v.Cor = req.Cor
	v.Placa = placa
	v.Chassis = req.Chassis
	v.Renavam = req.Renavam
	v.Combustivel = req.Combustivel
	v.Observacoes = req.Observacoes
	return nil
}

// NormalizarPlaca upper-cases a plate and drops separators ("abc-1d23" → "ABC1D23").
func NormalizarPlaca(placa string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(placa) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func veiculoToResponse(v *model.Veiculo) *dto.VeiculoResponse {
	r := &dto.VeiculoResponse{
		ID:          v.ID.String(),
		ClienteID:   v.ClienteID.String(),
		Marca:       v.Marca,
		Modelo:      v.Modelo,
		Ano:         v.Ano,
		Cor:         v.Cor,
		Placa:       v.Placa,
		Chassis:     v.Chassis,
		Renavam:     v.Renavam,
		KmAtual:     v.KmAtual,
		Combustivel: v.Combustivel,
		Observacoes: v.Observacoes,
		Ativo:       v.Ativo,
	}
	if v.Cliente != nil {
		r.ClienteNome = v.Cliente.Nome
	}
	return r
}
