package service

import (
	"context"
	"errors"
	"strings"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorService interface {
	Criar(ctx context.Context, req dto.FornecedorRequest) (*dto.FornecedorResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error)
	Listar(ctx context.Context, search string, incluirInativos bool) ([]dto.FornecedorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.FornecedorRequest) (*dto.FornecedorResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type fornecedorService struct {
	repo repository.FornecedorRepository
}

func NewFornecedorService(repo repository.FornecedorRepository) FornecedorService {
	return &fornecedorService{repo: repo}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.FornecedorRequest) (*dto.FornecedorResponse, error) {
	f := &model.Fornecedor{ID: uuid.New(), Ativo: true}
	if err := s.aplicar(ctx, f, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, conflitoOr(err, "Já existe um fornecedor com este CNPJ")
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Obter(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Fornecedor não encontrado")
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Listar(ctx context.Context, search string, incluirInativos bool) ([]dto.FornecedorResponse, error) {
	list, err := s.repo.List(ctx, strings.TrimSpace(search), incluirInativos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FornecedorResponse, 0, len(list))
	for i := range list {
		out = append(out, *fornecedorToResponse(&list[i]))
	}
	return out, nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.FornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Fornecedor não encontrado")
	}
	if err := s.aplicar(ctx, f, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, conflitoOr(err, "Já existe um fornecedor com este CNPJ")
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.setAtivo(ctx, id, false)
}

func (s *fornecedorService) Reativar(ctx context.Context, id uuid.UUID) error {
	return s.setAtivo(ctx, id, true)
}

func (s *fornecedorService) setAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Fornecedor não encontrado")
	}
	return s.repo.SetAtivo(ctx, id, ativo)
}

func (s *fornecedorService) aplicar(ctx context.Context, f *model.Fornecedor, req dto.FornecedorRequest) error {
	var cnpj *string
	if req.Cnpj != nil && strings.TrimSpace(*req.Cnpj) != "" {
		c := SoDigitos(*req.Cnpj)
		if len(c) != 14 {
			return validacao("CNPJ deve ter 14 dígitos")
		}
		existing, err := s.repo.FindByCnpj(ctx, c)
		switch {
		case err == nil && existing.ID != f.ID:
			return conflito("Já existe um fornecedor com este CNPJ")
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		cnpj = &c
	}
	f.Nome = strings.TrimSpace(req.Nome)
	f.RazaoSocial = req.RazaoSocial
	f.Cnpj = cnpj
	f.Email = req.Email
	f.Telefone = req.Telefone
	f.Endereco = req.Endereco
	f.Cidade = req.Cidade
	f.Estado = req.Estado
	f.Cep = req.Cep
	f.Contato = req.Contato
	f.Observacoes = req.Observacoes
	return nil
}

func fornecedorToResponse(f *model.Fornecedor) *dto.FornecedorResponse {
	return &dto.FornecedorResponse{
		ID:          f.ID.String(),
		Nome:        f.Nome,
		RazaoSocial: f.RazaoSocial,
		Cnpj:        f.Cnpj,
		Email:       f.Email,
		Telefone:    f.Telefone,
		Endereco:    f.Endereco,
		Cidade:      f.Cidade,
		Estado:      f.Estado,
		Cep:         f.Cep,
		Contato:     f.Contato,
		Observacoes: f.Observacoes,
		Ativo:       f.Ativo,
	}
}
