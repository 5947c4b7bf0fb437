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

// CategoriaService manages product categories. Names are unique ignoring case.
type CategoriaService interface {
	Criar(ctx context.Context, req dto.CriarCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:        c.ID,
		Nome:      c.Nome,
		Descricao: c.Descricao,
		Ativo:     c.Ativo,
	}
}

func (s *categoriaService) Criar(ctx context.Context, req dto.CriarCategoriaRequest) (dto.CategoriaResponse, error) {
	nome := strings.TrimSpace(req.Nome)
	if err := s.nomeDisponivel(ctx, nome, uuid.Nil); err != nil {
		return dto.CategoriaResponse{}, err
	}
	c := &model.Categoria{
		ID:        uuid.New(),
		Nome:      nome,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	if err := s.repo.Criar(ctx, c); err != nil {
		return dto.CategoriaResponse{}, conflitoOr(err, "Já existe uma categoria com esse nome")
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	c, err := s.repo.ObterPorID(ctx, id)
	if err != nil {
		return dto.CategoriaResponse{}, notFoundOr(err, "Categoria não encontrada")
	}
	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		if !strings.EqualFold(nome, c.Nome) {
			if err := s.nomeDisponivel(ctx, nome, id); err != nil {
				return dto.CategoriaResponse{}, err
			}
		}
		c.Nome = nome
	}
	if req.Descricao != nil {
		c.Descricao = req.Descricao
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if err := s.repo.Atualizar(ctx, c); err != nil {
		return dto.CategoriaResponse{}, conflitoOr(err, "Já existe uma categoria com esse nome")
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObterPorID(ctx, id); err != nil {
		return notFoundOr(err, "Categoria não encontrada")
	}
	return s.repo.Desativar(ctx, id)
}

func (s *categoriaService) nomeDisponivel(ctx context.Context, nome string, self uuid.UUID) error {
	existing, err := s.repo.ObterPorNome(ctx, nome)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != self {
		return conflito("Já existe uma categoria com esse nome")
	}
	return nil
}
