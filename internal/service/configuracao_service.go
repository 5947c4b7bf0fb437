package service

import (
	"context"
	"errors"
	"strconv"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"gorm.io/gorm"
)

type ConfiguracaoService interface {
	Listar(ctx context.Context) ([]dto.ConfiguracaoResponse, error)
	Obter(ctx context.Context, chave string) (*dto.ConfiguracaoResponse, error)
	Atualizar(ctx context.Context, chave string, req dto.AtualizarConfiguracaoRequest) (*dto.ConfiguracaoResponse, error)
}

type configuracaoService struct {
	repo repository.ConfiguracaoRepository
}

func NewConfiguracaoService(repo repository.ConfiguracaoRepository) ConfiguracaoService {
	return &configuracaoService{repo: repo}
}

func (s *configuracaoService) Listar(ctx context.Context) ([]dto.ConfiguracaoResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConfiguracaoResponse, 0, len(list))
	for i := range list {
		out = append(out, configuracaoToResponse(&list[i]))
	}
	return out, nil
}

func (s *configuracaoService) Obter(ctx context.Context, chave string) (*dto.ConfiguracaoResponse, error) {
	c, err := s.repo.Get(ctx, chave)
	if err != nil {
		return nil, notFoundOr(err, "Configuração não encontrada")
	}
	r := configuracaoToResponse(c)
	return &r, nil
}

// Atualizar upserts a setting. Values of existing number and boolean keys
// must parse as such.
func (s *configuracaoService) Atualizar(ctx context.Context, chave string, req dto.AtualizarConfiguracaoRequest) (*dto.ConfiguracaoResponse, error) {
	c, err := s.repo.Get(ctx, chave)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c = &model.Configuracao{Chave: chave, Tipo: "string"}
	case err != nil:
		return nil, err
	}

	switch c.Tipo {
	case "number":
		if _, err := strconv.ParseFloat(req.Valor, 64); err != nil {
			return nil, validacao("Valor de %s deve ser numérico", chave)
		}
	case "boolean":
		if _, err := strconv.ParseBool(req.Valor); err != nil {
			return nil, validacao("Valor de %s deve ser true ou false", chave)
		}
	}
	c.Valor = req.Valor
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	r := configuracaoToResponse(c)
	return &r, nil
}

func configuracaoToResponse(c *model.Configuracao) dto.ConfiguracaoResponse {
	return dto.ConfiguracaoResponse{Chave: c.Chave, Valor: c.Valor, Descricao: c.Descricao, Tipo: c.Tipo}
}
