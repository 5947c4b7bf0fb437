package service

import (
	"context"
	"strings"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SugestaoService manages the catalog of usual part replacement intervals.
type SugestaoService interface {
	Criar(ctx context.Context, req dto.CriarSugestaoRequest) (*dto.SugestaoResponse, error)
	Listar(ctx context.Context, filter dto.SugestaoFilter) ([]dto.SugestaoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.SugestaoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarSugestaoRequest) (*dto.SugestaoResponse, error)
	// Deletar removes the entry for good.
	Deletar(ctx context.Context, id uuid.UUID) error
}

const msgSugestaoNaoEncontrada = "Sugestão de manutenção não encontrada"

type sugestaoService struct {
	repo repository.SugestaoRepository
}

func NewSugestaoService(repo repository.SugestaoRepository) SugestaoService {
	return &sugestaoService{repo: repo}
}

func (s *sugestaoService) Criar(ctx context.Context, req dto.CriarSugestaoRequest) (*dto.SugestaoResponse, error) {
	sug := &model.SugestaoManutencao{
		ID:             uuid.New(),
		NomePeca:       strings.TrimSpace(req.NomePeca),
		KmMediaTroca:   strings.TrimSpace(req.KmMediaTroca),
		Observacoes:    req.Observacoes,
		IntervaloKmMin: req.IntervaloKmMin,
		IntervaloKmMax: req.IntervaloKmMax,
		TipoServico:    req.TipoServico,
		Ativo:          req.Ativo == nil || *req.Ativo,
		OrdemExibicao:  req.OrdemExibicao,
	}
	if err := validarSugestao(sug); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sug); err != nil {
		return nil, err
	}
	log.Info().Str("id", sug.ID.String()).Str("nome_peca", sug.NomePeca).Msg("sugestao: criada")
	return sugestaoToResponse(sug), nil
}

func (s *sugestaoService) Listar(ctx context.Context, filter dto.SugestaoFilter) ([]dto.SugestaoResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SugestaoResponse, 0, len(list))
	for i := range list {
		out = append(out, *sugestaoToResponse(&list[i]))
	}
	return out, nil
}

func (s *sugestaoService) Obter(ctx context.Context, id uuid.UUID) (*dto.SugestaoResponse, error) {
	sug, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgSugestaoNaoEncontrada)
	}
	return sugestaoToResponse(sug), nil
}

func (s *sugestaoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarSugestaoRequest) (*dto.SugestaoResponse, error) {
	sug, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgSugestaoNaoEncontrada)
	}
	if req.NomePeca != nil {
		sug.NomePeca = strings.TrimSpace(*req.NomePeca)
	}
	if req.KmMediaTroca != nil {
		sug.KmMediaTroca = strings.TrimSpace(*req.KmMediaTroca)
	}
	if req.Observacoes != nil {
		sug.Observacoes = req.Observacoes
	}
	if req.IntervaloKmMin != nil {
		sug.IntervaloKmMin = req.IntervaloKmMin
	}
	if req.IntervaloKmMax != nil {
		sug.IntervaloKmMax = req.IntervaloKmMax
	}
	if req.TipoServico != nil {
		sug.TipoServico = req.TipoServico
	}
	if req.Ativo != nil {
		sug.Ativo = *req.Ativo
	}
	if req.OrdemExibicao != nil {
		sug.OrdemExibicao = req.OrdemExibicao
	}
	if err := validarSugestao(sug); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sug); err != nil {
		return nil, err
	}
	return sugestaoToResponse(sug), nil
}

func (s *sugestaoService) Deletar(ctx context.Context, id uuid.UUID) error {
	sug, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, msgSugestaoNaoEncontrada)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("id", id.String()).Str("nome_peca", sug.NomePeca).Msg("sugestao: removida")
	return nil
}

func validarSugestao(s *model.SugestaoManutencao) error {
	if s.NomePeca == "" {
		return validacao("Nome da peça é obrigatório")
	}
	if s.KmMediaTroca == "" {
		return validacao("Km média de troca é obrigatória")
	}
	if s.IntervaloKmMin != nil && s.IntervaloKmMax != nil && *s.IntervaloKmMin > *s.IntervaloKmMax {
		return validacao("Intervalo mínimo (%d km) maior que o máximo (%d km)", *s.IntervaloKmMin, *s.IntervaloKmMax)
	}
	return nil
}

func sugestaoToResponse(s *model.SugestaoManutencao) *dto.SugestaoResponse {
	return &dto.SugestaoResponse{
		ID:             s.ID.String(),
		NomePeca:       s.NomePeca,
		KmMediaTroca:   s.KmMediaTroca,
		Observacoes:    s.Observacoes,
		IntervaloKmMin: s.IntervaloKmMin,
		IntervaloKmMax: s.IntervaloKmMax,
		TipoServico:    s.TipoServico,
		Ativo:          s.Ativo,
		OrdemExibicao:  s.OrdemExibicao,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
