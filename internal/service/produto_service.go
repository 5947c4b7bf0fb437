package service

import (
	"context"
	"errors"
	"strings"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const margemLucroPadrao = 50

// ProdutoService defines the business logic contract for products. Stock
// quantities are never written here; see EstoqueService.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	BaixoEstoque(ctx context.Context) ([]dto.ProdutoResponse, error)
	HistoricoPrecos(ctx context.Context, id uuid.UUID, page, limit int) ([]dto.HistoricoPrecoItem, int64, error)
	// AplicarMargem reprices every active product with cost from its cost and
	// the margin (percent). A nil margin uses the configured default.
	AplicarMargem(ctx context.Context, margem *decimal.Decimal) (*dto.AplicarMargemResponse, error)
}

type produtoService struct {
	repo         repository.ProdutoRepository
	precos       repository.HistoricoPrecoRepository
	fornecedores repository.FornecedorRepository
	config       repository.ConfiguracaoRepository
	cache        produtoCache
}

func NewProdutoService(
	repo repository.ProdutoRepository,
	precos repository.HistoricoPrecoRepository,
	fornecedores repository.FornecedorRepository,
	config repository.ConfiguracaoRepository,
	rdb *redis.Client,
) ProdutoService {
	return &produtoService{repo: repo, precos: precos, fornecedores: fornecedores, config: config, cache: produtoCache{rdb: rdb}}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	codigo := strings.TrimSpace(req.Codigo)
	if _, err := s.repo.FindByCodigo(ctx, codigo); err == nil {
		return nil, conflito("Já existe um produto com o código " + codigo)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if req.PrecoCusto.IsNegative() || req.PrecoVenda.IsNegative() {
		return nil, validacao("Preços não podem ser negativos")
	}
	fornecedorID, err := s.resolverFornecedor(ctx, req.FornecedorID)
	if err != nil {
		return nil, err
	}

	p := &model.Produto{
		ID:               uuid.New(),
		Codigo:           codigo,
		Nome:             strings.TrimSpace(req.Nome),
		Descricao:        req.Descricao,
		Categoria:        req.Categoria,
		FornecedorID:     fornecedorID,
		PrecoCusto:       req.PrecoCusto,
		PrecoVenda:       req.PrecoVenda,
		QuantidadeMinima: req.QuantidadeMinima,
		Unidade:          valorOuPadrao(req.Unidade, "UN"),
		Localizacao:      req.Localizacao,
		Ativo:            true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, conflitoOr(err, "Já existe um produto com o código "+codigo)
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	if resp, ok := s.cache.get(ctx, id); ok {
		return resp, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Produto não encontrado")
	}
	resp := produtoToResponse(p)
	s.cache.set(ctx, id, resp)
	return resp, nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProdutoResponse, 0, len(list))
	for i := range list {
		data = append(data, *produtoToResponse(&list[i]))
	}
	return &dto.ProdutoListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPaginas(total, filter.Limit),
	}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Produto não encontrado")
	}
	custoAntes, vendaAntes := p.PrecoCusto, p.PrecoVenda

	if req.Nome != nil {
		p.Nome = strings.TrimSpace(*req.Nome)
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.Categoria != nil {
		p.Categoria = req.Categoria
	}
	if req.FornecedorID != nil {
		p.FornecedorID, err = s.resolverFornecedor(ctx, req.FornecedorID)
		if err != nil {
			return nil, err
		}
	}
	if req.PrecoCusto != nil {
		if req.PrecoCusto.IsNegative() {
			return nil, validacao("Preço de custo não pode ser negativo")
		}
		p.PrecoCusto = *req.PrecoCusto
	}
	if req.PrecoVenda != nil {
		if req.PrecoVenda.IsNegative() {
			return nil, validacao("Preço de venda não pode ser negativo")
		}
		p.PrecoVenda = *req.PrecoVenda
	}
	if req.QuantidadeMinima != nil {
		p.QuantidadeMinima = *req.QuantidadeMinima
	}
	if req.Unidade != nil {
		p.Unidade = *req.Unidade
	}
	if req.Localizacao != nil {
		p.Localizacao = req.Localizacao
	}
	if req.Ativo != nil {
		p.Ativo = *req.Ativo
	}

	precoMudou := !custoAntes.Equal(p.PrecoCusto) || !vendaAntes.Equal(p.PrecoVenda)
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		if !precoMudou {
			return nil
		}
		return s.precos.CreateTx(tx, &model.HistoricoPreco{
			ID:          uuid.New(),
			ProdutoID:   p.ID,
			CustoAntes:  custoAntes,
			CustoDepois: p.PrecoCusto,
			VendaAntes:  vendaAntes,
			VendaDepois: p.PrecoVenda,
			Motivo:      model.MotivoPrecoManual,
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, id)
	return produtoToResponse(p), nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Produto não encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, id)
	return nil
}

func (s *produtoService) BaixoEstoque(ctx context.Context) ([]dto.ProdutoResponse, error) {
	list, err := s.repo.ListBaixoEstoque(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(list))
	for i := range list {
		out = append(out, *produtoToResponse(&list[i]))
	}
	return out, nil
}

func (s *produtoService) HistoricoPrecos(ctx context.Context, id uuid.UUID, page, limit int) ([]dto.HistoricoPrecoItem, int64, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, 0, notFoundOr(err, "Produto não encontrado")
	}
	rows, total, err := s.precos.ListByProduto(ctx, id, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.HistoricoPrecoItem, 0, len(rows))
	for _, h := range rows {
		item := dto.HistoricoPrecoItem{
			ID:          h.ID.String(),
			ProdutoID:   h.ProdutoID.String(),
			CustoAntes:  h.CustoAntes,
			CustoDepois: h.CustoDepois,
			VendaAntes:  h.VendaAntes,
			VendaDepois: h.VendaDepois,
			Motivo:      h.Motivo,
			CreatedAt:   h.CreatedAt,
		}
		if h.FornecedorID != nil {
			fid := h.FornecedorID.String()
			item.FornecedorID = &fid
		}
		out = append(out, item)
	}
	return out, total, nil
}

// ── AplicarMargem ────────────────────────────────────────────────────────────

func (s *produtoService) AplicarMargem(ctx context.Context, margem *decimal.Decimal) (*dto.AplicarMargemResponse, error) {
	m := s.margemPadrao(ctx)
	if margem != nil {
		m = *margem
	}
	if m.IsNegative() {
		return nil, validacao("Margem não pode ser negativa")
	}
	fator := decimal.NewFromInt(1).Add(m.Div(cem))

	produtos, err := s.repo.ListAtivosComCusto(ctx)
	if err != nil {
		return nil, err
	}

	var afetados []uuid.UUID
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, p := range produtos {
			novaVenda := p.PrecoCusto.Mul(fator).Round(2)
			if novaVenda.Equal(p.PrecoVenda) {
				continue
			}
			if err := s.repo.UpdatePrecosTx(tx, p.ID, p.PrecoCusto, novaVenda); err != nil {
				return err
			}
			h := &model.HistoricoPreco{
				ID:          uuid.New(),
				ProdutoID:   p.ID,
				CustoAntes:  p.PrecoCusto,
				CustoDepois: p.PrecoCusto,
				VendaAntes:  p.PrecoVenda,
				VendaDepois: novaVenda,
				Motivo:      model.MotivoPrecoMargem,
			}
			if err := s.precos.CreateTx(tx, h); err != nil {
				return err
			}
			afetados = append(afetados, p.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, afetados...)
	log.Info().Str("margem", m.String()).Int("produtos", len(afetados)).Msg("produto: margem aplicada")
	return &dto.AplicarMargemResponse{Margem: m, ProdutosAfetados: len(afetados)}, nil
}

// margemPadrao reads the configured default margin, falling back to 50%.
func (s *produtoService) margemPadrao(ctx context.Context) decimal.Decimal {
	padrao := decimal.NewFromInt(margemLucroPadrao)
	if s.config == nil {
		return padrao
	}
	c, err := s.config.Get(ctx, model.ConfigMargemLucroPadrao)
	if err != nil {
		return padrao
	}
	m, err := decimal.NewFromString(strings.TrimSpace(c.Valor))
	if err != nil {
		log.Warn().Str("valor", c.Valor).Msg("produto: margem_lucro_padrao inválida, usando padrão")
		return padrao
	}
	return m
}

func (s *produtoService) resolverFornecedor(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, validacao("fornecedor_id inválido")
	}
	if _, err := s.fornecedores.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "Fornecedor não encontrado")
	}
	return &id, nil
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	resp := &dto.ProdutoResponse{
		ID:               p.ID.String(),
		Codigo:           p.Codigo,
		Nome:             p.Nome,
		Descricao:        p.Descricao,
		Categoria:        p.Categoria,
		PrecoCusto:       p.PrecoCusto,
		PrecoVenda:       p.PrecoVenda,
		QuantidadeAtual:  p.QuantidadeAtual,
		QuantidadeMinima: p.QuantidadeMinima,
		Unidade:          p.Unidade,
		Localizacao:      p.Localizacao,
		Status:           p.Status(),
		Ativo:            p.Ativo,
	}
	if p.FornecedorID != nil {
		fid := p.FornecedorID.String()
		resp.FornecedorID = &fid
	}
	return resp
}
