package service

import (
	"context"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EstoqueService owns manual stock operations. Every change goes through the
// lot ledger so product quantity and lot balances move together.
type EstoqueService interface {
	RegistrarEntrada(ctx context.Context, req dto.EntradaEstoqueRequest, ator *Ator) (*dto.MovimentoResponse, error)
	RegistrarSaida(ctx context.Context, req dto.SaidaEstoqueRequest, ator *Ator) (*dto.MovimentoResponse, error)
	AjustarEstoque(ctx context.Context, produtoID uuid.UUID, req dto.AjusteEstoqueRequest, ator *Ator) (*dto.MovimentoResponse, error)
	ListarMovimentos(ctx context.Context, filter dto.MovimentoFilter) (*dto.MovimentoListResponse, error)
	ListarLotes(ctx context.Context, filter dto.LoteFilter) ([]dto.LoteResponse, error)
	ObterLote(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error)
}

type estoqueService struct {
	ledger       *ledger
	produtos     repository.ProdutoRepository
	lotes        repository.LoteRepository
	movimentos   repository.MovimentoRepository
	fornecedores repository.FornecedorRepository
	cache        produtoCache
}

func NewEstoqueService(
	produtos repository.ProdutoRepository,
	lotes repository.LoteRepository,
	movimentos repository.MovimentoRepository,
	precos repository.HistoricoPrecoRepository,
	fornecedores repository.FornecedorRepository,
	rdb *redis.Client,
) EstoqueService {
	return &estoqueService{
		ledger:       newLedger(produtos, lotes, movimentos, precos),
		produtos:     produtos,
		lotes:        lotes,
		movimentos:   movimentos,
		fornecedores: fornecedores,
		cache:        produtoCache{rdb: rdb},
	}
}

// ── RegistrarEntrada ─────────────────────────────────────────────────────────

func (s *estoqueService) RegistrarEntrada(ctx context.Context, req dto.EntradaEstoqueRequest, ator *Ator) (*dto.MovimentoResponse, error) {
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, validacao("produto_id inválido")
	}
	var fornecedorID *uuid.UUID
	if req.FornecedorID != nil && *req.FornecedorID != "" {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, validacao("fornecedor_id inválido")
		}
		if _, err := s.fornecedores.FindByID(ctx, fid); err != nil {
			return nil, notFoundOr(err, "Fornecedor não encontrado")
		}
		fornecedorID = &fid
	}

	var (
		mov  *model.MovimentoEstoque
		nome string
	)
	err = runTx(ctx, s.produtos.DB(), func(tx *gorm.DB) error {
		prod, err := s.produtos.FindByIDForUpdateTx(tx, produtoID)
		if err != nil {
			return notFoundOr(err, "Produto não encontrado")
		}
		if !prod.Ativo {
			return validacao("Produto %s está inativo", prod.Nome)
		}
		nome = prod.Nome

		custo := req.PrecoCusto
		if custo.IsZero() {
			custo = prod.PrecoCusto
		}
		mov, _, err = s.ledger.entradaTx(tx, entradaParams{
			ProdutoID:       produtoID,
			Quantidade:      req.Quantidade,
			Custo:           custo,
			PrecoVenda:      req.PrecoVenda,
			FornecedorID:    fornecedorID,
			NumeroLote:      req.NumeroLote,
			DataValidade:    req.DataValidade,
			Origem:          model.OrigemCompra,
			AtualizarPrecos: true,
			Motivo:          req.Motivo,
			Observacoes:     req.Observacoes,
			Ator:            ator,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, produtoID)
	log.Info().
		Str("produto_id", produtoID.String()).
		Int("quantidade", req.Quantidade).
		Str("custo", mov.PrecoCusto.StringFixed(2)).
		Msg("estoque: entrada registrada")
	return movimentoToResponse(mov, nome), nil
}

// ── RegistrarSaida ───────────────────────────────────────────────────────────

func (s *estoqueService) RegistrarSaida(ctx context.Context, req dto.SaidaEstoqueRequest, ator *Ator) (*dto.MovimentoResponse, error) {
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, validacao("produto_id inválido")
	}

	var mov *model.MovimentoEstoque
	err = runTx(ctx, s.produtos.DB(), func(tx *gorm.DB) error {
		var err error
		mov, err = s.ledger.saidaTx(tx, saidaParams{
			ProdutoID:   produtoID,
			Quantidade:  req.Quantidade,
			Origem:      model.OrigemAjuste,
			Motivo:      req.Motivo,
			Observacoes: req.Observacoes,
			Ator:        ator,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, produtoID)
	return movimentoToResponse(mov, ""), nil
}

// ── AjustarEstoque ───────────────────────────────────────────────────────────
// Sets the product to an absolute quantity. A positive difference enters a lot
// at the product's nominal cost; a negative one leaves by FIFO.

func (s *estoqueService) AjustarEstoque(ctx context.Context, produtoID uuid.UUID, req dto.AjusteEstoqueRequest, ator *Ator) (*dto.MovimentoResponse, error) {
	if req.NovoEstoque < 0 {
		return nil, validacao("Estoque não pode ser negativo")
	}
	motivo := req.Motivo
	if motivo == nil || *motivo == "" {
		m := "Ajuste de inventário"
		motivo = &m
	}

	var mov *model.MovimentoEstoque
	err := runTx(ctx, s.produtos.DB(), func(tx *gorm.DB) error {
		prod, err := s.produtos.FindByIDForUpdateTx(tx, produtoID)
		if err != nil {
			return notFoundOr(err, "Produto não encontrado")
		}
		diff := req.NovoEstoque - prod.QuantidadeAtual
		switch {
		case diff == 0:
			return validacao("Estoque já está em %d", prod.QuantidadeAtual)
		case diff > 0:
			mov, _, err = s.ledger.entradaTx(tx, entradaParams{
				ProdutoID:  produtoID,
				Quantidade: diff,
				Custo:      prod.PrecoCusto,
				Origem:     model.OrigemAjuste,
				Motivo:     motivo,
				Ator:       ator,
			})
		default:
			mov, err = s.ledger.saidaTx(tx, saidaParams{
				ProdutoID:  produtoID,
				Quantidade: -diff,
				Origem:     model.OrigemAjuste,
				Motivo:     motivo,
				Ator:       ator,
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, produtoID)
	log.Info().
		Str("produto_id", produtoID.String()).
		Int("novo_estoque", req.NovoEstoque).
		Str("tipo", mov.Tipo).
		Msg("estoque: ajuste registrado")
	return movimentoToResponse(mov, ""), nil
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *estoqueService) ListarMovimentos(ctx context.Context, filter dto.MovimentoFilter) (*dto.MovimentoListResponse, error) {
	movs, total, err := s.movimentos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoResponse, 0, len(movs))
	for i := range movs {
		nome := ""
		if movs[i].Produto != nil {
			nome = movs[i].Produto.Nome
		}
		out = append(out, *movimentoToResponse(&movs[i], nome))
	}
	return &dto.MovimentoListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *estoqueService) ListarLotes(ctx context.Context, filter dto.LoteFilter) ([]dto.LoteResponse, error) {
	if filter.ProdutoID != "" {
		if _, err := uuid.Parse(filter.ProdutoID); err != nil {
			return nil, validacao("produto_id inválido")
		}
	}
	lotes, err := s.lotes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		out = append(out, *loteToResponse(&lotes[i]))
	}
	return out, nil
}

func (s *estoqueService) ObterLote(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error) {
	l, err := s.lotes.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Lote não encontrado")
	}
	return loteToResponse(l), nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func movimentoToResponse(m *model.MovimentoEstoque, produtoNome string) *dto.MovimentoResponse {
	resp := &dto.MovimentoResponse{
		ID:              m.ID.String(),
		ProdutoID:       m.ProdutoID.String(),
		ProdutoNome:     produtoNome,
		Tipo:            m.Tipo,
		Origem:          m.Origem,
		Quantidade:      m.Quantidade,
		PrecoCusto:      m.PrecoCusto,
		PrecoVenda:      m.PrecoVenda,
		ValorTotal:      m.ValorTotal,
		EstoqueAnterior: m.EstoqueAnterior,
		EstoqueNovo:     m.EstoqueNovo,
		Motivo:          m.Motivo,
		Observacoes:     m.Observacoes,
		UsuarioNome:     m.UsuarioNome,
		CreatedAt:       m.CreatedAt,
	}
	if m.OrdemServicoID != nil {
		s := m.OrdemServicoID.String()
		resp.OrdemServicoID = &s
	}
	return resp
}

func loteToResponse(l *model.LoteEstoque) *dto.LoteResponse {
	resp := &dto.LoteResponse{
		ID:                 l.ID.String(),
		ProdutoID:          l.ProdutoID.String(),
		NumeroLote:         l.NumeroLote,
		QuantidadeInicial:  l.QuantidadeInicial,
		SaldoAtual:         l.SaldoAtual,
		PrecoCustoUnitario: l.PrecoCustoUnitario,
		PrecoVendaUnitario: l.PrecoVendaUnitario,
		DataEntrada:        l.DataEntrada,
		DataValidade:       l.DataValidade,
		Ativo:              l.Ativo,
	}
	if l.Produto != nil {
		resp.ProdutoNome = l.Produto.Nome
	}
	return resp
}
