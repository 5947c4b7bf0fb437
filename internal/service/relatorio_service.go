package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// RelatorioService builds the stock and movement reports, as JSON or as
// spreadsheets.
type RelatorioService interface {
	Estoque(ctx context.Context) (*dto.RelatorioEstoqueResponse, error)
	Movimentos(ctx context.Context, filter dto.RelatorioMovimentosFilter) (*dto.RelatorioMovimentosResponse, error)
	EstoqueXLSX(ctx context.Context) ([]byte, error)
	MovimentosXLSX(ctx context.Context, filter dto.RelatorioMovimentosFilter) ([]byte, error)
}

type relatorioService struct {
	produtos   repository.ProdutoRepository
	lotes      repository.LoteRepository
	movimentos repository.MovimentoRepository
	now        func() time.Time
}

func NewRelatorioService(produtos repository.ProdutoRepository, lotes repository.LoteRepository, movimentos repository.MovimentoRepository) RelatorioService {
	return &relatorioService{produtos: produtos, lotes: lotes, movimentos: movimentos, now: time.Now}
}

// Estoque values each product by its remaining lot balances. Products
// without lots (stock from before lot tracking) are valued at nominal cost.
func (s *relatorioService) Estoque(ctx context.Context) (*dto.RelatorioEstoqueResponse, error) {
	produtos, err := s.produtos.ListAtivos(ctx)
	if err != nil {
		return nil, err
	}
	valores, err := s.lotes.ValorPorProduto(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.RelatorioEstoqueResponse{
		Itens:      make([]dto.RelatorioEstoqueItem, 0, len(produtos)),
		ValorTotal: decimal.Zero,
		GeradoEm:   s.now(),
	}
	for _, p := range produtos {
		valor, ok := valores[p.ID]
		if !ok && p.QuantidadeAtual > 0 {
			valor = p.PrecoCusto.Mul(decimal.NewFromInt(int64(p.QuantidadeAtual)))
		}
		resp.Itens = append(resp.Itens, dto.RelatorioEstoqueItem{
			ProdutoID:        p.ID.String(),
			Codigo:           p.Codigo,
			Nome:             p.Nome,
			Categoria:        p.Categoria,
			QuantidadeAtual:  p.QuantidadeAtual,
			QuantidadeMinima: p.QuantidadeMinima,
			Status:           p.Status(),
			PrecoCusto:       p.PrecoCusto,
			PrecoVenda:       p.PrecoVenda,
			ValorEstoque:     valor.Round(2),
		})
		resp.ValorTotal = resp.ValorTotal.Add(valor)
	}
	resp.ValorTotal = resp.ValorTotal.Round(2)
	return resp, nil
}

func (s *relatorioService) Movimentos(ctx context.Context, filter dto.RelatorioMovimentosFilter) (*dto.RelatorioMovimentosResponse, error) {
	if filter.Desde != nil && filter.Ate != nil && filter.Ate.Before(*filter.Desde) {
		return nil, validacao("Data final anterior à data inicial")
	}
	if filter.Tipo != "" && filter.Tipo != model.MovimentoEntrada && filter.Tipo != model.MovimentoSaida {
		return nil, validacao("Tipo de movimento inválido: %s", filter.Tipo)
	}
	movs, err := s.movimentos.ListPeriodo(ctx, filter.Desde, filter.Ate, filter.Tipo)
	if err != nil {
		return nil, err
	}
	resp := &dto.RelatorioMovimentosResponse{
		Movimentos:   make([]dto.MovimentoResponse, 0, len(movs)),
		TotalEntrada: decimal.Zero,
		TotalSaida:   decimal.Zero,
	}
	for i := range movs {
		m := &movs[i]
		nome := ""
		if m.Produto != nil {
			nome = m.Produto.Nome
		}
		resp.Movimentos = append(resp.Movimentos, *movimentoToResponse(m, nome))
		if m.Tipo == model.MovimentoEntrada {
			resp.TotalEntrada = resp.TotalEntrada.Add(m.ValorTotal)
		} else {
			resp.TotalSaida = resp.TotalSaida.Add(m.ValorTotal)
		}
	}
	return resp, nil
}

// ── Spreadsheets ─────────────────────────────────────────────────────────────

func (s *relatorioService) EstoqueXLSX(ctx context.Context) ([]byte, error) {
	rel, err := s.Estoque(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0, len(rel.Itens)+1)
	for _, it := range rel.Itens {
		categoria := ""
		if it.Categoria != nil {
			categoria = *it.Categoria
		}
		rows = append(rows, []interface{}{
			it.Codigo, it.Nome, categoria, it.QuantidadeAtual, it.QuantidadeMinima, it.Status,
			it.PrecoCusto.InexactFloat64(), it.PrecoVenda.InexactFloat64(), it.ValorEstoque.InexactFloat64(),
		})
	}
	rows = append(rows, []interface{}{"", "TOTAL", "", "", "", "", "", "", rel.ValorTotal.InexactFloat64()})
	return planilha("Estoque",
		[]string{"Código", "Produto", "Categoria", "Qtd. Atual", "Qtd. Mínima", "Status", "Custo", "Venda", "Valor em Estoque"},
		rows)
}

func (s *relatorioService) MovimentosXLSX(ctx context.Context, filter dto.RelatorioMovimentosFilter) ([]byte, error) {
	rel, err := s.Movimentos(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0, len(rel.Movimentos))
	for _, m := range rel.Movimentos {
		usuario := ""
		if m.UsuarioNome != nil {
			usuario = *m.UsuarioNome
		}
		rows = append(rows, []interface{}{
			m.CreatedAt.Format("02/01/2006 15:04"), m.ProdutoNome, m.Tipo, m.Origem, m.Quantidade,
			m.PrecoCusto.InexactFloat64(), m.ValorTotal.InexactFloat64(), m.EstoqueAnterior, m.EstoqueNovo, usuario,
		})
	}
	return planilha("Movimentos",
		[]string{"Data", "Produto", "Tipo", "Origem", "Quantidade", "Custo Unit.", "Valor Total", "Estoque Anterior", "Estoque Novo", "Usuário"},
		rows)
}

// planilha writes a single-sheet workbook with a bold header row.
func planilha(sheet string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
