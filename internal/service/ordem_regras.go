package service

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Status ───────────────────────────────────────────────────────────────────

var statusOrdem = map[string]bool{
	model.OrdemPendente:            true,
	model.OrdemEmAndamento:         true,
	model.OrdemAguardandoPeca:      true,
	model.OrdemAguardandoAprovacao: true,
	model.OrdemConcluida:           true,
	model.OrdemCancelada:           true,
}

func statusTerminal(s string) bool {
	return s == model.OrdemConcluida || s == model.OrdemCancelada
}

// statusDebitado reports whether an order in status s has its parts taken out
// of stock.
func statusDebitado(s string) bool {
	return s == model.OrdemEmAndamento || s == model.OrdemConcluida
}

// ValidarTransicao checks a status change. Non-terminal states reach any state;
// terminal states accept none. Same-status is not a change and always passes.
func ValidarTransicao(de, para string) error {
	if !statusOrdem[para] {
		return validacao("Status inválido: %s", para)
	}
	if de == para {
		return nil
	}
	if statusTerminal(de) {
		return transicaoInvalida("Ordem %s não pode mudar para %s", de, para)
	}
	return nil
}

// ── Numbering ────────────────────────────────────────────────────────────────

// ProximoNumeroOrdem derives the next order number from the current maximum.
// Numbers are 8-digit zero padded; a non-numeric maximum falls back to the
// last 8 digits of the current timestamp.
func ProximoNumeroOrdem(maior string, now time.Time) string {
	if maior == "" {
		return fmt.Sprintf("%08d", 1)
	}
	n, err := strconv.ParseInt(maior, 10, 64)
	if err != nil {
		ts := now.Format("20060102150405")
		return ts[len(ts)-8:]
	}
	return fmt.Sprintf("%08d", n+1)
}

// ── Totals ───────────────────────────────────────────────────────────────────

var cem = decimal.NewFromInt(100)

// totalItem is quantity × unit price minus the line discount.
func totalItem(quantidade int, unitario, desconto decimal.Decimal) decimal.Decimal {
	return unitario.Mul(decimal.NewFromInt(int64(quantidade))).Sub(desconto)
}

// CalcularTotais recomputes every derived money field of the order from its
// items, service value and discount settings.
func CalcularTotais(o *model.OrdemServico) {
	pecas := decimal.Zero
	for i := range o.Itens {
		it := &o.Itens[i]
		it.ValorTotal = totalItem(it.Quantidade, it.ValorUnitario, it.DescontoItem)
		if it.Tipo == model.ItemProduto {
			pecas = pecas.Add(it.ValorTotal)
		}
	}
	o.ValorPecas = pecas
	o.ValorSubtotal = pecas.Add(o.ValorServico)

	base := o.ValorSubtotal
	switch o.TipoDesconto {
	case model.DescontoVenda:
		base = o.ValorPecas
	case model.DescontoServico:
		base = o.ValorServico
	}
	o.ValorDesconto = o.PercentualDesconto.Div(cem).Mul(base).Round(2)
	o.ValorTotal = o.ValorSubtotal.Sub(o.ValorDesconto)
}

// ── Item quantities ──────────────────────────────────────────────────────────

// quantidadesPorProduto aggregates PRODUTO item quantities per product.
func quantidadesPorProduto(itens []model.ItemOrdem) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, it := range itens {
		if it.Tipo == model.ItemProduto && it.ProdutoID != nil {
			out[*it.ProdutoID] += it.Quantidade
		}
	}
	return out
}

// produtosOrdenados returns the keys in a stable order so row locks are always
// taken in the same sequence.
func produtosOrdenados(m map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	ordenarIDs(ids)
	return ids
}

func ordenarIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
