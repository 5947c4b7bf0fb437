package service

import (
	"sort"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumoFIFO is the quantity taken from one lot.
type ConsumoFIFO struct {
	LoteID        uuid.UUID
	Quantidade    int
	CustoUnitario decimal.Decimal
}

// ResultadoFIFO is the outcome of one FIFO exit.
type ResultadoFIFO struct {
	Consumos   []ConsumoFIFO
	CustoTotal decimal.Decimal
	// CustoMedio is CustoTotal / requested quantity, zero for a zero request.
	CustoMedio decimal.Decimal
}

// ConsumirFIFO takes quantidade units from lotes, oldest entry first, and
// decrements their SaldoAtual in place. Inactive or empty lots are skipped.
// When the lots cannot cover the request it returns *EstoqueInsuficienteError
// and leaves every lot untouched.
func ConsumirFIFO(lotes []model.LoteEstoque, quantidade int) (*ResultadoFIFO, error) {
	if quantidade < 0 {
		return nil, validacao("Quantidade deve ser maior que zero")
	}
	res := &ResultadoFIFO{CustoTotal: decimal.Zero, CustoMedio: decimal.Zero}
	if quantidade == 0 {
		return res, nil
	}

	sort.SliceStable(lotes, func(i, j int) bool {
		if !lotes[i].DataEntrada.Equal(lotes[j].DataEntrada) {
			return lotes[i].DataEntrada.Before(lotes[j].DataEntrada)
		}
		return lotes[i].ID.String() < lotes[j].ID.String()
	})

	disponivel := SaldoDisponivel(lotes)
	if disponivel < quantidade {
		return nil, &EstoqueInsuficienteError{Disponivel: disponivel, Solicitado: quantidade}
	}

	restante := quantidade
	for i := range lotes {
		if restante == 0 {
			break
		}
		l := &lotes[i]
		if !l.Ativo || l.SaldoAtual <= 0 {
			continue
		}
		q := min(l.SaldoAtual, restante)
		l.SaldoAtual -= q
		restante -= q
		res.Consumos = append(res.Consumos, ConsumoFIFO{LoteID: l.ID, Quantidade: q, CustoUnitario: l.PrecoCustoUnitario})
		res.CustoTotal = res.CustoTotal.Add(l.PrecoCustoUnitario.Mul(decimal.NewFromInt(int64(q))))
	}
	res.CustoMedio = res.CustoTotal.Div(decimal.NewFromInt(int64(quantidade)))
	return res, nil
}

// SaldoDisponivel sums the balance of active lots.
func SaldoDisponivel(lotes []model.LoteEstoque) int {
	total := 0
	for _, l := range lotes {
		if l.Ativo && l.SaldoAtual > 0 {
			total += l.SaldoAtual
		}
	}
	return total
}
