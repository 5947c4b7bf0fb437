package infra

// pdf.go: printable service order (A4) built with go-pdf/fpdf.
// The file is written to storagePath/os_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"autocenter/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateOrdemPDF renders an order with its customer, vehicle, items and
// totals. The order must come with Cliente, Veiculo and Itens loaded.
// Returns the path of the generated file.
func GenerateOrdemPDF(o *model.OrdemServico, shopName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("os_%s.pdf", o.Numero))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	// Core fonts are cp1252; accents need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	if shopName == "" {
		shopName = "AutoCenter"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(shopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Ordem de Serviço Nº "+o.Numero), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	linha := func(label, valor string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-35, 5, tr(valor), "", 1, "L", false, 0, "")
	}
	linha("Status:", o.Status)
	linha("Abertura:", o.DataAbertura.Format("02/01/2006 15:04"))
	if o.DataConclusao != nil {
		linha("Conclusão:", o.DataConclusao.Format("02/01/2006 15:04"))
	}
	if o.Cliente != nil {
		linha("Cliente:", o.Cliente.Nome)
		if o.Cliente.CpfCnpj != nil {
			linha("CPF/CNPJ:", *o.Cliente.CpfCnpj)
		}
		if o.Cliente.Telefone != nil {
			linha("Telefone:", *o.Cliente.Telefone)
		}
	}
	if o.Veiculo != nil {
		v := o.Veiculo
		desc := fmt.Sprintf("%s %s %d", v.Marca, v.Modelo, v.Ano)
		if v.Placa != nil {
			desc += " - " + *v.Placa
		}
		linha("Veículo:", desc)
	}
	if o.KmVeiculo != nil {
		linha("Km:", fmt.Sprintf("%d", *o.KmVeiculo))
	}
	if o.DescricaoProblema != nil && *o.DescricaoProblema != "" {
		linha("Problema:", *o.DescricaoProblema)
	}
	pdf.Ln(3)

	// ── Items ────────────────────────────────────────────────────────────────
	colDesc := contentW * 0.46
	colTipo := contentW * 0.14
	colQtd := contentW * 0.10
	colUnit := contentW * 0.15
	colTot := contentW * 0.15

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colDesc, 6, tr("Descrição"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(colTipo, 6, "Tipo", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colQtd, 6, "Qtd", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colUnit, 6, "Unit.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTot, 6, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, it := range o.Itens {
		desc := []rune(it.Descricao)
		if len(desc) > 48 {
			desc = append(desc[:47], '…')
		}
		pdf.CellFormat(colDesc, 6, tr(string(desc)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colTipo, 6, tr(it.Tipo), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colQtd, 6, fmt.Sprintf("%d", it.Quantidade), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colUnit, 6, reais(it.ValorUnitario), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTot, 6, reais(it.ValorTotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW - colTot
	total := func(label string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTot, 6, reais(v), "", 1, "R", false, 0, "")
	}
	total("Peças:", o.ValorPecas, false)
	total("Serviço:", o.ValorServico, false)
	if !o.ValorDesconto.IsZero() {
		total(fmt.Sprintf("Desconto (%s%%):", o.PercentualDesconto.String()), o.ValorDesconto.Neg(), false)
	}
	total("TOTAL:", o.ValorTotal, true)

	if o.Observacoes != nil && *o.Observacoes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr("Observações: "+*o.Observacoes), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func reais(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}
