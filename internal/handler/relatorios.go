package handler

import (
	"fmt"
	"net/http"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Estoque godoc
// @Summary Posição de estoque valorizada pelos lotes
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RelatorioEstoqueResponse
// @Router /v1/relatorios/estoque [get]
func (h *RelatoriosHandler) Estoque(c *gin.Context) {
	resp, err := h.svc.Estoque(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstoqueXLSX GET /v1/relatorios/estoque.xlsx
func (h *RelatoriosHandler) EstoqueXLSX(c *gin.Context) {
	data, err := h.svc.EstoqueXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendXLSX(c, "estoque", data)
}

// Movimentos godoc
// @Summary Movimentações de estoque no período
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Data inicial (YYYY-MM-DD)"
// @Param ate query string false "Data final (YYYY-MM-DD)"
// @Param tipo query string false "ENTRADA | SAIDA"
// @Success 200 {object} dto.RelatorioMovimentosResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/relatorios/movimentos [get]
func (h *RelatoriosHandler) Movimentos(c *gin.Context) {
	var filter dto.RelatorioMovimentosFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Movimentos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MovimentosXLSX GET /v1/relatorios/movimentos.xlsx
func (h *RelatoriosHandler) MovimentosXLSX(c *gin.Context) {
	var filter dto.RelatorioMovimentosFilter
	if !bindQuery(c, &filter) {
		return
	}
	data, err := h.svc.MovimentosXLSX(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	sendXLSX(c, "movimentos", data)
}

func sendXLSX(c *gin.Context, nome string, data []byte) {
	filename := fmt.Sprintf("%s_%s.xlsx", nome, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxMime, data)
}
