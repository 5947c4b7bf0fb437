package handler

import (
	"net/http"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
)

// EstoqueHandler exposes stock entries, manual exits, adjustments and the
// lot and movement listings.
type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// Entrada godoc
// @Summary Registra uma entrada de estoque (cria um lote)
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EntradaEstoqueRequest true "Entrada"
// @Success 201 {object} dto.MovimentoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/estoque/entrada [post]
func (h *EstoqueHandler) Entrada(c *gin.Context) {
	var req dto.EntradaEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntrada(c.Request.Context(), req, ator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Saida godoc
// @Summary Registra uma saída manual consumindo lotes em FIFO
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SaidaEstoqueRequest true "Saída"
// @Success 201 {object} dto.MovimentoResponse
// @Failure 400 {object} apierror.APIError "Estoque insuficiente"
// @Router /v1/estoque/saida [post]
func (h *EstoqueHandler) Saida(c *gin.Context) {
	var req dto.SaidaEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarSaida(c.Request.Context(), req, ator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Ajuste POST /v1/estoque/ajuste/:id
func (h *EstoqueHandler) Ajuste(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AjusteEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarEstoque(c.Request.Context(), id, req, ator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimentos GET /v1/estoque/movimentos
func (h *EstoqueHandler) Movimentos(c *gin.Context) {
	var filter dto.MovimentoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarMovimentos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lotes GET /v1/estoque/lotes?produto_id=&apenas_disponiveis=true
func (h *EstoqueHandler) Lotes(c *gin.Context) {
	var filter dto.LoteFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarLotes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstoqueHandler) Lote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterLote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
