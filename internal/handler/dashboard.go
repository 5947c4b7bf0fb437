package handler

import (
	"net/http"
	"strconv"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Resumo godoc
// @Summary Indicadores gerais da oficina
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResumoResponse
// @Router /v1/dashboard/resumo [get]
func (h *DashboardHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MaisUsados GET /v1/dashboard/produtos-mais-usados?limit=10
func (h *DashboardHandler) MaisUsados(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	resp, err := h.svc.MaisUsados(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if resp == nil {
		resp = []dto.ProdutoMaisVendido{}
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas GET /v1/dashboard/alertas
func (h *DashboardHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Configurações ────────────────────────────────────────────────────────────

type ConfiguracoesHandler struct{ svc service.ConfiguracaoService }

func NewConfiguracoesHandler(svc service.ConfiguracaoService) *ConfiguracoesHandler {
	return &ConfiguracoesHandler{svc: svc}
}

func (h *ConfiguracoesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracoesHandler) Obter(c *gin.Context) {
	resp, err := h.svc.Obter(c.Request.Context(), c.Param("chave"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar PUT /v1/configuracoes/:chave
func (h *ConfiguracoesHandler) Atualizar(c *gin.Context) {
	var req dto.AtualizarConfiguracaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), c.Param("chave"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
