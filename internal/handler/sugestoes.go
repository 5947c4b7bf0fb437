package handler

import (
	"net/http"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
)

type SugestoesHandler struct{ svc service.SugestaoService }

func NewSugestoesHandler(svc service.SugestaoService) *SugestoesHandler {
	return &SugestoesHandler{svc: svc}
}

// Listar godoc
// @Summary Catálogo de sugestões de manutenção
// @Tags sugestoes-manutencao
// @Produce json
// @Security BearerAuth
// @Param ativo query string false "true | false"
// @Param tipo_servico query string false "Tipo de serviço"
// @Success 200 {array} dto.SugestaoResponse
// @Router /v1/sugestoes-manutencao [get]
func (h *SugestoesHandler) Listar(c *gin.Context) {
	var filter dto.SugestaoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SugestoesHandler) Obter(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Criar POST /v1/sugestoes-manutencao
func (h *SugestoesHandler) Criar(c *gin.Context) {
	var req dto.CriarSugestaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Atualizar PUT /v1/sugestoes-manutencao/:id
func (h *SugestoesHandler) Atualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AtualizarSugestaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deletar DELETE /v1/sugestoes-manutencao/:id
func (h *SugestoesHandler) Deletar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Deletar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
