package handler

import (
	"net/http"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
)

type PerfisHandler struct{ svc service.PerfilService }

func NewPerfisHandler(svc service.PerfilService) *PerfisHandler {
	return &PerfisHandler{svc: svc}
}

// Criar godoc
// @Summary Cria um perfil de permissões
// @Tags perfis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarPerfilRequest true "Perfil"
// @Success 201 {object} dto.PerfilResponse
// @Router /v1/perfis [post]
func (h *PerfisHandler) Criar(c *gin.Context) {
	var req dto.CriarPerfilRequest
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

// Listar GET /v1/perfis?apenas_ativos=true
func (h *PerfisHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("apenas_ativos") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Permissoes GET /v1/perfis/permissoes
func (h *PerfisHandler) Permissoes(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Chaves())
}

func (h *PerfisHandler) Obter(c *gin.Context) {
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

// Atualizar PUT /v1/perfis/:id
func (h *PerfisHandler) Atualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AtualizarPerfilRequest
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

// Deletar DELETE /v1/perfis/:id
func (h *PerfisHandler) Deletar(c *gin.Context) {
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
