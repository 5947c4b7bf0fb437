package handler

import (
	"net/http"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VeiculosHandler struct {
	svc        service.VeiculoService
	manutencao service.ManutencaoService
}

func NewVeiculosHandler(svc service.VeiculoService, manutencao service.ManutencaoService) *VeiculosHandler {
	return &VeiculosHandler{svc: svc, manutencao: manutencao}
}

// Criar godoc
// @Summary Cadastra um veículo
// @Tags veiculos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VeiculoRequest true "Veículo"
// @Success 201 {object} dto.VeiculoResponse
// @Failure 404 {object} apierror.APIError "Cliente não encontrado"
// @Failure 409 {object} apierror.APIError "Placa já cadastrada"
// @Router /v1/veiculos [post]
func (h *VeiculosHandler) Criar(c *gin.Context) {
	var req dto.VeiculoRequest
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

func (h *VeiculosHandler) Listar(c *gin.Context) {
	var filter dto.VeiculoFilter
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

func (h *VeiculosHandler) Obter(c *gin.Context) {
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

// PorPlaca GET /v1/veiculos/placa/:placa
func (h *VeiculosHandler) PorPlaca(c *gin.Context) {
	resp, err := h.svc.BuscarPorPlaca(c.Request.Context(), c.Param("placa"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VeiculosHandler) Atualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.VeiculoRequest
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

// AtualizarKm godoc
// @Summary Atualiza a quilometragem (nunca para um valor menor)
// @Tags veiculos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do veículo"
// @Param body body dto.AtualizarKmRequest true "Km"
// @Success 200 {object} dto.VeiculoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/veiculos/{id}/km [patch]
func (h *VeiculosHandler) AtualizarKm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AtualizarKmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarKm(c.Request.Context(), id, req.KmAtual)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transferir PATCH /v1/veiculos/:id/transferir
func (h *VeiculosHandler) Transferir(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.TransferirVeiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transferir(c.Request.Context(), id, uuid.MustParse(req.ClienteID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Manutencoes GET /v1/veiculos/:id/manutencoes
func (h *VeiculosHandler) Manutencoes(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.manutencao.ListarPorVeiculo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sugestoes godoc
// @Summary Manutenções vencidas ou próximas do veículo
// @Tags veiculos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do veículo"
// @Success 200 {object} dto.SugestoesVeiculoResponse
// @Router /v1/veiculos/{id}/sugestoes-manutencao [get]
func (h *VeiculosHandler) Sugestoes(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.manutencao.Sugestoes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VeiculosHandler) Desativar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
