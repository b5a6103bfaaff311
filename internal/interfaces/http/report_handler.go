package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/application/sales"
)

// ReportHandler consultas de solo lectura: estadísticas e inventario.
type ReportHandler struct {
	uc *sales.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *sales.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Statistics godoc
// @Summary      Estadísticas de ventas del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha desde (RFC3339)"
// @Param        to    query  string  false  "Fecha hasta (RFC3339)"
// @Success      200   {object}  dto.SalesStatisticsResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: formato RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: formato RFC3339"})
	}
	out, err := h.uc.Statistics(c.Context(), from, to)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// InventoryValue godoc
// @Summary      Valor del inventario activo a precio de venta
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	total, err := h.uc.InventoryValue(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.InventoryValueResponse{TotalValue: total})
}
