package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/application/stock"
	"github.com/martesys/petshop-api/internal/domain/entity"
)

// StockHandler maneja las operaciones de inventario (protegido).
type StockHandler struct {
	uc                *stock.UseCase
	alerts            *stock.AlertService
	criticalThreshold int64
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, alerts *stock.AlertService, criticalThreshold int64) *StockHandler {
	return &StockHandler{uc: uc, alerts: alerts, criticalThreshold: criticalThreshold}
}

// Entry godoc
// @Summary      Registrar entrada de mercadería
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockEntryRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/entries [post]
func (h *StockHandler) Entry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := h.uc.Entry(c.Context(), in.ProductID, in.Quantity, in.UnitCost, in.Reason)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.AdjustResponse{ProductID: in.ProductID, NewStock: newStock})
}

// Exit godoc
// @Summary      Registrar salida manual (merma, pérdida)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockEntryRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/exits [post]
func (h *StockHandler) Exit(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := h.uc.Exit(c.Context(), in.ProductID, in.Quantity, in.Reason)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.AdjustResponse{ProductID: in.ProductID, NewStock: newStock})
}

// Adjust godoc
// @Summary      Ajustar stock a un valor absoluto (conteo físico)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "Producto y stock nuevo"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := h.uc.SetStock(c.Context(), in.ProductID, in.NewStock, in.Reason)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.AdjustResponse{ProductID: in.ProductID, NewStock: newStock})
}

// Availability godoc
// @Summary      Consultar disponibilidad de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del producto"
// @Param        quantity  query  int     false  "Cantidad requerida"  default(1)
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	quantity := int64(c.QueryInt("quantity", 1))
	ok, available, err := h.uc.CheckAvailability(c.Context(), c.Params("id"), quantity)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": c.Params("id"),
		"requested":  quantity,
		"available":  available,
		"sufficient": ok,
	})
}

// Movements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "Fecha desde (RFC3339)"
// @Param        to      query  string  false  "Fecha hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(100)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: formato RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: formato RFC3339"})
	}
	movs, err := h.uc.ListMovements(c.Context(), c.Params("id"), from, to, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de reposición
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockAlertsResponse
// @Router       /api/stock/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.alerts.Check(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.toAlertsResponse(alerts))
}

func (h *StockHandler) toAlertsResponse(a *stock.Alerts) dto.StockAlertsResponse {
	conv := func(products []*entity.Product) []dto.ProductResponse {
		out := make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			out = append(out, dto.ProductResponse{
				ID:          p.ID,
				Name:        p.Name,
				AnimalType:  p.AnimalType,
				Brand:       p.Brand,
				Weight:      p.Weight,
				CostPrice:   p.CostPrice,
				SalePrice:   p.SalePrice,
				Stock:       p.Stock,
				MinStock:    p.MinStock,
				Barcode:     p.Barcode,
				Active:      p.Active,
				StockStatus: p.StockStatus(h.criticalThreshold),
				CreatedAt:   p.CreatedAt,
			})
		}
		return out
	}
	return dto.StockAlertsResponse{
		OutOfStock: conv(a.OutOfStock),
		Critical:   conv(a.Critical),
		Low:        conv(a.Low),
	}
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reference:   m.Reference,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
