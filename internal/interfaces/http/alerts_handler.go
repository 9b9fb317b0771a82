package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/alerts"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
)

// AlertsHandler expone los avisos calculados de stock y recepción.
type AlertsHandler struct {
	uc *alerts.UseCase
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(uc *alerts.UseCase) *AlertsHandler {
	return &AlertsHandler{uc: uc}
}

// Stock godoc
// @Summary      Avisos de stock bajo y agotado
// @Description  Sin store_id revisa todas las tiendas activas visibles para el usuario.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "ID de tienda"
// @Success      200       {object}  dto.StockAlertListResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/alerts/stock [get]
func (h *AlertsHandler) Stock(c *fiber.Ctx) error {
	list, err := h.uc.StockAlerts(c.UserContext(), GetActor(c), c.Query("store_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.StockAlertListResponse{Items: make([]dto.StockAlertResponse, 0, len(list)), GeneratedAt: time.Now()}
	for _, a := range list {
		if a.Kind == alerts.KindOutOfStock {
			out.OutOfStock++
		} else {
			out.LowStock++
		}
		out.Items = append(out.Items, dto.StockAlertResponse{
			Type: a.Kind, StoreID: a.StoreID, StoreName: a.StoreName,
			Variant: *dto.ToVariantResponse(a.Variant), Quantity: a.Quantity, Threshold: a.Threshold,
		})
	}
	return c.JSON(out)
}

// PendingCheckin godoc
// @Summary      Cajas pendientes de check-in
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingCheckinResponse
// @Router       /api/alerts/pending-checkin [get]
func (h *AlertsHandler) PendingCheckin(c *fiber.Ctx) error {
	p, err := h.uc.PendingCheckins(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := dto.PendingCheckinResponse{Count: p.Count, BoxIDs: p.BoxIDs, BoxCodes: p.BoxCodes}
	if !p.OldestReceived.IsZero() {
		out.OldestReceived = &p.OldestReceived
	}
	return c.JSON(out)
}
