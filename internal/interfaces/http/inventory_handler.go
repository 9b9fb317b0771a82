package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// InventoryHandler expone el libro de movimientos y las lecturas del inventario derivado.
type InventoryHandler struct {
	ledger     *inventory.Ledger
	aggregator *inventory.Aggregator
	bulk       *inventory.BulkCoordinator
	snapshot   *inventory.SnapshotUseCase
	scanner    *inventory.Scanner
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.Ledger,
	aggregator *inventory.Aggregator,
	bulk *inventory.BulkCoordinator,
	snapshot *inventory.SnapshotUseCase,
	scanner *inventory.Scanner,
) *InventoryHandler {
	return &InventoryHandler{
		ledger:     ledger,
		aggregator: aggregator,
		bulk:       bulk,
		snapshot:   snapshot,
		scanner:    scanner,
	}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "variant_id, store_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	t, err := h.ledger.PostStockIn(c.UserContext(), inventory.StockInInput{
		Actor:     GetActor(c),
		VariantID: in.VariantID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		Meta:      inventory.Meta{ReferenceNumber: in.ReferenceNumber, Reason: in.Reason, Notes: in.Notes},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransactionResponse(t))
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "variant_id, store_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con requested/available"
// @Router       /api/inventory/stock-out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	t, err := h.ledger.PostStockOut(c.UserContext(), inventory.StockOutInput{
		Actor:     GetActor(c),
		VariantID: in.VariantID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		Meta:      inventory.Meta{ReferenceNumber: in.ReferenceNumber, Reason: in.Reason, Notes: in.Notes},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransactionResponse(t))
}

// ScanStockOut godoc
// @Summary      Salida de stock por escaneo QR
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanStockOutRequest  true  "qr_code, store_id, quantity (1 por defecto)"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/scan/stock-out [post]
func (h *InventoryHandler) ScanStockOut(c *fiber.Ctx) error {
	var in dto.ScanStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	t, err := h.scanner.ScanStockOut(c.UserContext(), inventory.ScanStockOutInput{
		Actor:    GetActor(c),
		QRCode:   in.QRCode,
		StoreID:  in.StoreID,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		Notes:    in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransactionResponse(t))
}

// Transfer godoc
// @Summary      Traslado entre tiendas
// @Description  Registra transfer_out y transfer_in enlazados en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "variant_id, from_store_id, to_store_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, inTx, err := h.ledger.PostTransfer(c.UserContext(), inventory.TransferInput{
		Actor:       GetActor(c),
		VariantID:   in.VariantID,
		FromStoreID: in.FromStoreID,
		ToStoreID:   in.ToStoreID,
		Quantity:    in.Quantity,
		Meta:        inventory.Meta{ReferenceNumber: in.ReferenceNumber, Reason: in.Reason, Notes: in.Notes},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		TransferOut: *dto.ToTransactionResponse(out),
		TransferIn:  *dto.ToTransactionResponse(inTx),
	})
}

// BulkStockOut godoc
// @Summary      Salida masiva
// @Description  Cada línea se confirma o falla de forma independiente. Responde 207 si hay fallos.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkStockOutRequest  true  "store_id e items"
// @Success      200   {object}  dto.BulkResponse
// @Success      207   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk-stock-out [post]
func (h *InventoryHandler) BulkStockOut(c *fiber.Ctx) error {
	var in dto.BulkStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.bulk.BulkStockOut(c.UserContext(), GetActor(c), in.StoreID, bulkLines(in.Items),
		inventory.Meta{ReferenceNumber: in.ReferenceNumber, Reason: in.Reason})
	if err != nil {
		return respondError(c, err)
	}
	return respondBulk(c, res)
}

// BulkTransfer godoc
// @Summary      Traslado masivo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkTransferRequest  true  "from_store_id, to_store_id e items"
// @Success      200   {object}  dto.BulkResponse
// @Success      207   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk-transfer [post]
func (h *InventoryHandler) BulkTransfer(c *fiber.Ctx) error {
	var in dto.BulkTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.bulk.BulkTransfer(c.UserContext(), GetActor(c), in.FromStoreID, in.ToStoreID, bulkLines(in.Items),
		inventory.Meta{ReferenceType: entity.ReferenceTypeBulk, ReferenceNumber: in.ReferenceNumber, Reason: in.Reason})
	if err != nil {
		return respondError(c, err)
	}
	return respondBulk(c, res)
}

func bulkLines(items []dto.BulkLineRequest) []inventory.BulkLine {
	lines := make([]inventory.BulkLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, inventory.BulkLine{VariantID: it.VariantID, Quantity: it.Quantity})
	}
	return lines
}

func respondBulk(c *fiber.Ctx, res *inventory.BulkResult) error {
	out := dto.BulkResponse{
		Committed: res.Committed,
		Failed:    res.Failed,
		Lines:     make([]dto.BulkLineResponse, 0, len(res.Lines)),
	}
	for _, l := range res.Lines {
		out.Lines = append(out.Lines, dto.BulkLineResponse{
			Line:        l.Index,
			VariantID:   l.VariantID,
			Quantity:    l.Quantity,
			Status:      l.Status,
			Transaction: dto.ToTransactionResponse(l.Tx),
			TransferIn:  dto.ToTransactionResponse(l.TransferIn),
			Error:       ToErrorResponse(l.Err),
		})
	}
	status := fiber.StatusOK
	if res.Failed > 0 {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(out)
}

// Quantity godoc
// @Summary      Cantidad de una variante en una tienda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id  query  string  true  "ID de la variante"
// @Param        store_id    query  string  true  "ID de la tienda"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/quantity [get]
func (h *InventoryHandler) Quantity(c *fiber.Ctx) error {
	variantID, storeID := c.Query("variant_id"), c.Query("store_id")
	if variantID == "" || storeID == "" {
		return badRequest(c, "VALIDATION", "variant_id y store_id son requeridos")
	}
	q, err := h.aggregator.GetQuantity(c.UserContext(), variantID, storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.QuantityResponse{VariantID: variantID, StoreID: storeID, Quantity: q})
}

// StoreInventory godoc
// @Summary      Inventario de una tienda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stores/{id} [get]
func (h *InventoryHandler) StoreInventory(c *fiber.Ctx) error {
	levels, err := h.aggregator.ListStoreInventory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockLevels(levels))
}

// LowStock godoc
// @Summary      Variantes con stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID de la tienda"
// @Param        threshold  query  int     false  "Umbral (por defecto min_stock_level del tipo o LOW_STOCK_THRESHOLD)"
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stores/{id}/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	levels, err := h.aggregator.ListLowStock(c.UserContext(), c.Params("id"), int64(threshold))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockLevels(levels))
}

// Export godoc
// @Summary      Exportar inventario de una tienda (xlsx)
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stores/{id}/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	if h.snapshot == nil {
		return c.SendStatus(fiber.StatusNotImplemented)
	}
	data, filename, err := h.snapshot.Export(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// Reconcile godoc
// @Summary      Conciliar inventario contra el libro
// @Description  Devuelve las claves cuyo agregado difiere de la suma de movimientos. Lista vacía = consistente.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Limitar a una tienda"
// @Success      200  {array}  dto.DiscrepancyResponse
// @Router       /api/inventory/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	list, err := h.aggregator.Reconcile(c.UserContext(), c.Query("store_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DiscrepancyResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DiscrepancyResponse{VariantID: d.VariantID, StoreID: d.StoreID, Stored: d.Stored, Replayed: d.Replayed})
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id        query  string  false  "Variante"
// @Param        store_id          query  string  false  "Tienda"
// @Param        transaction_type  query  string  false  "stock_in | stock_out | transfer_out | transfer_in"
// @Param        box_id            query  string  false  "Caja"
// @Param        reference_number  query  string  false  "Referencia"
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.ledger.ListTransactions(c.UserContext(), repository.TransactionFilter{
		VariantID:       c.Query("variant_id"),
		StoreID:         c.Query("store_id"),
		Type:            c.Query("transaction_type"),
		BoxID:           c.Query("box_id"),
		ReferenceNumber: c.Query("reference_number"),
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionList(list))
}

// GetTransaction godoc
// @Summary      Obtener movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions/{id} [get]
func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	t, err := h.ledger.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionResponse(t))
}

func toStockLevels(levels []inventory.StockLevel) []dto.StockLevelResponse {
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			Variant:   *dto.ToVariantResponse(l.Variant),
			StoreID:   l.StoreID,
			Quantity:  l.Quantity,
			Threshold: l.Threshold,
			UpdatedAt: l.UpdatedAt,
		})
	}
	return out
}
