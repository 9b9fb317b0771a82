package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/receiving"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// HeaderManifestDigest header con el SHA-256 del manifiesto canonicalizado.
const HeaderManifestDigest = "X-Manifest-Digest"

// BoxHandler maneja recepción de cajas, check-in y sus documentos.
type BoxHandler struct {
	boxes *receiving.BoxUseCase
	docs  *receiving.DocumentsUseCase
}

// NewBoxHandler construye el handler. docs puede ser nil si no se exponen documentos.
func NewBoxHandler(boxes *receiving.BoxUseCase, docs *receiving.DocumentsUseCase) *BoxHandler {
	return &BoxHandler{boxes: boxes, docs: docs}
}

// Create godoc
// @Summary      Registrar caja recibida
// @Description  Crea la caja en pending_checkin. Sin box_code se asigna BOX-YYYY-NNNN.
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBoxRequest  true  "Cabecera y contenido"
// @Success      201   {object}  dto.BoxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boxes [post]
func (h *BoxHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Contents) == 0 {
		return badRequest(c, "VALIDATION", "contents debe tener al menos una línea")
	}
	contents := make([]receiving.ContentInput, 0, len(in.Contents))
	for _, line := range in.Contents {
		contents = append(contents, receiving.ContentInput{
			VariantID: line.VariantID,
			ItemID:    line.ItemID,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
		})
	}
	box, err := h.boxes.CreateBox(c.UserContext(), receiving.CreateBoxInput{
		Actor:         GetActor(c),
		Code:          in.Code,
		Supplier:      in.Supplier,
		PONumber:      in.PONumber,
		DONumber:      in.DONumber,
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
		ReceivedDate:  in.ReceivedDate,
		Contents:      contents,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBoxResponse(box))
}

// CheckIn godoc
// @Summary      Check-in de caja en tienda
// @Description  Pasa la caja a checked_in y registra una entrada de stock por línea, atómicamente.
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la caja"
// @Param        body  body  dto.CheckInRequest  true  "Tienda destino"
// @Success      200   {object}  dto.BoxResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boxes/{id}/checkin [put]
func (h *BoxHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.StoreID == "" {
		return badRequest(c, "VALIDATION", "store_id es requerido")
	}
	box, err := h.boxes.CheckIn(c.UserContext(), receiving.CheckInInput{
		Actor:    GetActor(c),
		BoxID:    c.Params("id"),
		StoreID:  in.StoreID,
		Location: in.LocationInStore,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBoxResponse(box))
}

// GetByID godoc
// @Summary      Obtener caja
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.BoxResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/{id} [get]
func (h *BoxHandler) GetByID(c *fiber.Ctx) error {
	box, err := h.boxes.GetBox(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBoxResponse(box))
}

// List godoc
// @Summary      Listar cajas
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "pending_checkin | checked_in"
// @Param        store_id  query  string  false  "Tienda de check-in"
// @Param        search    query  string  false  "Código, proveedor o PO"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.BoxListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/boxes [get]
func (h *BoxHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.boxes.ListBoxes(c.UserContext(), repository.BoxFilter{
		Status:  c.Query("status"),
		StoreID: c.Query("store_id"),
		Search:  c.Query("search"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBoxList(list, limit, offset))
}

// ListPending godoc
// @Summary      Cajas pendientes de check-in
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BoxListResponse
// @Router       /api/boxes/pending [get]
func (h *BoxHandler) ListPending(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.boxes.ListPending(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBoxList(list, limit, offset))
}

// Transactions godoc
// @Summary      Movimientos de una caja
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/{id}/transactions [get]
func (h *BoxHandler) Transactions(c *fiber.Ctx) error {
	list, err := h.boxes.BoxTransactions(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionList(list))
}

// Label godoc
// @Summary      Etiqueta PDF de la caja
// @Tags         boxes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/{id}/label [get]
func (h *BoxHandler) Label(c *fiber.Ctx) error {
	if h.docs == nil {
		return c.SendStatus(fiber.StatusNotImplemented)
	}
	id := c.Params("id")
	pdf, err := h.docs.Label(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=\"caja-%s.pdf\"", id))
	return c.Send(pdf)
}

// Manifest godoc
// @Summary      Manifiesto XML de la caja
// @Description  El header X-Manifest-Digest lleva el SHA-256 del XML canonicalizado.
// @Tags         boxes
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/{id}/manifest [get]
func (h *BoxHandler) Manifest(c *fiber.Ctx) error {
	if h.docs == nil {
		return c.SendStatus(fiber.StatusNotImplemented)
	}
	xml, digest, err := h.docs.Manifest(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(HeaderManifestDigest, digest)
	return c.Send(xml)
}
