package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Kind clasifica un error de dominio. Es el código que viaja hasta el cliente.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindVariantNotFound   Kind = "VARIANT_NOT_FOUND"
	KindBoxNotFound       Kind = "BOX_NOT_FOUND"
	KindStoreNotFound     Kind = "STORE_NOT_FOUND"
	KindItemNotFound      Kind = "ITEM_NOT_FOUND"
	KindDuplicate         Kind = "DUPLICATE"
	KindDuplicateBoxCode  Kind = "DUPLICATE_BOX_CODE"
	KindDuplicateVariant  Kind = "DUPLICATE_VARIANT"
	KindAlreadyCheckedIn  Kind = "ALREADY_CHECKED_IN"
	KindInvalidQuantity   Kind = "INVALID_QUANTITY"
	KindInvalidAttributes Kind = "INVALID_ATTRIBUTES"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindVariantInUse      Kind = "VARIANT_IN_USE"
	KindConflict          Kind = "CONFLICT"
	KindForbidden         Kind = "FORBIDDEN"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindInternal          Kind = "INTERNAL"
)

// Error es el error plano que cruza la frontera del core: tipo + identificadores primitivos.
// Nunca referencia agregados internos.
type Error struct {
	Kind      Kind   `json:"code"`
	Message   string `json:"message"`
	VariantID string `json:"variant_id,omitempty"`
	StoreID   string `json:"store_id,omitempty"`
	BoxID     string `json:"box_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
	Code      string `json:"box_code,omitempty"`
	Requested int64  `json:"requested,omitempty"`
	Available int64  `json:"available,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// Is permite errors.Is(err, domain.ErrNotFound) sobre toda la familia del tipo.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Kind == e.Kind
	}
	return sentinelFor(e.Kind) == target
}

func sentinelFor(k Kind) error {
	switch k {
	case KindNotFound, KindVariantNotFound, KindBoxNotFound, KindStoreNotFound, KindItemNotFound:
		return ErrNotFound
	case KindDuplicate, KindDuplicateBoxCode, KindDuplicateVariant:
		return ErrDuplicate
	case KindAlreadyCheckedIn, KindVariantInUse, KindConflict:
		return ErrConflict
	case KindInvalidQuantity, KindInvalidAttributes:
		return ErrInvalidInput
	case KindInsufficientStock:
		return ErrInsufficientStock
	case KindForbidden:
		return ErrForbidden
	case KindUnauthorized:
		return ErrUnauthorized
	}
	return nil
}

// KindOf clasifica cualquier error. Lo que no es de dominio es INTERNAL.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidAttributes
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	}
	return KindInternal
}

// AsError devuelve el *Error de dominio contenido en err. Para errores de infraestructura
// devuelve un INTERNAL genérico; el detalle queda en el log del caller.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	k := KindOf(err)
	if k == KindInternal {
		return &Error{Kind: k, Message: "error interno"}
	}
	return &Error{Kind: k, Message: err.Error()}
}

func VariantNotFound(variantID string) *Error {
	return &Error{Kind: KindVariantNotFound, Message: fmt.Sprintf("variante %s no encontrada", variantID), VariantID: variantID}
}

// QRCodeNotFound se usa cuando el QR escaneado no resuelve a una variante activa.
func QRCodeNotFound(code string) *Error {
	return &Error{Kind: KindVariantNotFound, Message: fmt.Sprintf("código QR %s no encontrado", code), Code: code}
}

func BoxNotFound(boxID string) *Error {
	return &Error{Kind: KindBoxNotFound, Message: fmt.Sprintf("caja %s no encontrada", boxID), BoxID: boxID}
}

func StoreNotFound(storeID string) *Error {
	return &Error{Kind: KindStoreNotFound, Message: fmt.Sprintf("tienda %s no encontrada", storeID), StoreID: storeID}
}

func ItemNotFound(itemID string) *Error {
	return &Error{Kind: KindItemNotFound, Message: fmt.Sprintf("artículo %s no encontrado", itemID), ItemID: itemID}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " no encontrado"}
}

func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

func DuplicateBoxCode(code string) *Error {
	return &Error{Kind: KindDuplicateBoxCode, Message: fmt.Sprintf("el código de caja %s ya existe", code), Code: code}
}

func DuplicateVariant(itemID, variantID string) *Error {
	return &Error{
		Kind:      KindDuplicateVariant,
		Message:   "ya existe una variante activa con la misma talla y color",
		ItemID:    itemID,
		VariantID: variantID,
	}
}

func AlreadyCheckedIn(boxID, status string) *Error {
	return &Error{Kind: KindAlreadyCheckedIn, Message: fmt.Sprintf("la caja ya está %s", status), BoxID: boxID}
}

func InvalidQuantity(msg string) *Error {
	return &Error{Kind: KindInvalidQuantity, Message: msg}
}

func InvalidAttributes(msg string) *Error {
	return &Error{Kind: KindInvalidAttributes, Message: msg}
}

func InsufficientStock(variantID, storeID string, requested, available int64) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("stock insuficiente: solicitado %d, disponible %d", requested, available),
		VariantID: variantID,
		StoreID:   storeID,
		Requested: requested,
		Available: available,
	}
}

func VariantInUse(variantID string) *Error {
	return &Error{
		Kind:      KindVariantInUse,
		Message:   "la variante tiene movimientos registrados; solo se permite desactivarla",
		VariantID: variantID,
	}
}

// Conflict la operación choca con el estado actual (p. ej. borrar una categoría con tipos).
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// StoreForbidden indica que el actor no puede operar sobre la tienda.
func StoreForbidden(storeID string) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf("sin permiso sobre la tienda %s", storeID), StoreID: storeID}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}
