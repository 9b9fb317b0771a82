package repository

import "errors"

// ErrQRCodeTaken lo devuelven los adaptadores cuando el QR generado ya existe.
// El registro de variantes lo resuelve regenerando; nunca llega al cliente.
var ErrQRCodeTaken = errors.New("qr code ya asignado")
