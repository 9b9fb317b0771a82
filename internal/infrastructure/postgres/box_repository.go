package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.BoxRepository = (*BoxRepo)(nil)

const (
	constraintBoxCode = "boxes_box_code_key"
	boxColumns        = `id, box_code, supplier, po_number, do_number, invoice_number, notes, status, store_id,
	location_in_store, received_date, received_by, checked_in_at, checked_in_by, created_at, updated_at`
)

// BoxRepo implementación de BoxRepository sobre PostgreSQL (usable con pool o tx).
type BoxRepo struct {
	q Querier
}

// NewBoxRepository construye el adaptador de cajas. Pasar pool o tx (Querier).
func NewBoxRepository(q Querier) *BoxRepo {
	return &BoxRepo{q: q}
}

func scanBox(row pgx.Row) (*entity.Box, error) {
	var b entity.Box
	var storeID *string
	err := row.Scan(&b.ID, &b.Code, &b.Supplier, &b.PONumber, &b.DONumber, &b.InvoiceNumber, &b.Notes,
		&b.Status, &storeID, &b.LocationInStore, &b.ReceivedDate, &b.ReceivedBy, &b.CheckedInAt,
		&b.CheckedInBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.StoreID = deref(storeID)
	return &b, nil
}

// Create persiste la caja y sus líneas en el orden recibido.
func (r *BoxRepo) Create(ctx context.Context, b *entity.Box) error {
	_, err := r.q.Exec(ctx, `INSERT INTO boxes (`+boxColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		b.ID, b.Code, b.Supplier, b.PONumber, b.DONumber, b.InvoiceNumber, b.Notes, b.Status,
		nullable(b.StoreID), b.LocationInStore, b.ReceivedDate, b.ReceivedBy, b.CheckedInAt,
		b.CheckedInBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == constraintBoxCode {
			return domain.DuplicateBoxCode(b.Code)
		}
		return fmt.Errorf("insert box: %w", err)
	}
	for i := range b.Contents {
		c := &b.Contents[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.BoxID = b.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO box_contents (id, box_id, variant_id, item_id, size, color, quantity, line_no)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID, c.BoxID, c.VariantID, c.ItemID, c.Size, c.Color, c.Quantity, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert box content: %w", err)
		}
	}
	return nil
}

func (r *BoxRepo) GetByID(ctx context.Context, id string) (*entity.Box, error) {
	return r.findOne(ctx, `SELECT `+boxColumns+` FROM boxes WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la caja (SELECT FOR UPDATE); requiere tx.
func (r *BoxRepo) GetForUpdate(ctx context.Context, id string) (*entity.Box, error) {
	return r.findOne(ctx, `SELECT `+boxColumns+` FROM boxes WHERE id = $1 FOR UPDATE`, id)
}

func (r *BoxRepo) GetByCode(ctx context.Context, code string) (*entity.Box, error) {
	return r.findOne(ctx, `SELECT `+boxColumns+` FROM boxes WHERE box_code = $1`, code)
}

func (r *BoxRepo) findOne(ctx context.Context, query string, arg string) (*entity.Box, error) {
	b, err := scanBox(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get box: %w", err)
	}
	if err := r.loadContents(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BoxRepo) loadContents(ctx context.Context, b *entity.Box) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, box_id, variant_id, item_id, size, color, quantity
		FROM box_contents WHERE box_id = $1 ORDER BY line_no`, b.ID)
	if err != nil {
		return fmt.Errorf("list box contents: %w", err)
	}
	defer rows.Close()
	b.Contents = nil
	for rows.Next() {
		var c entity.BoxContent
		if err := rows.Scan(&c.ID, &c.BoxID, &c.VariantID, &c.ItemID, &c.Size, &c.Color, &c.Quantity); err != nil {
			return fmt.Errorf("scan box content: %w", err)
		}
		b.Contents = append(b.Contents, c)
	}
	return rows.Err()
}

// MarkCheckedIn la condición sobre status impide una segunda transición.
func (r *BoxRepo) MarkCheckedIn(ctx context.Context, b *entity.Box) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE boxes SET status = $2, store_id = $3, location_in_store = $4, checked_in_at = $5,
			checked_in_by = $6, updated_at = $7
		WHERE id = $1 AND status = 'pending_checkin'`,
		b.ID, entity.BoxStatusCheckedIn, nullable(b.StoreID), b.LocationInStore, b.CheckedInAt, b.CheckedInBy, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update box: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.AlreadyCheckedIn(b.ID, entity.BoxStatusCheckedIn)
	}
	return nil
}

// List ordena por fecha de recepción descendente. Las líneas se cargan por caja.
func (r *BoxRepo) List(ctx context.Context, f repository.BoxFilter) ([]*entity.Box, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+boxColumns+` FROM boxes
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR store_id::text = $2)
		  AND ($3 = '' OR box_code ILIKE '%' || $3 || '%' OR supplier ILIKE '%' || $3 || '%' OR po_number ILIKE '%' || $3 || '%')
		ORDER BY received_date DESC, box_code
		LIMIT NULLIF($4::int, 0) OFFSET $5`,
		f.Status, f.StoreID, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	var list []*entity.Box
	for rows.Next() {
		b, err := scanBox(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan box: %w", err)
		}
		list = append(list, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	for _, b := range list {
		if err := r.loadContents(ctx, b); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// NextSequence incrementa atómicamente el consecutivo del año.
func (r *BoxRepo) NextSequence(ctx context.Context, year int) (int, error) {
	var seq int
	err := r.q.QueryRow(ctx, `
		INSERT INTO box_code_sequences (year, last_seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = box_code_sequences.last_seq + 1
		RETURNING last_seq`, year).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next box sequence: %w", err)
	}
	return seq, nil
}
