package app_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/jhoicas/stockroom-api/internal/app"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/receiving"
	"github.com/jhoicas/stockroom-api/internal/application/variant"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
)

// stockroomContext estado de un escenario: servicios sobre memoria y los ids sembrados por código.
type stockroomContext struct {
	svc      *app.Services
	actor    entity.Actor
	stores   map[string]string // código -> id
	variants map[string]string // "TALLA/COLOR" -> id
	boxes    map[string]string // código -> id
	bulk     *inventory.BulkResult
	err      error
}

func (c *stockroomContext) reset() {
	c.svc = app.Build(app.MemoryRepositories(memory.NewStore()), app.Options{
		JWT:               auth.JWTConfig{Secret: "features-secret", ExpMinutes: 5, Issuer: "stockroom-features"},
		LowStockThreshold: 10,
		BulkConcurrency:   2,
	})
	c.actor = entity.Actor{UserID: "u-1", Username: "ana", Role: entity.RoleAdmin}
	c.stores = map[string]string{}
	c.variants = map[string]string{}
	c.boxes = map[string]string{}
	c.bulk = nil
	c.err = nil
}

func (c *stockroomContext) storesInPlant(a, b, plant string) error {
	ctx := context.Background()
	p, err := c.svc.Plants.Create(ctx, dto.CreatePlantRequest{Code: plant, Name: "Planta " + plant})
	if err != nil {
		return err
	}
	for _, code := range []string{a, b} {
		s, err := c.svc.Stores.Create(ctx, dto.CreateStoreRequest{PlantID: p.ID, Code: code, Name: "Tienda " + code})
		if err != nil {
			return err
		}
		c.stores[code] = s.ID
	}
	return nil
}

func (c *stockroomContext) itemWithVariants(code, list string) error {
	ctx := context.Background()
	var sizes, colors []string
	combos := strings.Split(list, ",")
	for _, combo := range combos {
		size, color, ok := strings.Cut(strings.TrimSpace(combo), "/")
		if !ok {
			return fmt.Errorf("variante %q: se espera TALLA/COLOR", combo)
		}
		sizes, colors = append(sizes, size), append(colors, color)
	}
	t, err := c.svc.Catalog.CreateItemType(ctx, dto.CreateItemTypeRequest{
		Code: "T-" + code, Name: "Tipo " + code,
		HasSize: true, AvailableSizes: sizes,
		HasColor: true, AvailableColors: colors,
	})
	if err != nil {
		return err
	}
	item, err := c.svc.Catalog.CreateItem(ctx, dto.CreateItemRequest{Code: code, Name: code, ItemTypeID: t.ID})
	if err != nil {
		return err
	}
	for i := range sizes {
		v, err := c.svc.Registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: item.ID, Size: sizes[i], Color: colors[i]})
		if err != nil {
			return err
		}
		c.variants[sizes[i]+"/"+colors[i]] = v.ID
	}
	return nil
}

func (c *stockroomContext) store(code string) (string, error) {
	id, ok := c.stores[code]
	if !ok {
		return "", fmt.Errorf("tienda %s no sembrada", code)
	}
	return id, nil
}

func (c *stockroomContext) variant(label string) (string, error) {
	id, ok := c.variants[label]
	if !ok {
		return "", fmt.Errorf("variante %s no sembrada", label)
	}
	return id, nil
}

func (c *stockroomContext) storekeeperOf(code string) error {
	id, err := c.store(code)
	if err != nil {
		return err
	}
	c.actor = entity.Actor{UserID: "u-2", Username: "beto", Role: entity.RoleStorekeeper, StoreIDs: []string{id}}
	return nil
}

func (c *stockroomContext) postStockIn(qty int, label, code string) error {
	vid, err := c.variant(label)
	if err != nil {
		return err
	}
	sid, err := c.store(code)
	if err != nil {
		return err
	}
	_, c.err = c.svc.Ledger.PostStockIn(context.Background(), inventory.StockInInput{
		Actor: c.actor, VariantID: vid, StoreID: sid, Quantity: int64(qty),
	})
	return nil
}

func (c *stockroomContext) storeHolds(code string, qty int, label string) error {
	if err := c.postStockIn(qty, label, code); err != nil {
		return err
	}
	return c.err
}

func (c *stockroomContext) postStockOut(qty int, label, code string) error {
	vid, err := c.variant(label)
	if err != nil {
		return err
	}
	sid, err := c.store(code)
	if err != nil {
		return err
	}
	_, c.err = c.svc.Ledger.PostStockOut(context.Background(), inventory.StockOutInput{
		Actor: c.actor, VariantID: vid, StoreID: sid, Quantity: int64(qty),
	})
	return nil
}

func (c *stockroomContext) transfer(qty int, label, from, to string) error {
	vid, err := c.variant(label)
	if err != nil {
		return err
	}
	fromID, err := c.store(from)
	if err != nil {
		return err
	}
	toID, err := c.store(to)
	if err != nil {
		return err
	}
	_, _, c.err = c.svc.Ledger.PostTransfer(context.Background(), inventory.TransferInput{
		Actor: c.actor, VariantID: vid, FromStoreID: fromID, ToStoreID: toID, Quantity: int64(qty),
	})
	return nil
}

func (c *stockroomContext) bulkStockOut(code string, table *godog.Table) error {
	sid, err := c.store(code)
	if err != nil {
		return err
	}
	var lines []inventory.BulkLine
	for i, row := range table.Rows {
		if i == 0 {
			continue // encabezado
		}
		vid, err := c.variant(row.Cells[0].Value)
		if err != nil {
			return err
		}
		qty, err := strconv.ParseInt(row.Cells[1].Value, 10, 64)
		if err != nil {
			return err
		}
		lines = append(lines, inventory.BulkLine{VariantID: vid, Quantity: qty})
	}
	c.bulk, c.err = c.svc.Bulk.BulkStockOut(context.Background(), c.actor, sid, lines, inventory.Meta{})
	return nil
}

func (c *stockroomContext) boxWith(code string, qtyA int, labelA string, qtyB int, labelB string) error {
	a, err := c.variant(labelA)
	if err != nil {
		return err
	}
	b, err := c.variant(labelB)
	if err != nil {
		return err
	}
	box, err := c.svc.Boxes.CreateBox(context.Background(), receiving.CreateBoxInput{
		Actor: c.actor,
		Code:  code,
		Contents: []receiving.ContentInput{
			{VariantID: a, Quantity: int64(qtyA)},
			{VariantID: b, Quantity: int64(qtyB)},
		},
	})
	if err != nil {
		return err
	}
	c.boxes[code] = box.ID
	return nil
}

func (c *stockroomContext) anotherBox(code string) error {
	vid, err := c.variant("M/RED")
	if err != nil {
		return err
	}
	_, c.err = c.svc.Boxes.CreateBox(context.Background(), receiving.CreateBoxInput{
		Actor:    c.actor,
		Code:     code,
		Contents: []receiving.ContentInput{{VariantID: vid, Quantity: 1}},
	})
	return nil
}

func (c *stockroomContext) checkIn(code, storeCode string) error {
	boxID, ok := c.boxes[code]
	if !ok {
		return fmt.Errorf("caja %s no registrada", code)
	}
	sid, err := c.store(storeCode)
	if err != nil {
		return err
	}
	_, c.err = c.svc.Boxes.CheckIn(context.Background(), receiving.CheckInInput{Actor: c.actor, BoxID: boxID, StoreID: sid})
	return nil
}

func (c *stockroomContext) boxIs(code, status string) error {
	if c.err != nil {
		return fmt.Errorf("operación previa falló: %w", c.err)
	}
	box, err := c.svc.Boxes.GetBox(context.Background(), c.boxes[code])
	if err != nil {
		return err
	}
	if box.Status != status {
		return fmt.Errorf("caja %s en estado %s, se esperaba %s", code, box.Status, status)
	}
	return nil
}

func (c *stockroomContext) quantityIs(label, code string, want int) error {
	vid, err := c.variant(label)
	if err != nil {
		return err
	}
	sid, err := c.store(code)
	if err != nil {
		return err
	}
	got, err := c.svc.Aggregator.GetQuantity(context.Background(), vid, sid)
	if err != nil {
		return err
	}
	if got != int64(want) {
		return fmt.Errorf("cantidad de %s en %s: %d, se esperaba %d", label, code, got, want)
	}
	return nil
}

func (c *stockroomContext) operationFails(kind string) error {
	if c.err == nil {
		return fmt.Errorf("se esperaba %s y la operación fue exitosa", kind)
	}
	if got := domain.KindOf(c.err); string(got) != kind {
		return fmt.Errorf("error %s (%v), se esperaba %s", got, c.err, kind)
	}
	return nil
}

func (c *stockroomContext) ledgerReconciles() error {
	diff, err := c.svc.Aggregator.Reconcile(context.Background(), "")
	if err != nil {
		return err
	}
	if len(diff) > 0 {
		return fmt.Errorf("%d claves no cuadran con el libro: %+v", len(diff), diff)
	}
	return nil
}

func (c *stockroomContext) bulkCounts(committed, failed int) error {
	if c.err != nil {
		return c.err
	}
	if c.bulk == nil {
		return fmt.Errorf("no hay resultado masivo")
	}
	if c.bulk.Committed != committed || c.bulk.Failed != failed {
		return fmt.Errorf("confirmadas %d / fallidas %d, se esperaba %d / %d", c.bulk.Committed, c.bulk.Failed, committed, failed)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &stockroomContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^stores "([^"]*)" and "([^"]*)" in plant "([^"]*)"$`, tc.storesInPlant)
	ctx.Step(`^item "([^"]*)" with variants "([^"]*)"$`, tc.itemWithVariants)
	ctx.Step(`^I am a storekeeper of "([^"]*)"$`, tc.storekeeperOf)
	ctx.Step(`^"([^"]*)" holds (\d+) units of "([^"]*)"$`, tc.storeHolds)
	ctx.Step(`^a box "([^"]*)" with (\d+) units of "([^"]*)" and (\d+) units of "([^"]*)"$`, tc.boxWith)

	ctx.Step(`^I post a stock-in of (\d+) units of "([^"]*)" to "([^"]*)"$`, tc.postStockIn)
	ctx.Step(`^I post a stock-out of (\d+) units of "([^"]*)" from "([^"]*)"$`, tc.postStockOut)
	ctx.Step(`^I transfer (\d+) units of "([^"]*)" from "([^"]*)" to "([^"]*)"$`, tc.transfer)
	ctx.Step(`^I post a bulk stock-out from "([^"]*)":$`, tc.bulkStockOut)
	ctx.Step(`^I check in box "([^"]*)" at "([^"]*)"$`, tc.checkIn)
	ctx.Step(`^I register another box "([^"]*)"$`, tc.anotherBox)

	ctx.Step(`^the quantity of "([^"]*)" in "([^"]*)" is (\d+)$`, tc.quantityIs)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.operationFails)
	ctx.Step(`^the ledger reconciles with the stored quantities$`, tc.ledgerReconciles)
	ctx.Step(`^(\d+) lines are committed and (\d+) lines fail$`, tc.bulkCounts)
	ctx.Step(`^box "([^"]*)" is "([^"]*)"$`, tc.boxIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
