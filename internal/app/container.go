// Package app arma el grafo de dependencias: repositorios, casos de uso y router HTTP.
// Lo usan cmd/api y las pruebas de integración sobre el driver en memoria.
package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockroom-api/internal/application/alerts"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/application/receiving"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/application/variant"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/export"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/manifest"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockroom-api/internal/interfaces/http"
	"github.com/jhoicas/stockroom-api/pkg/config"
)

// Repositories puertos de persistencia de un driver concreto.
type Repositories struct {
	TxRunner     inventory.TxRunner
	Plants       repository.PlantRepository
	Stores       repository.StoreRepository
	Categories   repository.CategoryRepository
	ItemTypes    repository.ItemTypeRepository
	Items        repository.ItemRepository
	Variants     repository.VariantRepository
	Users        repository.UserRepository
	Boxes        repository.BoxRepository
	Transactions repository.StockTransactionRepository
	Inventory    repository.InventoryRepository
}

// MemoryRepositories repositorios sobre un Store en memoria (dev y pruebas).
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		TxRunner:     memory.NewTxRunner(s),
		Plants:       memory.NewPlantRepository(s),
		Stores:       memory.NewStoreRepository(s),
		Categories:   memory.NewCategoryRepository(s),
		ItemTypes:    memory.NewItemTypeRepository(s),
		Items:        memory.NewItemRepository(s),
		Variants:     memory.NewVariantRepository(s),
		Users:        memory.NewUserRepository(s),
		Boxes:        memory.NewBoxRepository(s),
		Transactions: memory.NewStockTransactionRepository(s),
		Inventory:    memory.NewInventoryRepository(s),
	}
}

// PostgresRepositories repositorios sobre el pool de PostgreSQL.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		TxRunner:     postgres.NewTxRunner(pool),
		Plants:       postgres.NewPlantRepository(pool),
		Stores:       postgres.NewStoreRepository(pool),
		Categories:   postgres.NewCategoryRepository(pool),
		ItemTypes:    postgres.NewItemTypeRepository(pool),
		Items:        postgres.NewItemRepository(pool),
		Variants:     postgres.NewVariantRepository(pool),
		Users:        postgres.NewUserRepository(pool),
		Boxes:        postgres.NewBoxRepository(pool),
		Transactions: postgres.NewStockTransactionRepository(pool),
		Inventory:    postgres.NewInventoryRepository(pool),
	}
}

// Options parámetros de negocio y colaboradores opcionales.
type Options struct {
	JWT               auth.JWTConfig
	LowStockThreshold int64
	BulkConcurrency   int
	// VariantCache es opcional; nil = resolución QR directa contra el repositorio.
	VariantCache ports.VariantCache
}

// OptionsFromConfig toma los parámetros de la configuración cargada.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		BulkConcurrency:   cfg.Inventory.BulkConcurrency,
	}
}

// Services casos de uso construidos.
type Services struct {
	Auth       *auth.AuthUseCase
	Plants     *usecase.PlantUseCase
	Stores     *usecase.StoreUseCase
	Catalog    *usecase.CatalogUseCase
	Registry   *variant.Registry
	Ledger     *inventory.Ledger
	Aggregator *inventory.Aggregator
	Bulk       *inventory.BulkCoordinator
	Snapshot   *inventory.SnapshotUseCase
	Scanner    *inventory.Scanner
	Boxes      *receiving.BoxUseCase
	Documents  *receiving.DocumentsUseCase
	Alerts     *alerts.UseCase

	jwtSecret string
}

// Build conecta los casos de uso con los repositorios y los adaptadores de documentos.
func Build(r Repositories, opts Options) *Services {
	ledger := inventory.NewLedger(r.TxRunner, r.Variants, r.Stores, r.Transactions)
	aggregator := inventory.NewAggregator(r.Inventory, r.Transactions, r.Variants, r.Stores, opts.LowStockThreshold).
		WithTypeMinimums(r.Items, r.ItemTypes)
	registry := variant.NewRegistry(r.Variants, r.Items, r.ItemTypes, r.Transactions, opts.VariantCache)
	boxes := receiving.NewBoxUseCase(r.TxRunner, ledger, r.Boxes, r.Stores, r.Variants, r.Items, r.Transactions)
	return &Services{
		Auth:       auth.NewAuthUseCase(r.Users, r.Stores, opts.JWT),
		Plants:     usecase.NewPlantUseCase(r.Plants),
		Stores:     usecase.NewStoreUseCase(r.Stores, r.Plants),
		Catalog:    usecase.NewCatalogUseCase(r.Categories, r.ItemTypes, r.Items),
		Registry:   registry,
		Ledger:     ledger,
		Aggregator: aggregator,
		Bulk:       inventory.NewBulkCoordinator(ledger, opts.BulkConcurrency),
		Snapshot:   inventory.NewSnapshotUseCase(aggregator, r.Stores, export.NewXLSXExporter()),
		Scanner:    inventory.NewScanner(ledger, registry),
		Boxes:      boxes,
		Documents:  receiving.NewDocumentsUseCase(boxes, r.Variants, r.Stores, pdf.NewMarotoLabelRenderer(), manifest.NewBuilder()),
		Alerts:     alerts.NewUseCase(aggregator, r.Stores, r.Boxes, opts.BulkConcurrency),
		jwtSecret:  opts.JWT.Secret,
	}
}

// RouterDeps adapta los servicios al router HTTP.
func (s *Services) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:      s.Auth,
		PlantUC:     s.Plants,
		StoreUC:     s.Stores,
		CatalogUC:   s.Catalog,
		Registry:    s.Registry,
		Ledger:      s.Ledger,
		Aggregator:  s.Aggregator,
		Bulk:        s.Bulk,
		Snapshot:    s.Snapshot,
		Scanner:     s.Scanner,
		BoxUC:       s.Boxes,
		DocumentsUC: s.Documents,
		AlertsUC:    s.Alerts,
		JWTSecret:   s.jwtSecret,
	}
}
