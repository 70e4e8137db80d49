// seed importa un catálogo XML de vendedores y productos (UTF-8 o ISO-8859-1)
// pasando por los mismos casos de uso que la API.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual. Usa STORE_DRIVER / DATABASE_URL como la API.
package main

import (
	"context"
	"os"

	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/catalogxml"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/memory"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/postgres"
	"github.com/jhoicas/marketplace-api/pkg/config"
	"github.com/jhoicas/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", xmlPath).Msg("abrir XML")
	}
	defer f.Close()

	entries, err := catalogxml.Read(f)
	if err != nil {
		log.Fatal().Err(err).Str("path", xmlPath).Msg("decodificar catálogo")
	}

	ctx := context.Background()
	var tx usecase.TxRunner
	if cfg.Store.Driver == config.StoreMemory {
		log.Warn().Msg("almacén en memoria: la importación solo valida el catálogo")
		tx = memory.New()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		tx = postgres.NewTxRunner(pool)
	}

	importer := catalogxml.NewImporter(
		usecase.NewSellerUseCase(tx, nil, log.Component("sellers")),
		usecase.NewProductUseCase(tx, log.Component("products"), nil),
		log.Component("seed"),
	)
	res, err := importer.Import(ctx, entries)
	if err != nil {
		log.Error().Err(err).Int("sellers", res.Sellers).Int("products", res.Products).Msg("importación interrumpida")
		os.Exit(1)
	}
	log.Info().
		Int("sellers", res.Sellers).
		Int("products", res.Products).
		Int("skipped", res.Skipped).
		Msg("catálogo importado")
}
