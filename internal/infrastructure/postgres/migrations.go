package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL completo. Idempotente: se puede ejecutar en cada arranque.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	animal_type  TEXT NOT NULL CHECK (animal_type IN ('gato', 'cão')),
	brand        TEXT NOT NULL,
	weight       NUMERIC(10,3) NOT NULL CHECK (weight > 0),
	cost_price   NUMERIC(12,2) NOT NULL CHECK (cost_price >= 0),
	sale_price   NUMERIC(12,2) NOT NULL CHECK (sale_price > 0),
	stock        BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
	min_stock    BIGINT NOT NULL DEFAULT 5 CHECK (min_stock >= 0),
	barcode      TEXT UNIQUE,
	active       BOOLEAN NOT NULL DEFAULT true,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_products_animal_type ON products (animal_type);
CREATE INDEX IF NOT EXISTS idx_products_active ON products (active);

CREATE TABLE IF NOT EXISTS customers (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	cpf        TEXT UNIQUE,
	phone      TEXT NOT NULL,
	email      TEXT,
	address    TEXT,
	active     BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sales (
	id             UUID PRIMARY KEY,
	customer_id    UUID REFERENCES customers(id),
	date           TIMESTAMPTZ NOT NULL,
	gross_total    NUMERIC(12,2) NOT NULL CHECK (gross_total >= 0),
	discount       NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (discount >= 0),
	net_total      NUMERIC(12,2) NOT NULL CHECK (net_total >= 0),
	payment_method TEXT NOT NULL,
	status         TEXT NOT NULL CHECK (status IN ('Concluída', 'Cancelada')),
	notes          TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date DESC);
CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales (customer_id);
CREATE INDEX IF NOT EXISTS idx_sales_status ON sales (status);

CREATE TABLE IF NOT EXISTS sale_items (
	id           UUID PRIMARY KEY,
	sale_id      UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
	product_id   UUID NOT NULL REFERENCES products(id),
	product_name TEXT NOT NULL,
	quantity     BIGINT NOT NULL CHECK (quantity > 0),
	unit_price   NUMERIC(12,2) NOT NULL CHECK (unit_price > 0),
	subtotal     NUMERIC(12,2) NOT NULL CHECK (subtotal > 0)
);

CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items (sale_id);
CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items (product_id);

CREATE TABLE IF NOT EXISTS stock_movements (
	id           UUID PRIMARY KEY,
	product_id   UUID NOT NULL REFERENCES products(id),
	kind         TEXT NOT NULL CHECK (kind IN ('ENTRADA', 'SAIDA', 'AJUSTE', 'VENDA', 'ESTORNO')),
	quantity     BIGINT NOT NULL,
	stock_before BIGINT NOT NULL CHECK (stock_before >= 0),
	stock_after  BIGINT NOT NULL CHECK (stock_after >= 0),
	reference    TEXT,
	reason       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements (product_id, created_at DESC);

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('admin', 'vendedor')),
	status        TEXT NOT NULL DEFAULT 'active',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
