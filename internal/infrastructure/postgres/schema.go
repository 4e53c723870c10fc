package postgres

import (
	"context"
	"fmt"
)

// schemaDDL tablas de borradores. Idempotente: se ejecuta en cada arranque.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS invoice_drafts (
	id               TEXT PRIMARY KEY,
	owner_email      TEXT        NOT NULL,
	customer         TEXT        NOT NULL DEFAULT '',
	ruc              TEXT        NOT NULL DEFAULT '',
	email            TEXT        NOT NULL DEFAULT '',
	condition        TEXT        NOT NULL DEFAULT '',
	transaction_type TEXT        NOT NULL DEFAULT '',
	document_type    TEXT        NOT NULL DEFAULT '',
	document_number  TEXT        NOT NULL DEFAULT '',
	date             TEXT        NOT NULL DEFAULT '',
	status           TEXT        NOT NULL DEFAULT 'draft',
	remote_id        TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS invoice_drafts_owner_idx ON invoice_drafts (owner_email, status);

CREATE TABLE IF NOT EXISTS invoice_draft_details (
	draft_id     TEXT    NOT NULL REFERENCES invoice_drafts (id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	quantity     NUMERIC NOT NULL DEFAULT 0,
	unit_price   NUMERIC NOT NULL DEFAULT 0,
	tax_category TEXT    NOT NULL DEFAULT '',
	description  TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (draft_id, position)
);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
