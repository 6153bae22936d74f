package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS notificacion_emergencia (
	id_notificacion        SERIAL PRIMARY KEY,
	id_emisor              INTEGER      NOT NULL,
	titulo_notificacion    VARCHAR(50)  NOT NULL,
	contenido_notificacion VARCHAR(500) NOT NULL,
	fecha_notificacion     TIMESTAMP    NOT NULL,
	estado_notificacion    BOOLEAN      NOT NULL
);

CREATE TABLE IF NOT EXISTS notificacion_receptores (
	id_notificacion INTEGER NOT NULL
		REFERENCES notificacion_emergencia (id_notificacion) ON DELETE CASCADE,
	id_receptor     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notificacion_receptores_notificacion
	ON notificacion_receptores (id_notificacion);
`

// Migrate creates the notification tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("run schema migration: %w", err)
	}
	return nil
}
