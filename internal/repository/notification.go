package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/safe-rescue/api-notificaciones/internal/domain"
	"github.com/safe-rescue/api-notificaciones/internal/service"
)

// NotificacionRepository handles notification data access against Postgres.
// The receiver list is a dependent collection in notificacion_receptores;
// saving replaces it wholesale and deleting a notification cascades to it.
type NotificacionRepository struct {
	db *sqlx.DB
}

// NewNotificacionRepository creates a new NotificacionRepository.
func NewNotificacionRepository(db *sqlx.DB) *NotificacionRepository {
	return &NotificacionRepository{db: db}
}

// InTx runs fn against a store bound to one transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (r *NotificacionRepository) InTx(ctx context.Context, fn func(service.NotificacionStore) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&notificacionTx{ext: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *NotificacionRepository) Save(ctx context.Context, n *domain.Notificacion) (*domain.Notificacion, error) {
	return save(ctx, r.db, n)
}

func (r *NotificacionRepository) FindAll(ctx context.Context) ([]domain.Notificacion, error) {
	return findAll(ctx, r.db)
}

func (r *NotificacionRepository) FindByID(ctx context.Context, id int) (*domain.Notificacion, error) {
	return findByID(ctx, r.db, id)
}

func (r *NotificacionRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	return existsByID(ctx, r.db, id)
}

func (r *NotificacionRepository) DeleteByID(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, id)
}

// notificacionTx is the same store bound to an open transaction.
type notificacionTx struct {
	ext sqlx.ExtContext
}

func (t *notificacionTx) InTx(_ context.Context, fn func(service.NotificacionStore) error) error {
	// Already inside a transaction; reuse it.
	return fn(t)
}

func (t *notificacionTx) Save(ctx context.Context, n *domain.Notificacion) (*domain.Notificacion, error) {
	return save(ctx, t.ext, n)
}

func (t *notificacionTx) FindAll(ctx context.Context) ([]domain.Notificacion, error) {
	return findAll(ctx, t.ext)
}

func (t *notificacionTx) FindByID(ctx context.Context, id int) (*domain.Notificacion, error) {
	return findByID(ctx, t.ext, id)
}

func (t *notificacionTx) ExistsByID(ctx context.Context, id int) (bool, error) {
	return existsByID(ctx, t.ext, id)
}

func (t *notificacionTx) DeleteByID(ctx context.Context, id int) error {
	return deleteByID(ctx, t.ext, id)
}

func save(ctx context.Context, ext sqlx.ExtContext, n *domain.Notificacion) (*domain.Notificacion, error) {
	saved := *n

	if n.ID == 0 {
		err := ext.QueryRowxContext(ctx,
			`INSERT INTO notificacion_emergencia
			     (id_emisor, titulo_notificacion, contenido_notificacion, fecha_notificacion, estado_notificacion)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id_notificacion`,
			n.EmitterID, n.Title, n.Body, n.CreatedAt, n.Active,
		).Scan(&saved.ID)
		if err != nil {
			return nil, fmt.Errorf("insert notification: %w", err)
		}
	} else {
		if _, err := ext.ExecContext(ctx,
			`UPDATE notificacion_emergencia
			 SET titulo_notificacion = $1, contenido_notificacion = $2, estado_notificacion = $3
			 WHERE id_notificacion = $4`,
			n.Title, n.Body, n.Active, n.ID,
		); err != nil {
			return nil, fmt.Errorf("update notification %d: %w", n.ID, err)
		}
		if _, err := ext.ExecContext(ctx,
			`DELETE FROM notificacion_receptores WHERE id_notificacion = $1`, n.ID,
		); err != nil {
			return nil, fmt.Errorf("clear receivers of notification %d: %w", n.ID, err)
		}
	}

	for _, receiver := range n.Receivers {
		if _, err := ext.ExecContext(ctx,
			`INSERT INTO notificacion_receptores (id_notificacion, id_receptor) VALUES ($1, $2)`,
			saved.ID, receiver,
		); err != nil {
			return nil, fmt.Errorf("insert receiver of notification %d: %w", saved.ID, err)
		}
	}

	return &saved, nil
}

func findAll(ctx context.Context, ext sqlx.ExtContext) ([]domain.Notificacion, error) {
	notifications := []domain.Notificacion{}
	err := sqlx.SelectContext(ctx, ext, &notifications,
		`SELECT id_notificacion, id_emisor, titulo_notificacion, contenido_notificacion,
		        fecha_notificacion, estado_notificacion
		 FROM notificacion_emergencia
		 ORDER BY id_notificacion`)
	if err != nil {
		return nil, fmt.Errorf("find all notifications: %w", err)
	}

	rows, err := ext.QueryxContext(ctx,
		`SELECT id_notificacion, id_receptor FROM notificacion_receptores`)
	if err != nil {
		return nil, fmt.Errorf("find all receivers: %w", err)
	}
	defer rows.Close()

	receivers := map[int][]int{}
	for rows.Next() {
		var notificationID, receiverID int
		if err := rows.Scan(&notificationID, &receiverID); err != nil {
			return nil, fmt.Errorf("scan receiver row: %w", err)
		}
		receivers[notificationID] = append(receivers[notificationID], receiverID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receiver rows: %w", err)
	}

	for i := range notifications {
		notifications[i].Receivers = receivers[notifications[i].ID]
	}
	return notifications, nil
}

func findByID(ctx context.Context, ext sqlx.ExtContext, id int) (*domain.Notificacion, error) {
	var n domain.Notificacion
	err := sqlx.GetContext(ctx, ext, &n,
		`SELECT id_notificacion, id_emisor, titulo_notificacion, contenido_notificacion,
		        fecha_notificacion, estado_notificacion
		 FROM notificacion_emergencia WHERE id_notificacion = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find notification by id %d: %w", id, err)
	}

	err = sqlx.SelectContext(ctx, ext, &n.Receivers,
		`SELECT id_receptor FROM notificacion_receptores WHERE id_notificacion = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find receivers of notification %d: %w", id, err)
	}
	return &n, nil
}

func existsByID(ctx context.Context, ext sqlx.ExtContext, id int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, ext, &exists,
		`SELECT EXISTS (SELECT 1 FROM notificacion_emergencia WHERE id_notificacion = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check notification %d exists: %w", id, err)
	}
	return exists, nil
}

func deleteByID(ctx context.Context, ext sqlx.ExtContext, id int) error {
	// Receiver rows go with the notification via ON DELETE CASCADE.
	if _, err := ext.ExecContext(ctx,
		`DELETE FROM notificacion_emergencia WHERE id_notificacion = $1`, id); err != nil {
		return fmt.Errorf("delete notification %d: %w", id, err)
	}
	return nil
}
