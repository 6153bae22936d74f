package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/safe-rescue/api-notificaciones/internal/domain"
)

const (
	maxTitleLen = 50
	maxBodyLen  = 500
)

// NotificacionStore defines the data access interface consumed by
// NotificacionService. InTx runs fn against a store bound to a single
// transaction that commits on nil return and rolls back otherwise.
type NotificacionStore interface {
	Save(ctx context.Context, n *domain.Notificacion) (*domain.Notificacion, error)
	FindAll(ctx context.Context) ([]domain.Notificacion, error)
	FindByID(ctx context.Context, id int) (*domain.Notificacion, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	DeleteByID(ctx context.Context, id int) error
	InTx(ctx context.Context, fn func(NotificacionStore) error) error
}

// NotificacionService owns the business rules for emergency notifications:
// server-assigned fields on create, the partial-update merge, and the
// existence checks that precede delete.
type NotificacionService struct {
	store NotificacionStore
}

// NewNotificacionService creates a new NotificacionService.
func NewNotificacionService(store NotificacionStore) *NotificacionService {
	return &NotificacionService{store: store}
}

// Create persists a new notification. The creation timestamp and the
// active flag are assigned here regardless of what the client sent, and
// the receiver list must be non-empty.
func (s *NotificacionService) Create(ctx context.Context, n *domain.Notificacion) (*domain.Notificacion, error) {
	if len(n.Receivers) == 0 {
		return nil, &domain.InvalidArgumentError{Message: "La lista de receptores no puede estar vacía al crear."}
	}

	var created *domain.Notificacion
	err := s.store.InTx(ctx, func(store NotificacionStore) error {
		n.ID = 0
		n.CreatedAt = domain.NowLocal()
		n.Active = true

		var saveErr error
		created, saveErr = store.Save(ctx, n)
		return saveErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetAll returns every stored notification.
func (s *NotificacionService) GetAll(ctx context.Context) ([]domain.Notificacion, error) {
	return s.store.FindAll(ctx)
}

// GetByID returns the notification with the given id, or ErrNotFound.
func (s *NotificacionService) GetByID(ctx context.Context, id int) (*domain.Notificacion, error) {
	return s.store.FindByID(ctx, id)
}

// Update applies a partial update to an existing notification. Fields
// absent from the patch keep their stored values; id, emitter and creation
// timestamp are never touched. Checks run in a fixed order (title, body,
// active, receivers) so error messages are deterministic.
func (s *NotificacionService) Update(ctx context.Context, id int, patch domain.NotificacionPatch) (*domain.Notificacion, error) {
	var updated *domain.Notificacion
	err := s.store.InTx(ctx, func(store NotificacionStore) error {
		existing, err := store.FindByID(ctx, id)
		if err != nil {
			return notFoundErr(id, err)
		}

		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				return &domain.InvalidArgumentError{Message: "El título no puede estar en blanco."}
			}
			if utf8.RuneCountInString(*patch.Title) > maxTitleLen {
				return &domain.InvalidArgumentError{Message: "El título debe tener entre 1 y 50 caracteres."}
			}
			existing.Title = *patch.Title
		}

		if patch.Body != nil {
			if strings.TrimSpace(*patch.Body) == "" {
				return &domain.InvalidArgumentError{Message: "El contenido no puede estar en blanco."}
			}
			if utf8.RuneCountInString(*patch.Body) > maxBodyLen {
				return &domain.InvalidArgumentError{Message: "El contenido debe tener entre 1 y 500 caracteres."}
			}
			existing.Body = *patch.Body
		}

		if patch.Active != nil {
			existing.Active = *patch.Active
		}

		if patch.Receivers != nil {
			if len(patch.Receivers) == 0 {
				return &domain.InvalidArgumentError{Message: "La lista de receptores no puede quedar vacía al actualizar."}
			}
			existing.Receivers = patch.Receivers
		}

		var saveErr error
		updated, saveErr = store.Save(ctx, existing)
		return saveErr
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the notification with the given id, or fails with
// ErrNotFound when no such record exists.
func (s *NotificacionService) Delete(ctx context.Context, id int) error {
	return s.store.InTx(ctx, func(store NotificacionStore) error {
		exists, err := store.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Message: fmt.Sprintf("Notificación no encontrada con ID: %d para eliminar.", id)}
		}
		return store.DeleteByID(ctx, id)
	})
}

func notFoundErr(id int, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.NotFoundError{Message: fmt.Sprintf("Notificación no encontrada con ID: %d", id)}
	}
	return err
}
