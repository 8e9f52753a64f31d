package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación en memoria.
type UserRepository struct {
	s    *Store
	inTx bool
}

// NewUserRepository construye el repositorio fuera de transacción.
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	var err error
	r.s.do(r.inTx, func() {
		if _, ok := r.s.users[user.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		for _, u := range r.s.users {
			if strings.EqualFold(u.Email, user.Email) {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		if user.Points < 0 {
			err = domain.ErrConflict
			return
		}
		r.s.users[user.ID] = copyUser(user)
	})
	return err
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.s.do(r.inTx, func() { out = copyUser(r.s.users[id]) })
	return out, nil
}

// GetForUpdate equivale a GetByID: la tx ya tiene el Store bloqueado.
func (r *UserRepository) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.do(r.inTx, func() {
		for _, u := range r.s.users {
			if strings.EqualFold(u.Email, email) {
				out = copyUser(u)
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, user *entity.User) error {
	var err error
	r.s.do(r.inTx, func() {
		cur, ok := r.s.users[user.ID]
		if !ok {
			err = domain.ErrUserNotFound
			return
		}
		for _, u := range r.s.users {
			if u.ID != user.ID && strings.EqualFold(u.Email, user.Email) {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		next := copyUser(user)
		next.Points = cur.Points
		r.s.users[user.ID] = next
	})
	return err
}

func (r *UserRepository) UpdatePoints(_ context.Context, id string, points int) error {
	var err error
	r.s.do(r.inTx, func() {
		u, ok := r.s.users[id]
		if !ok {
			err = domain.ErrUserNotFound
			return
		}
		if points < 0 {
			err = domain.ErrConflict
			return
		}
		u.Points = points
	})
	return err
}

func (r *UserRepository) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	r.s.do(r.inTx, func() {
		for _, u := range r.s.users {
			if filter.Role != "" && u.Role != filter.Role {
				continue
			}
			out = append(out, copyUser(u))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *UserRepository) ExistsByRole(_ context.Context, role string) (bool, error) {
	found := false
	r.s.do(r.inTx, func() {
		for _, u := range r.s.users {
			if u.Role == role {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	var err error
	r.s.do(r.inTx, func() {
		if _, ok := r.s.users[id]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		for _, o := range r.s.orders {
			if o.UserID == id {
				err = domain.ErrUserInUse
				return
			}
		}
		for _, t := range r.s.ledger {
			if t.UserID == id {
				err = domain.ErrUserInUse
				return
			}
		}
		delete(r.s.users, id)
	})
	return err
}
