package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/carpinteria/internal/domain"
)

type ClientUC struct {
	Store domain.Store
}

func (uc *ClientUC) List(ctx context.Context, f domain.ClientFilter) ([]domain.Client, error) {
	var out []domain.Client
	err := uc.Store.View(ctx, func(v domain.View) error {
		q := strings.ToLower(strings.TrimSpace(f.Query))
		for _, c := range v.ListClients() {
			if f.Type != "" && c.Type != f.Type {
				continue
			}
			if q != "" && !containsAny(q, c.Name, c.Email, c.TaxID(), c.Address.City) {
				continue
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

func (uc *ClientUC) Get(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	err := uc.Store.View(ctx, func(v domain.View) error {
		var ok bool
		if c, ok = v.FindClient(id); !ok {
			return domain.NotFound("cliente", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (uc *ClientUC) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if err := validateEntity("cliente", c); err != nil {
		return nil, err
	}
	var created domain.Client
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		var err error
		created, err = tx.CreateClient(c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update no toca los acumulados; el nombre nuevo no se propaga a los proyectos existentes.
func (uc *ClientUC) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	var updated domain.Client
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		var err error
		updated, err = tx.UpdateClient(id, func(c *domain.Client) error {
			patch.Apply(c)
			c.Email = strings.ToLower(strings.TrimSpace(c.Email))
			return validateEntity("cliente", *c)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete borra el cliente y, uno por uno, sus proyectos con la cascada de cada proyecto.
// Un id inexistente no es error: devuelve false.
func (uc *ClientUC) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		if !tx.DeleteClient(id) {
			return nil
		}
		deleted = true
		n := 0
		for _, p := range tx.ListProjects() {
			if p.ClientID == id && deleteProjectCascade(tx, p.ID) {
				n++
			}
		}
		log.Info().Str("client_id", id).Int("projects", n).Msg("cliente borrado")
		return nil
	})
	return deleted, err
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
