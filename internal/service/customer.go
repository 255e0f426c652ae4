package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-registry/internal/cache"
	"github.com/umalmyha/customer-registry/internal/config"
	"github.com/umalmyha/customer-registry/internal/country"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/model"
	"github.com/umalmyha/customer-registry/internal/repository"
	"github.com/umalmyha/customer-registry/pkg/db/transactor"
)

// CustomerService holds customer business rules
type CustomerService interface {
	Create(context.Context, *model.Customer) (*model.Customer, error)
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int) (*model.Customer, error)
	FindByCountry(context.Context, int16) ([]*model.Customer, error)
	Update(context.Context, *model.CustomerUpdate) error
	DeleteByID(context.Context, int) error
}

type customerService struct {
	trx           transactor.Transactor
	customerRepo  repository.CustomerRepository
	customerCache cache.CustomerCache
	lookup        country.Lookup
	deleteMode    config.DeleteMode
}

// NewCustomerService builds CustomerService
func NewCustomerService(
	trx transactor.Transactor,
	customerRepo repository.CustomerRepository,
	customerCache cache.CustomerCache,
	lookup country.Lookup,
	deleteMode config.DeleteMode,
) CustomerService {
	return &customerService{
		trx:           trx,
		customerRepo:  customerRepo,
		customerCache: customerCache,
		lookup:        lookup,
		deleteMode:    deleteMode,
	}
}

// Create registers new active customer. Checks run in fixed order and the first failure wins.
// Country is resolved once the id is reserved, outside of the transaction.
func (s *customerService) Create(ctx context.Context, candidate *model.Customer) (*model.Customer, error) {
	id, err := s.reserveID(ctx, candidate)
	if err != nil {
		return nil, err
	}

	demonym, err := s.demonym(ctx, candidate.Country)
	if err != nil {
		return nil, err
	}

	c := *candidate
	c.ID = id
	c.Demonym = demonym
	c.Disabled = false

	if err := s.write(s.customerRepo.Create(ctx, &c)); err != nil {
		return nil, err
	}
	return &c, nil
}

// reserveID probes contacts uniqueness and takes next customer id
func (s *customerService) reserveID(ctx context.Context, candidate *model.Customer) (int, error) {
	var id int

	err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		emailTaken, err := s.customerRepo.EmailExists(ctx, candidate.Email, 0)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness - %w", err)
		}

		if emailTaken {
			return apperrors.ErrDuplicateEmail
		}

		phoneTaken, err := s.customerRepo.PhoneExists(ctx, candidate.Phone, 0)
		if err != nil {
			return fmt.Errorf("failed to check phone uniqueness - %w", err)
		}

		if phoneTaken {
			return apperrors.ErrDuplicatePhone
		}

		next, err := s.customerRepo.NextID(ctx)
		if err != nil {
			return apperrors.ErrIDGeneration.Wrap(err)
		}

		if next <= 0 {
			return apperrors.ErrIDGeneration
		}

		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *customerService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers - %w", err)
	}
	return customers, nil
}

func (s *customerService) FindByCountry(ctx context.Context, code int16) ([]*model.Customer, error) {
	customers, err := s.customerRepo.FindByCountry(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers of country %d - %w", code, err)
	}
	return customers, nil
}

// FindByID reads customer from cache and falls back to store, store hits are cached
func (s *customerService) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		logrus.WithField("customer", id).Warnf("failed to read customer from cache - %v", err)
	}

	if c != nil {
		return c, nil
	}

	c, err = s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read customer %d - %w", id, err)
	}

	if c == nil {
		return nil, apperrors.ErrCustomerNotFound
	}

	if err := s.customerCache.Create(ctx, c); err != nil {
		logrus.WithField("customer", id).Warnf("failed to cache customer - %v", err)
	}
	return c, nil
}

// Update changes contacts and country of active customer, demonym is always recomputed
func (s *customerService) Update(ctx context.Context, upd *model.CustomerUpdate) error {
	if upd.Email != nil {
		taken, err := s.customerRepo.EmailExists(ctx, *upd.Email, upd.ID)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness - %w", err)
		}

		if taken {
			return apperrors.ErrDuplicateEmail
		}
	}

	if upd.Phone != nil {
		taken, err := s.customerRepo.PhoneExists(ctx, *upd.Phone, upd.ID)
		if err != nil {
			return fmt.Errorf("failed to check phone uniqueness - %w", err)
		}

		if taken {
			return apperrors.ErrDuplicatePhone
		}
	}

	demonym, err := s.demonym(ctx, upd.Country)
	if err != nil {
		return err
	}
	upd.Demonym = demonym

	updated, err := s.customerRepo.Update(ctx, upd)
	if err != nil {
		return s.writeErr(err)
	}

	if !updated {
		return apperrors.ErrCustomerNotFound
	}
	return s.evict(ctx, upd.ID)
}

// DeleteByID disables or removes customer depending on delete mode. Missing customer is NotFound.
func (s *customerService) DeleteByID(ctx context.Context, id int) error {
	var (
		deleted bool
		err     error
	)

	if s.deleteMode == config.DeleteModeHard {
		deleted, err = s.customerRepo.DeleteByID(ctx, id)
	} else {
		deleted, err = s.customerRepo.DisableByID(ctx, id)
	}

	if err != nil {
		return s.writeErr(err)
	}

	if !deleted {
		return apperrors.ErrCustomerNotFound
	}
	return s.evict(ctx, id)
}

func (s *customerService) demonym(ctx context.Context, code int16) (string, error) {
	demonym, err := s.lookup.Demonym(ctx, code)
	if err != nil {
		return "", apperrors.ErrCountryResolution.Wrap(err)
	}

	if demonym == "" {
		return "", apperrors.ErrCountryResolution
	}
	return demonym, nil
}

func (s *customerService) write(written bool, err error) error {
	if err != nil {
		return s.writeErr(err)
	}

	if !written {
		return apperrors.ErrStoreWrite
	}
	return nil
}

// writeErr keeps duplicate kinds raised by store constraints, everything else is a write failure
func (s *customerService) writeErr(err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindDuplicateEmail, apperrors.KindDuplicatePhone:
		return err
	default:
		return apperrors.ErrStoreWrite.Wrap(err)
	}
}

func (s *customerService) evict(ctx context.Context, id int) error {
	if err := s.customerCache.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to evict customer %d from cache - %w", id, err)
	}
	return nil
}
