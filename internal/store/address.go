package store

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/pkg/mylogger"
	"github.com/NeerajGithb/furniture-client-sub000/pkg/validate"
)

type addressAPI interface {
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	UpdateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

var (
	phoneRe  = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	postalRe = regexp.MustCompile(`^[0-9]{5,6}$`)
	nameRe   = regexp.MustCompile(`^[\p{L} .'-]+$`)
)

// AddressStore caches the user's saved addresses with optimistic CRUD:
// validate, snapshot, apply locally, request, then reconcile with the server
// record or restore the snapshot.
type AddressStore struct {
	api      addressAPI
	logger   *zap.Logger
	validate *validator.Validate

	mu        sync.Mutex
	addresses []domain.Address
	loaded    bool
	deleting  map[int64]struct{}
	tempSeq   int64
}

func NewAddressStore(apiClient addressAPI, logger *zap.Logger) *AddressStore {
	return &AddressStore{
		api:      apiClient,
		logger:   logger,
		validate: validator.New(),
		deleting: make(map[int64]struct{}),
	}
}

// ValidateAddress runs the struct tags plus the stricter phone/postal/name
// checks. It never performs IO.
func (s *AddressStore) ValidateAddress(address *domain.Address) error {
	if err := s.validate.Struct(address); err != nil {
		return &validate.Error{Fields: validate.FormatError(err)}
	}

	fields := make(map[string]string)
	if !phoneRe.MatchString(address.Phone) {
		fields["phone"] = "phone must be 10-15 digits"
	}
	if !postalRe.MatchString(address.PostalCode) {
		fields["postal_code"] = "postal code must be 5-6 digits"
	}
	if !nameRe.MatchString(address.FullName) {
		fields["full_name"] = "name contains invalid characters"
	}

	if len(fields) > 0 {
		return &validate.Error{Fields: fields}
	}
	return nil
}

func (s *AddressStore) Load(ctx context.Context) error {
	addresses, err := s.api.ListAddresses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load addresses: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses = addresses
	s.loaded = true
	return nil
}

func (s *AddressStore) Addresses() []domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]domain.Address, len(s.addresses))
	copy(cp, s.addresses)
	return cp
}

func (s *AddressStore) Find(id int64) (domain.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.addresses {
		if s.addresses[i].ID == id {
			return s.addresses[i], true
		}
	}
	return domain.Address{}, false
}

// Create inserts the address optimistically under a negative temp id; on
// success the temp record is swapped for the server record (server id
// included).
func (s *AddressStore) Create(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if err := s.ValidateAddress(address); err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev := make([]domain.Address, len(s.addresses))
	copy(prev, s.addresses)

	s.tempSeq--
	tempID := s.tempSeq
	optimistic := *address
	optimistic.ID = tempID
	s.addresses = append(s.addresses, optimistic)
	s.mu.Unlock()

	created, err := s.api.CreateAddress(ctx, address)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Address create failed, rolling back", zap.Error(err))

		s.mu.Lock()
		s.addresses = prev
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	s.mu.Lock()
	for i := range s.addresses {
		if s.addresses[i].ID == tempID {
			s.addresses[i] = *created
			break
		}
	}
	s.mu.Unlock()

	return created, nil
}

// Update patches the record in place optimistically and replaces it with the
// server-returned record on success.
func (s *AddressStore) Update(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if err := s.ValidateAddress(address); err != nil {
		return nil, err
	}

	s.mu.Lock()
	idx := -1
	for i := range s.addresses {
		if s.addresses[i].ID == address.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Update for unknown address", zap.Int64("address_id", address.ID))
		return nil, ErrNotFound
	}

	prev := make([]domain.Address, len(s.addresses))
	copy(prev, s.addresses)
	s.addresses[idx] = *address
	s.mu.Unlock()

	updated, err := s.api.UpdateAddress(ctx, address)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Address update failed, rolling back", zap.Error(err))

		s.mu.Lock()
		s.addresses = prev
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	s.mu.Lock()
	for i := range s.addresses {
		if s.addresses[i].ID == updated.ID {
			s.addresses[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	return updated, nil
}

// Delete removes the record optimistically. The deleting set only exists so
// the UI can disable the row's controls while the request is in flight.
func (s *AddressStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	if _, busy := s.deleting[id]; busy {
		s.mu.Unlock()
		return ErrUpdateInFlight
	}
	s.deleting[id] = struct{}{}

	prev := make([]domain.Address, len(s.addresses))
	copy(prev, s.addresses)

	kept := s.addresses[:0:0]
	for i := range s.addresses {
		if s.addresses[i].ID != id {
			kept = append(kept, s.addresses[i])
		}
	}
	s.addresses = kept
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.deleting, id)
		s.mu.Unlock()
	}()

	if err := s.api.DeleteAddress(ctx, id); err != nil {
		mylogger.Warn(ctx, s.logger, "Address delete failed, rolling back",
			zap.Int64("address_id", id),
			zap.Error(err),
		)

		s.mu.Lock()
		s.addresses = prev
		s.mu.Unlock()
		return fmt.Errorf("failed to delete address: %w", err)
	}

	return nil
}

func (s *AddressStore) IsDeleting(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.deleting[id]
	return ok
}
