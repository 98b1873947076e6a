package store

import "github.com/CrissP24/clinica-joya-sub000/pkg/types"

func userKey(id string) string { return prefixUsers + id }

// AddUser assigns an id and timestamps, persists the user and returns the
// stored copy. PasswordHash must already be hashed by the caller; the store
// never sees plaintext passwords.
func (s *Store) AddUser(u *types.SystemUser) (*types.SystemUser, error) {
	now := timestamp()
	created := *u
	created.ID = s.newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := s.putJSON(userKey(created.ID), &created); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": created.ID,
		"role":    created.Role,
	}).Info("user created")
	return &created, nil
}

// GetUsers returns every user in the collection
func (s *Store) GetUsers() ([]*types.SystemUser, error) {
	return listJSON[types.SystemUser](s, prefixUsers)
}

// GetUserByID returns one user or a not found error
func (s *Store) GetUserByID(id string) (*types.SystemUser, error) {
	return getJSON[types.SystemUser](s, userKey(id))
}

// GetUserByEmail returns the first user with the given email. Email
// uniqueness is not enforced, so duplicates resolve to the first in key
// order.
func (s *Store) GetUserByEmail(email string) (*types.SystemUser, error) {
	users, err := s.GetUsers()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, types.NewNotFoundError(types.ErrCodeNotFound, "user not found")
}

// UpdateUser shallow-merges the provided fields and re-stamps updatedAt.
// Returns a not found error if the user does not exist.
func (s *Store) UpdateUser(id string, updates *types.SystemUserUpdates) (*types.SystemUser, error) {
	existing, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		existing.Name = *updates.Name
	}
	if updates.Email != nil {
		existing.Email = *updates.Email
	}
	if updates.PasswordHash != nil {
		existing.PasswordHash = *updates.PasswordHash
	}
	if updates.Role != nil {
		existing.Role = *updates.Role
	}
	if updates.Specialty != nil {
		existing.Specialty = *updates.Specialty
	}
	if updates.IsActive != nil {
		existing.IsActive = *updates.IsActive
	}
	existing.UpdatedAt = timestamp()

	if err := s.putJSON(userKey(id), existing); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", id).Info("user updated")
	return existing, nil
}

// DeleteUser hard-deletes a user and reports whether a row was removed
func (s *Store) DeleteUser(id string) (bool, error) {
	existed, err := s.deleteKey(userKey(id))
	if err != nil {
		return false, err
	}
	if existed {
		s.logger.WithField("user_id", id).Info("user deleted")
	}
	return existed, nil
}
