package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vergaracl/fitfam/internal/models"
)

var ErrBadRoster = errors.New("malformed roster")

type RosterUserStore interface {
	FindByID(userID string) (models.User, bool, error)
	Create(user *models.User) error
	UpdateByID(userID string, updates map[string]any) error
}

type RosterMember struct {
	ID     string
	Name   string
	Avatar string
}

// ParseRoster reads the family roster from its configuration form:
// comma-separated "id:Name" or "id:Name:avatar" entries.
func ParseRoster(raw string) ([]RosterMember, error) {
	entries := strings.Split(raw, ",")
	members := make([]RosterMember, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.SplitN(entry, ":", 3)
		if len(fields) < 2 || strings.TrimSpace(fields[0]) == "" || strings.TrimSpace(fields[1]) == "" {
			return nil, fmt.Errorf("%w: entry %q", ErrBadRoster, entry)
		}

		member := RosterMember{
			ID:   strings.TrimSpace(fields[0]),
			Name: strings.TrimSpace(fields[1]),
		}
		if len(fields) == 3 {
			member.Avatar = strings.TrimSpace(fields[2])
		}
		if seen[member.ID] {
			return nil, fmt.Errorf("%w: duplicate member id %s", ErrBadRoster, member.ID)
		}
		seen[member.ID] = true
		members = append(members, member)
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrBadRoster)
	}
	return members, nil
}

// EnsureRoster creates missing members with a fresh ledger and keeps
// name/avatar in sync with configuration. Game state of existing members is
// never touched.
func EnsureRoster(users RosterUserStore, members []RosterMember) error {
	for _, member := range members {
		existing, found, err := users.FindByID(member.ID)
		if err != nil {
			return fmt.Errorf("load member %s: %w", member.ID, err)
		}

		if !found {
			user := models.User{
				ID:               member.ID,
				Name:             member.Name,
				Avatar:           member.Avatar,
				CurrentFineLevel: BaseFine,
			}
			if err := users.Create(&user); err != nil {
				return fmt.Errorf("create member %s: %w", member.ID, err)
			}
			continue
		}

		if existing.Name != member.Name || existing.Avatar != member.Avatar {
			updates := map[string]any{"name": member.Name, "avatar": member.Avatar}
			if err := users.UpdateByID(member.ID, updates); err != nil {
				return fmt.Errorf("sync member %s: %w", member.ID, err)
			}
		}
	}
	return nil
}
