// Package permissions holds the role -> visible reports mapping edited on the
// permissions page.
package permissions

import (
	"context"
	"strings"
	"sync"

	"github.com/mehtaruchit28/ips-ui/backend/models"
	"github.com/mehtaruchit28/ips-ui/backend/repositories"
	"github.com/mehtaruchit28/ips-ui/backend/services"
)

// reportSet is a set of catalog reports
type reportSet map[models.Report]struct{}

func newReportSet(reports []models.Report) reportSet {
	s := make(reportSet, len(reports))
	for _, r := range reports {
		s[r] = struct{}{}
	}
	return s
}

// sorted returns the members in catalog order
func (s reportSet) sorted() []models.Report {
	out := make([]models.Report, 0, len(s))
	for _, r := range models.ReportCatalog() {
		if _, ok := s[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Store is one client's editable role mapping. Role order is insertion order.
// Every operation runs under the store's mutex.
type Store struct {
	mu     sync.Mutex
	order  []string
	roles  map[string]reportSet
	active string
}

// NewStore creates a store seeded with the built-in roles, Admin active
func NewStore() *Store {
	s := &Store{}
	s.reset(models.DefaultRolePermissions())
	return s
}

func (s *Store) reset(mapping []models.RolePermissions) {
	s.order = make([]string, 0, len(mapping))
	s.roles = make(map[string]reportSet, len(mapping))
	for _, rp := range mapping {
		if _, dup := s.roles[rp.Name]; dup {
			continue
		}
		s.order = append(s.order, rp.Name)
		s.roles[rp.Name] = newReportSet(rp.Reports)
	}
	s.active = models.BuiltinRoleAdmin
}

// Restore replaces the mapping with a saved one. Built-in roles missing from
// the saved mapping are re-seeded; unknown reports are rejected.
func (s *Store) Restore(mapping []models.RolePermissions) error {
	for _, rp := range mapping {
		if strings.TrimSpace(rp.Name) == "" {
			return services.ErrEmptyRoleName
		}
		for _, r := range rp.Reports {
			if !r.Valid() {
				return services.ErrUnknownReport.WithDetail("report", string(r))
			}
		}
	}

	merged := make([]models.RolePermissions, 0, len(mapping)+3)
	present := make(map[string]bool, len(mapping))
	for _, rp := range mapping {
		present[rp.Name] = true
	}
	for _, def := range models.DefaultRolePermissions() {
		if !present[def.Name] {
			merged = append(merged, def)
		}
	}
	merged = append(merged, mapping...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(merged)
	return nil
}

// SelectRole makes name the active role. Unknown names are accepted; the
// active report set then reads as empty.
func (s *Store) SelectRole(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = name
}

// ActiveRole returns the role being edited
func (s *Store) ActiveRole() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ActiveReports returns the active role's reports, empty when the role is absent
func (s *Store) ActiveReports() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.roles[s.active]
	if !ok {
		return []models.Report{}
	}
	return set.sorted()
}

// Reports returns the reports of role in catalog order
func (s *Store) Reports(role string) ([]models.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.roles[role]
	if !ok {
		return nil, false
	}
	return set.sorted(), true
}

// HasRole reports whether role exists in the mapping
func (s *Store) HasRole(role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.roles[role]
	return ok
}

// Roles returns a snapshot of the mapping in role order
func (s *Store) Roles() []models.RolePermissions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []models.RolePermissions {
	out := make([]models.RolePermissions, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, models.RolePermissions{
			Name:    name,
			Builtin: models.IsBuiltinRole(name),
			Reports: s.roles[name].sorted(),
		})
	}
	return out
}

// ToggleReport removes report from role if present, else adds it
func (s *Store) ToggleReport(role string, report models.Report) error {
	if !report.Valid() {
		return services.ErrUnknownReport.WithDetail("report", string(report))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.roles[role]
	if !ok {
		return services.ErrRoleNotFound.WithDetail("role", role)
	}
	if _, has := set[report]; has {
		delete(set, report)
	} else {
		set[report] = struct{}{}
	}
	return nil
}

// CreateRole adds an empty role and makes it active
func (s *Store) CreateRole(name string) error {
	if strings.TrimSpace(name) == "" {
		return services.ErrEmptyRoleName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[name]; exists || models.IsBuiltinRole(name) {
		return services.ErrDuplicateRole.WithDetail("role", name)
	}
	s.order = append(s.order, name)
	s.roles[name] = reportSet{}
	s.active = name
	return nil
}

// DeleteRole removes a custom role and resets the active role to Admin
func (s *Store) DeleteRole(name string) error {
	if models.IsBuiltinRole(name) {
		return services.ErrProtectedRole.WithDetail("role", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[name]; !ok {
		return services.ErrRoleNotFound.WithDetail("role", name)
	}
	delete(s.roles, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.active = models.BuiltinRoleAdmin
	return nil
}

// SelectAll grants every catalog report to role
func (s *Store) SelectAll(role string) error {
	return s.replace(role, newReportSet(models.ReportCatalog()))
}

// DeselectAll clears role's reports
func (s *Store) DeselectAll(role string) error {
	return s.replace(role, reportSet{})
}

func (s *Store) replace(role string, set reportSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[role]; !ok {
		return services.ErrRoleNotFound.WithDetail("role", role)
	}
	s.roles[role] = set
	return nil
}

// Save hands a snapshot of the mapping to repo
func (s *Store) Save(ctx context.Context, repo repositories.PermissionRepository) error {
	snapshot := s.Roles()
	if err := repo.Put(ctx, snapshot); err != nil {
		return services.WrapError(services.ErrPermissionsSave, err)
	}
	return nil
}
