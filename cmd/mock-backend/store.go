package main

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/intradash/adminkit/internal/common/dto"
)

// userRecord is the stored user plus the parts never exposed directly.
type userRecord struct {
	dto.UserDetailed
	Password string
	Personal dto.PersonalInfo
}

// store keeps the whole mock dataset in memory. All access goes
// through the mutex; handlers never touch the maps directly.
type store struct {
	mu sync.RWMutex

	users       map[string]*userRecord
	departments map[string]*dto.Department
	userDepts   map[string]*dto.UserDepartmentAssignment
	cards       map[string]*dto.Card
	cardUsers   map[string]*dto.UserCardAssignment
	cardDepts   map[string]*dto.CardDepartmentAssignment
	wifi        map[string]*dto.WifiNetwork
	quickLinks  map[string]*dto.QuickLink
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func newStore() *store {
	s := &store{
		users:       make(map[string]*userRecord),
		departments: make(map[string]*dto.Department),
		userDepts:   make(map[string]*dto.UserDepartmentAssignment),
		cards:       make(map[string]*dto.Card),
		cardUsers:   make(map[string]*dto.UserCardAssignment),
		cardDepts:   make(map[string]*dto.CardDepartmentAssignment),
		wifi:        make(map[string]*dto.WifiNetwork),
		quickLinks:  make(map[string]*dto.QuickLink),
	}
	s.seed()
	return s
}

// seed loads a small dataset so the CLI has something to talk to out
// of the box. The admin credentials are admin@intradash.local /
// admin123.
func (s *store) seed() {
	ts := now()

	admin := &userRecord{
		UserDetailed: dto.UserDetailed{
			ID:        uuid.New().String(),
			Email:     "admin@intradash.local",
			Username:  "admin",
			FirstName: "Admin",
			LastName:  "Root",
			Role:      dto.RoleAdmin,
			IsActive:  true,
			CreatedAt: ts,
			Cards:     []dto.UserCard{},
		},
		Password: "admin123",
	}
	admin.Personal = dto.PersonalInfo{
		ID:        uuid.New().String(),
		UserID:    admin.ID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.users[admin.ID] = admin

	it := &dto.Department{
		ID:        uuid.New().String(),
		Name:      "Sistemas",
		Slug:      "sistemas",
		IsActive:  true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	hr := &dto.Department{
		ID:        uuid.New().String(),
		Name:      "Recursos Humanos",
		Slug:      "recursos-humanos",
		IsActive:  true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.departments[it.ID] = it
	s.departments[hr.ID] = hr

	erp := &dto.Card{
		ID:        uuid.New().String(),
		Title:     "ERP",
		Type:      dto.CardTypeERP,
		IsActive:  true,
		SortOrder: 1,
		CreatedAt: ts,
		UpdatedAt: ts,
		CreatedBy: dto.CardCreatedBy{
			ID:        admin.ID,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
		},
	}
	s.cards[erp.ID] = erp
}

func (s *store) findUserByEmail(email string) *userRecord {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// userDepartmentsOf returns the active memberships of a user, sorted
// by department name for stable output.
func (s *store) userDepartmentsOf(userID string) []dto.MyDepartment {
	out := []dto.MyDepartment{}
	for _, a := range s.userDepts {
		if a.UserID != userID || !a.IsActive {
			continue
		}
		dept, ok := s.departments[a.DepartmentID]
		if !ok {
			continue
		}
		out = append(out, dto.MyDepartment{
			Assignment: dto.MyDepartmentAssignment{
				ID:       a.ID,
				IsHead:   a.IsHead,
				JoinedAt: a.JoinedAt,
			},
			Department: dto.MyDepartmentRef{
				ID:          dept.ID,
				Name:        dept.Name,
				Slug:        dept.Slug,
				Description: dept.Description,
				IsActive:    dept.IsActive,
			},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Department.Name < out[j].Department.Name
	})
	return out
}

// departmentCounts tallies the relation counters for one listing row.
func (s *store) departmentCounts(departmentID string) dto.DepartmentCounts {
	var counts dto.DepartmentCounts
	for _, a := range s.userDepts {
		if a.DepartmentID == departmentID && a.IsActive {
			counts.Users++
		}
	}
	for _, a := range s.cardDepts {
		if a.DepartmentID == departmentID && a.IsActive {
			counts.Cards++
		}
	}
	return counts
}

// assignmentOf returns the membership row for a (department, user)
// pair, active or not.
func (s *store) assignmentOf(departmentID, userID string) *dto.UserDepartmentAssignment {
	for _, a := range s.userDepts {
		if a.DepartmentID == departmentID && a.UserID == userID {
			return a
		}
	}
	return nil
}

// cardAssignmentOf returns the grant row for a (card, user) pair.
func (s *store) cardAssignmentOf(cardID, userID string) *dto.UserCardAssignment {
	for _, a := range s.cardUsers {
		if a.CardID == cardID && a.UserID == userID {
			return a
		}
	}
	return nil
}

// removeCardAssignments clears every user assignment of a card and
// reports how many were removed.
func (s *store) removeCardAssignments(cardID string) int {
	removed := 0
	for id, a := range s.cardUsers {
		if a.CardID == cardID {
			delete(s.cardUsers, id)
			removed++
		}
	}
	return removed
}

// paginate slices a sorted listing into one page.
func paginate[T any](items []T, page, limit int) ([]T, *dto.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := len(items)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], &dto.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}
