package main

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/common/config"
	"github.com/intradash/adminkit/internal/common/dto"
)

// server holds the mock backend state and its token signing config.
type server struct {
	store  *store
	jwt    *config.JWTConfig
	logger *zap.Logger
}

func newServer(cfg *config.MockBackendConfig, logger *zap.Logger) *server {
	return &server{
		store:  newStore(),
		jwt:    &cfg.JWT,
		logger: logger,
	}
}

// ok writes the standard success envelope.
func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"success":   true,
		"message":   message,
		"timestamp": now(),
		"data":      data,
	})
}

// okPage writes the paginated success envelope.
func okPage(c *gin.Context, data any, page *dto.Pagination) {
	body := gin.H{
		"success":   true,
		"message":   "ok",
		"timestamp": now(),
		"data":      data,
	}
	if page != nil {
		body["pagination"] = page
	}
	c.JSON(http.StatusOK, body)
}

// fail writes the error envelope the client's error parser expects.
func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":   false,
		"message":   message,
		"code":      code,
		"errorId":   uuid.New().String(),
		"timestamp": now(),
	})
}

// issueToken signs an HS256 token carrying the identity claims the
// client decodes locally.
func (s *server) issueToken(u *userRecord) (string, error) {
	claims := jwt.MapClaims{
		"sub":       u.ID,
		"email":     u.Email,
		"username":  u.Username,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"role":      string(u.Role),
		"isActive":  u.IsActive,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(s.jwt.Duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwt.SecretKey))
}

// authRequired verifies the bearer token and stashes the caller's user
// ID in the request context.
func (s *server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, okm := t.Method.(*jwt.SigningMethodHMAC); !okm {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwt.SecretKey), nil
		})
		if err != nil || !token.Valid {
			fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}
		claims, okc := token.Claims.(jwt.MapClaims)
		if !okc {
			fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "malformed claims")
			return
		}
		sub, _ := claims["sub"].(string)
		c.Set("userID", sub)
		c.Next()
	}
}

func (s *server) currentUser(c *gin.Context) *userRecord {
	id := c.GetString("userID")
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return s.store.users[id]
}

// registerRoutes wires every endpoint under the API prefix.
func (s *server) registerRoutes(router *gin.Engine) {
	api := router.Group(config.DefaultPrefix)

	api.POST("/auth/login", s.login)

	authed := api.Group("", s.authRequired())
	authed.GET("/auth/me", s.me)

	authed.GET("/users/", s.listUsers)
	authed.POST("/users/create", s.createUser)
	authed.GET("/users/:id", s.getUser)
	authed.PATCH("/users/:id/update", s.updateUserBasic)
	authed.PATCH("/users/:id/personal-info", s.updateUserPersonal)
	authed.PATCH("/users/:id/role", s.updateUserRole)
	authed.PATCH("/users/:id/status", s.updateUserStatus)
	authed.PATCH("/users/:id/reset-password", s.resetPassword)
	authed.PATCH("/admin/users/bulk-update", s.bulkUpdateUsers)

	authed.GET("/departments/", s.listDepartments)
	authed.POST("/departments/", s.createDepartment)
	authed.GET("/departments/my-departments", s.myDepartments)
	authed.GET("/departments/slug/:slug", s.getDepartmentBySlug)
	authed.GET("/departments/user/:userId", s.departmentsOfUser)
	authed.GET("/departments/:id", s.getDepartment)
	authed.PATCH("/departments/:id", s.updateDepartment)
	authed.DELETE("/departments/:id", s.deleteDepartment)
	authed.POST("/departments/:id/users/:userId", s.assignUserToDepartment)
	authed.DELETE("/departments/:id/users/:userId", s.removeUserFromDepartment)
	authed.GET("/departments/:id/cards", s.departmentCards)
	authed.POST("/departments/:id/cards/:cardId", s.assignCardToDepartment)
	authed.DELETE("/departments/:id/cards/:cardId", s.removeCardFromDepartment)

	authed.GET("/cards/", s.listCards)
	authed.POST("/cards/", s.createCard)
	authed.GET("/cards/my-cards", s.myCards)
	authed.GET("/cards/:id", s.getCard)
	authed.PATCH("/cards/:id", s.updateCard)
	authed.DELETE("/cards/:id", s.softDeleteCard)
	authed.DELETE("/cards/:id/delete", s.deleteCard)
	authed.POST("/cards/:id/assign/:userId", s.assignCardToUser)
	authed.DELETE("/cards/:id/assign/:userId", s.unassignCardFromUser)
	authed.PATCH("/cards/:id/featured", s.updateCardFeatured)

	authed.GET("/config/wifi/", s.listWifi)
	authed.POST("/config/wifi/", s.createWifi)
	authed.GET("/config/wifi/:id", s.getWifi)
	authed.PATCH("/config/wifi/:id", s.updateWifi)
	authed.DELETE("/config/wifi/:id", s.deleteWifi)

	authed.GET("/config/quick-links/", s.listQuickLinks)
	authed.POST("/config/quick-links/", s.createQuickLink)
	authed.GET("/config/quick-links/:id", s.getQuickLink)
	authed.PATCH("/config/quick-links/:id", s.updateQuickLink)
	authed.DELETE("/config/quick-links/:id", s.deleteQuickLink)
}

func (s *server) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.RLock()
	user := s.store.findUserByEmail(req.Email)
	s.store.mu.RUnlock()

	if user == nil || user.Password != req.Password {
		fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		return
	}
	if !user.IsActive {
		fail(c, http.StatusForbidden, "USER_INACTIVE", "account is deactivated")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "failed to sign token")
		return
	}
	s.logger.Info("user logged in", zap.String("email", user.Email))

	ok(c, http.StatusOK, "login successful", dto.AuthData{
		User: dto.AuthUser{
			ID:        user.ID,
			Email:     user.Email,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      string(user.Role),
			IsActive:  user.IsActive,
		},
		AccessToken: token,
	})
}

func (s *server) me(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
		return
	}
	ok(c, http.StatusOK, "ok", user.UserDetailed)
}

func (s *server) listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	role := c.Query("role")
	search := strings.ToLower(c.Query("search"))
	isActive := c.Query("isActive")

	s.store.mu.RLock()
	items := []dto.UserListItem{}
	for _, u := range s.store.users {
		if role != "" && string(u.Role) != role {
			continue
		}
		if isActive == "true" && !u.IsActive {
			continue
		}
		if isActive == "false" && u.IsActive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.FirstName+" "+u.LastName), search) {
			continue
		}
		items = append(items, dto.UserListItem{
			ID:           u.ID,
			Email:        u.Email,
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Role:         u.Role,
			IsActive:     u.IsActive,
			LastLogin:    u.LastLogin,
			CreatedAt:    u.CreatedAt,
			PersonalInfo: u.PersonalInfo,
			CardCount:    len(u.Cards),
		})
	}
	s.store.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
	pageItems, pagination := paginate(items, page, limit)
	okPage(c, pageItems, pagination)
}

func (s *server) getUser(c *gin.Context) {
	s.store.mu.RLock()
	user, found := s.store.users[c.Param("id")]
	s.store.mu.RUnlock()
	if !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	ok(c, http.StatusOK, "ok", user.UserDetailed)
}

func (s *server) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !req.Role.Valid() {
		fail(c, http.StatusBadRequest, "INVALID_ROLE", "unknown role: "+string(req.Role))
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.findUserByEmail(req.Email) != nil {
		fail(c, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
		return
	}

	ts := now()
	user := &userRecord{
		UserDetailed: dto.UserDetailed{
			ID:        uuid.New().String(),
			Email:     req.Email,
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      req.Role,
			IsActive:  true,
			CreatedAt: ts,
			Cards:     []dto.UserCard{},
		},
		Password: req.Password,
	}
	user.Personal = dto.PersonalInfo{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.store.users[user.ID] = user
	ok(c, http.StatusCreated, "user created", user.UserDetailed)
}

func (s *server) updateUserBasic(c *gin.Context) {
	var req dto.UpdateBasicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	user, found := s.store.users[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			fail(c, http.StatusBadRequest, "INVALID_ROLE", "unknown role: "+string(*req.Role))
			return
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	ok(c, http.StatusOK, "user updated", user.UserDetailed)
}

func (s *server) updateUserPersonal(c *gin.Context) {
	var req dto.UpdatePersonalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	user, found := s.store.users[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	p := &user.Personal
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.Department != nil {
		p.Department = req.Department
	}
	if req.Position != nil {
		p.Position = req.Position
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
	}
	if req.EmergencyContact != nil {
		p.EmergencyContact = req.EmergencyContact
	}
	if req.CurrentMachine != nil {
		p.CurrentMachine = req.CurrentMachine
	}
	p.UpdatedAt = now()
	user.PersonalInfo = &dto.PersonalInfoLite{
		Department:     p.Department,
		Position:       p.Position,
		StartDate:      p.StartDate,
		CurrentMachine: p.CurrentMachine,
	}
	ok(c, http.StatusOK, "personal info updated", *p)
}

func (s *server) updateUserRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !req.Role.Valid() {
		fail(c, http.StatusBadRequest, "INVALID_ROLE", "unknown role: "+string(req.Role))
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	user, found := s.store.users[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	user.Role = req.Role
	ok(c, http.StatusOK, "role updated", user.UserDetailed)
}

func (s *server) updateUserStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	user, found := s.store.users[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	user.IsActive = req.IsActive
	ok(c, http.StatusOK, "status updated", user.UserDetailed)
}

func (s *server) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if len(req.NewPassword) < 6 {
		fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "password must be at least 6 characters")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	user, found := s.store.users[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	user.Password = req.NewPassword
	ok(c, http.StatusOK, "password reset", gin.H{"id": user.ID})
}

func (s *server) bulkUpdateUsers(c *gin.Context) {
	var req dto.AdminBulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	updated := 0
	for _, id := range req.UserIDs {
		user, found := s.store.users[id]
		if !found {
			continue
		}
		switch req.Action {
		case dto.BulkActionActivate:
			user.IsActive = true
		case dto.BulkActionDeactivate:
			user.IsActive = false
		case dto.BulkActionUpdateRole:
			if req.Data == nil || !req.Data.Role.Valid() {
				fail(c, http.StatusBadRequest, "INVALID_ROLE", "bulk role update needs a valid role")
				return
			}
			user.Role = req.Data.Role
		default:
			fail(c, http.StatusBadRequest, "INVALID_ACTION", "unknown bulk action: "+string(req.Action))
			return
		}
		updated++
	}
	ok(c, http.StatusOK, "bulk update applied", gin.H{
		"requested": len(req.UserIDs),
		"updated":   updated,
	})
}

func (s *server) listDepartments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	isActive := c.Query("isActive")
	search := strings.ToLower(c.Query("search"))

	s.store.mu.RLock()
	items := []dto.DepartmentListItem{}
	for _, d := range s.store.departments {
		if isActive == "true" && !d.IsActive {
			continue
		}
		if isActive == "false" && d.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Name), search) {
			continue
		}
		items = append(items, dto.DepartmentListItem{
			Department: *d,
			Count:      s.store.departmentCounts(d.ID),
		})
	}
	s.store.mu.RUnlock()

	sortBy := c.DefaultQuery("sortBy", "name")
	asc := c.DefaultQuery("sortOrder", "asc") != "desc"
	sort.Slice(items, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "slug":
			less = items[i].Slug < items[j].Slug
		case "createdAt":
			less = items[i].CreatedAt < items[j].CreatedAt
		default:
			less = items[i].Name < items[j].Name
		}
		if !asc {
			return !less
		}
		return less
	})
	pageItems, pagination := paginate(items, page, limit)
	okPage(c, pageItems, pagination)
}

// detailedDepartment expands a department's relations. Caller holds
// the store lock.
func (s *server) detailedDepartment(d *dto.Department) dto.DepartmentDetailed {
	detail := dto.DepartmentDetailed{
		Department: *d,
		Users:      []dto.DepartmentUser{},
		Cards:      []dto.DepartmentCard{},
	}
	for _, a := range s.store.userDepts {
		if a.DepartmentID != d.ID || !a.IsActive {
			continue
		}
		user, found := s.store.users[a.UserID]
		if !found {
			continue
		}
		detail.Users = append(detail.Users, dto.DepartmentUser{
			ID:       a.ID,
			UserID:   a.UserID,
			IsHead:   a.IsHead,
			JoinedAt: a.JoinedAt,
			IsActive: a.IsActive,
			User: dto.DepartmentUserRef{
				ID:        user.ID,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Email:     user.Email,
				Role:      string(user.Role),
			},
		})
	}
	for _, a := range s.store.cardDepts {
		if a.DepartmentID != d.ID || !a.IsActive {
			continue
		}
		card, found := s.store.cards[a.CardID]
		if !found {
			continue
		}
		detail.Cards = append(detail.Cards, dto.DepartmentCard{
			ID:         a.ID,
			CardID:     a.CardID,
			CanEdit:    a.CanEdit,
			CanDelete:  a.CanDelete,
			AssignedAt: a.AssignedAt,
			IsActive:   a.IsActive,
			Card: dto.DepartmentCardRef{
				ID:          card.ID,
				Title:       card.Title,
				Description: card.Description,
				Type:        string(card.Type),
				IsActive:    card.IsActive,
			},
		})
	}
	return detail
}

func (s *server) getDepartment(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	dept, found := s.store.departments[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "department not found")
		return
	}
	ok(c, http.StatusOK, "ok", s.detailedDepartment(dept))
}

func (s *server) getDepartmentBySlug(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, dept := range s.store.departments {
		if dept.Slug == c.Param("slug") {
			ok(c, http.StatusOK, "ok", s.detailedDepartment(dept))
			return
		}
	}
	fail(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "department not found")
}

// slugify derives a URL-safe slug from a department name.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func (s *server) createDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Name == "" {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	slug := slugify(req.Name)
	if req.Slug != nil && *req.Slug != "" {
		slug = *req.Slug
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, existing := range s.store.departments {
		if existing.Slug == slug {
			fail(c, http.StatusConflict, "SLUG_TAKEN", "slug already in use: "+slug)
			return
		}
	}

	ts := now()
	dept := &dto.Department{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	s.store.departments[dept.ID] = dept
	ok(c, http.StatusCreated, "department created", s.detailedDepartment(dept))
}

func (s *server) updateDepartment(c *gin.Context) {
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	dept, found := s.store.departments[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "department not found")
		return
	}
	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Slug != nil {
		dept.Slug = *req.Slug
	}
	if req.Description != nil {
		dept.Description = req.Description
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	dept.UpdatedAt = now()
	ok(c, http.StatusOK, "department updated", s.detailedDepartment(dept))
}

func (s *server) deleteDepartment(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	dept, found := s.store.departments[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "department not found")
		return
	}
	for id, a := range s.store.userDepts {
		if a.DepartmentID == dept.ID {
			delete(s.store.userDepts, id)
		}
	}
	for id, a := range s.store.cardDepts {
		if a.DepartmentID == dept.ID {
			delete(s.store.cardDepts, id)
		}
	}
	delete(s.store.departments, dept.ID)
	ok(c, http.StatusOK, "department deleted", gin.H{"id": dept.ID})
}

func (s *server) assignUserToDepartment(c *gin.Context) {
	var req dto.AssignUserToDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	dept, found := s.store.departments[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "department not found")
		return
	}
	if _, found := s.store.users[c.Param("userId")]; !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}

	if existing := s.store.assignmentOf(dept.ID, c.Param("userId")); existing != nil {
		// Re-assigning reactivates and refreshes the head flag.
		existing.IsActive = true
		existing.IsHead = req.IsHead
		ok(c, http.StatusOK, "assignment updated", existing)
		return
	}

	assignment := &dto.UserDepartmentAssignment{
		ID:           uuid.New().String(),
		UserID:       c.Param("userId"),
		DepartmentID: dept.ID,
		IsHead:       req.IsHead,
		JoinedAt:     now(),
		IsActive:     true,
	}
	s.store.userDepts[assignment.ID] = assignment
	ok(c, http.StatusCreated, "user assigned", assignment)
}

func (s *server) removeUserFromDepartment(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	assignment := s.store.assignmentOf(c.Param("id"), c.Param("userId"))
	if assignment == nil {
		fail(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", "user is not in that department")
		return
	}
	delete(s.store.userDepts, assignment.ID)
	ok(c, http.StatusOK, "user removed", gin.H{"id": assignment.ID})
}

func (s *server) departmentCards(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	dept, found := s.store.departments[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "department not found")
		return
	}

	items := []dto.DepartmentCardDetailed{}
	for _, a := range s.store.cardDepts {
		if a.DepartmentID != dept.ID || !a.IsActive {
			continue
		}
		card, foundCard := s.store.cards[a.CardID]
		if !foundCard {
			continue
		}
		items = append(items, dto.DepartmentCardDetailed{
			ID:          card.ID,
			Title:       card.Title,
			Description: card.Description,
			ImageURL:    card.ImageURL,
			LinkURL:     card.LinkURL,
			Type:        string(card.Type),
			IsActive:    card.IsActive,
			SortOrder:   card.SortOrder,
			CreatedAt:   card.CreatedAt,
			UpdatedAt:   card.UpdatedAt,
			CanEdit:     a.CanEdit,
			CanDelete:   a.CanDelete,
			AssignedAt:  a.AssignedAt,
			AssignedBy:  a.AssignedBy,
			CreatedBy:   card.CreatedBy,
		})
	}
	ok(c, http.StatusOK, "ok", items)
}

func (s *server) assignCardToDepartment(c *gin.Context) {
	var req dto.AssignCardToDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, found := s.store.departments[c.Param("id")]; !found {
		fail(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "department not found")
		return
	}
	if _, found := s.store.cards[c.Param("cardId")]; !found {
		fail(c, http.StatusNotFound, "CARD_NOT_FOUND", "card not found")
		return
	}

	assignment := &dto.CardDepartmentAssignment{
		ID:           uuid.New().String(),
		DepartmentID: c.Param("id"),
		CardID:       c.Param("cardId"),
		AssignedBy:   c.GetString("userID"),
		CanEdit:      req.CanEdit,
		CanDelete:    req.CanDelete,
		AssignedAt:   now(),
		IsActive:     true,
	}
	s.store.cardDepts[assignment.ID] = assignment
	ok(c, http.StatusCreated, "card assigned", assignment)
}

func (s *server) removeCardFromDepartment(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for id, a := range s.store.cardDepts {
		if a.DepartmentID == c.Param("id") && a.CardID == c.Param("cardId") {
			delete(s.store.cardDepts, id)
			ok(c, http.StatusOK, "card removed", gin.H{"id": id})
			return
		}
	}
	fail(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", "card is not assigned to that department")
}

func (s *server) myDepartments(c *gin.Context) {
	s.store.mu.RLock()
	items := s.store.userDepartmentsOf(c.GetString("userID"))
	s.store.mu.RUnlock()
	ok(c, http.StatusOK, "ok", items)
}

func (s *server) departmentsOfUser(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	if _, found := s.store.users[c.Param("userId")]; !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	ok(c, http.StatusOK, "ok", s.store.userDepartmentsOf(c.Param("userId")))
}

func (s *server) listCards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	cardType := c.Query("type")
	isActive := c.Query("isActive")

	s.store.mu.RLock()
	items := []dto.CardListItem{}
	for _, card := range s.store.cards {
		if cardType != "" && string(card.Type) != cardType {
			continue
		}
		if isActive == "true" && !card.IsActive {
			continue
		}
		if isActive == "false" && card.IsActive {
			continue
		}
		assigned := 0
		for _, a := range s.store.cardUsers {
			if a.CardID == card.ID {
				assigned++
			}
		}
		items = append(items, dto.CardListItem{
			ID:                 card.ID,
			Title:              card.Title,
			Description:        card.Description,
			ImageURL:           card.ImageURL,
			LinkURL:            card.LinkURL,
			Type:               card.Type,
			IsActive:           card.IsActive,
			SortOrder:          card.SortOrder,
			CreatedAt:          card.CreatedAt,
			CreatedBy:          card.CreatedBy,
			AssignedUsersCount: assigned,
		})
	}
	s.store.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].Title < items[j].Title
	})
	pageItems, pagination := paginate(items, page, limit)
	okPage(c, pageItems, pagination)
}

func (s *server) myCards(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	items := []dto.MyCardItem{}
	for _, a := range s.store.cardUsers {
		if a.UserID != c.GetString("userID") {
			continue
		}
		card, found := s.store.cards[a.CardID]
		if !found || !card.IsActive {
			continue
		}
		item := dto.MyCardItem{
			ID:                  card.ID,
			Title:               card.Title,
			Description:         card.Description,
			ImageURL:            card.ImageURL,
			LinkURL:             card.LinkURL,
			Type:                card.Type,
			IsFeatured:          a.IsFeatured,
			SortOrder:           card.SortOrder,
			AssignedAt:          a.AssignedAt,
			OriginalTitle:       card.Title,
			OriginalDescription: card.Description,
		}
		if a.CustomTitle != nil {
			item.Title = *a.CustomTitle
		}
		if a.CustomDescription != nil {
			item.Description = a.CustomDescription
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
	ok(c, http.StatusOK, "ok", items)
}

func (s *server) getCard(c *gin.Context) {
	s.store.mu.RLock()
	card, found := s.store.cards[c.Param("id")]
	s.store.mu.RUnlock()
	if !found {
		fail(c, http.StatusNotFound, "CARD_NOT_FOUND", "card not found")
		return
	}
	ok(c, http.StatusOK, "ok", card)
}

func (s *server) createCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !req.Type.Valid() {
		fail(c, http.StatusBadRequest, "INVALID_CARD_TYPE", "unknown card type: "+string(req.Type))
		return
	}
	creator := s.currentUser(c)
	if creator == nil {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	ts := now()
	card := &dto.Card{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		Type:        req.Type,
		IsActive:    true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
		CreatedBy: dto.CardCreatedBy{
			ID:        creator.ID,
			FirstName: creator.FirstName,
			LastName:  creator.LastName,
			Email:     creator.Email,
		},
	}
	if req.SortOrder != nil {
		card.SortOrder = *req.SortOrder
	}
	s.store.cards[card.ID] = card
	ok(c, http.StatusCreated, "card created", card)
}

func (s *server) updateCard(c *gin.Context) {
	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	card, found := s.store.cards[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "CARD_NOT_FOUND", "card not found")
		return
	}
	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = req.Description
	}
	if req.ImageURL != nil {
		card.ImageURL = req.ImageURL
	}
	if req.LinkURL != nil {
		card.LinkURL = req.LinkURL
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			fail(c, http.StatusBadRequest, "INVALID_CARD_TYPE", "unknown card type: "+string(*req.Type))
			return
		}
		card.Type = *req.Type
	}
	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		card.SortOrder = *req.SortOrder
	}
	card.UpdatedAt = now()
	ok(c, http.StatusOK, "card updated", card)
}

func (s *server) softDeleteCard(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	card, found := s.store.cards[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "CARD_NOT_FOUND", "card not found")
		return
	}
	original := 0
	for _, a := range s.store.cardUsers {
		if a.CardID == card.ID {
			original++
		}
	}
	removed := s.store.removeCardAssignments(card.ID)
	ok(c, http.StatusOK, "card assignments removed", dto.SoftDeleteCardResult{
		CardID:              card.ID,
		CardTitle:           card.Title,
		RemovedAssignments:  removed,
		OriginalAssignments: original,
	})
}

func (s *server) deleteCard(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	card, found := s.store.cards[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "CARD_NOT_FOUND", "card not found")
		return
	}
	original := 0
	for _, a := range s.store.cardUsers {
		if a.CardID == card.ID {
			original++
		}
	}
	removed := s.store.removeCardAssignments(card.ID)
	for id, a := range s.store.cardDepts {
		if a.CardID == card.ID {
			delete(s.store.cardDepts, id)
		}
	}
	delete(s.store.cards, card.ID)
	ok(c, http.StatusOK, "card deleted", dto.DeleteCardResult{
		CardID:              card.ID,
		CardTitle:           card.Title,
		CardType:            card.Type,
		RemovedAssignments:  removed,
		OriginalAssignments: original,
	})
}

func (s *server) assignCardToUser(c *gin.Context) {
	var req dto.AssignCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, found := s.store.cards[c.Param("id")]; !found {
		fail(c, http.StatusNotFound, "CARD_NOT_FOUND", "card not found")
		return
	}
	if _, found := s.store.users[c.Param("userId")]; !found {
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}
	if s.store.cardAssignmentOf(c.Param("id"), c.Param("userId")) != nil {
		fail(c, http.StatusConflict, "ALREADY_ASSIGNED", "card already assigned to that user")
		return
	}

	assignment := &dto.UserCardAssignment{
		ID:                uuid.New().String(),
		UserID:            c.Param("userId"),
		CardID:            c.Param("id"),
		IsFeatured:        req.IsFeatured,
		CustomTitle:       req.CustomTitle,
		CustomDescription: req.CustomDescription,
		AssignedAt:        now(),
	}
	s.store.cardUsers[assignment.ID] = assignment
	ok(c, http.StatusCreated, "card assigned", assignment)
}

func (s *server) unassignCardFromUser(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	assignment := s.store.cardAssignmentOf(c.Param("id"), c.Param("userId"))
	if assignment == nil {
		fail(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", "card is not assigned to that user")
		return
	}
	delete(s.store.cardUsers, assignment.ID)
	ok(c, http.StatusOK, "card unassigned", gin.H{"id": assignment.ID})
}

func (s *server) updateCardFeatured(c *gin.Context) {
	var req dto.UpdateFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	assignment := s.store.cardAssignmentOf(c.Param("id"), c.GetString("userID"))
	if assignment == nil {
		fail(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", "card is not assigned to you")
		return
	}
	assignment.IsFeatured = req.IsFeatured
	ok(c, http.StatusOK, "featured flag updated", assignment)
}

func (s *server) listWifi(c *gin.Context) {
	isActive := c.Query("isActive")
	name := strings.ToLower(c.Query("networkName"))

	s.store.mu.RLock()
	items := []dto.WifiNetwork{}
	for _, w := range s.store.wifi {
		if isActive == "true" && !w.IsActive {
			continue
		}
		if isActive == "false" && w.IsActive {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(w.NetworkName), name) {
			continue
		}
		items = append(items, *w)
	}
	s.store.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].NetworkName < items[j].NetworkName })
	ok(c, http.StatusOK, "ok", items)
}

func (s *server) getWifi(c *gin.Context) {
	s.store.mu.RLock()
	network, found := s.store.wifi[c.Param("id")]
	s.store.mu.RUnlock()
	if !found {
		fail(c, http.StatusNotFound, "WIFI_NOT_FOUND", "wifi network not found")
		return
	}
	ok(c, http.StatusOK, "ok", network)
}

func (s *server) createWifi(c *gin.Context) {
	var req dto.CreateWifiNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.NetworkName == "" {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "networkName is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	ts := now()
	network := &dto.WifiNetwork{
		ID:          uuid.New().String(),
		NetworkName: req.NetworkName,
		Password:    req.Password,
		QRCode:      req.QRCode,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.store.wifi[network.ID] = network
	ok(c, http.StatusCreated, "wifi network created", network)
}

func (s *server) updateWifi(c *gin.Context) {
	var req dto.UpdateWifiNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	network, found := s.store.wifi[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "WIFI_NOT_FOUND", "wifi network not found")
		return
	}
	if req.NetworkName != nil {
		network.NetworkName = *req.NetworkName
	}
	if req.Password != nil {
		network.Password = req.Password
	}
	if req.QRCode != nil {
		network.QRCode = req.QRCode
	}
	if req.Description != nil {
		network.Description = req.Description
	}
	if req.IsActive != nil {
		network.IsActive = *req.IsActive
	}
	network.UpdatedAt = now()
	ok(c, http.StatusOK, "wifi network updated", network)
}

func (s *server) deleteWifi(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, found := s.store.wifi[c.Param("id")]; !found {
		fail(c, http.StatusNotFound, "WIFI_NOT_FOUND", "wifi network not found")
		return
	}
	delete(s.store.wifi, c.Param("id"))
	ok(c, http.StatusOK, "wifi network deleted", gin.H{"id": c.Param("id")})
}

func (s *server) listQuickLinks(c *gin.Context) {
	category := c.Query("category")
	isActive := c.Query("isActive")

	s.store.mu.RLock()
	items := []dto.QuickLink{}
	for _, l := range s.store.quickLinks {
		if category != "" && (l.Category == nil || *l.Category != category) {
			continue
		}
		if isActive == "true" && !l.IsActive {
			continue
		}
		if isActive == "false" && l.IsActive {
			continue
		}
		items = append(items, *l)
	}
	s.store.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		oi, oj := 0, 0
		if items[i].SortOrder != nil {
			oi = *items[i].SortOrder
		}
		if items[j].SortOrder != nil {
			oj = *items[j].SortOrder
		}
		if oi != oj {
			return oi < oj
		}
		return items[i].Title < items[j].Title
	})
	ok(c, http.StatusOK, "ok", items)
}

func (s *server) getQuickLink(c *gin.Context) {
	s.store.mu.RLock()
	link, found := s.store.quickLinks[c.Param("id")]
	s.store.mu.RUnlock()
	if !found {
		fail(c, http.StatusNotFound, "QUICK_LINK_NOT_FOUND", "quick link not found")
		return
	}
	ok(c, http.StatusOK, "ok", link)
}

func (s *server) createQuickLink(c *gin.Context) {
	var req dto.CreateQuickLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Title == "" || req.URL == "" {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "title and url are required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	ts := now()
	link := &dto.QuickLink{
		ID:          uuid.New().String(),
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		IconURL:     req.IconURL,
		IsActive:    true,
		SortOrder:   req.SortOrder,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.store.quickLinks[link.ID] = link
	ok(c, http.StatusCreated, "quick link created", link)
}

func (s *server) updateQuickLink(c *gin.Context) {
	var req dto.UpdateQuickLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	link, found := s.store.quickLinks[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "QUICK_LINK_NOT_FOUND", "quick link not found")
		return
	}
	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.Description != nil {
		link.Description = req.Description
	}
	if req.Category != nil {
		link.Category = req.Category
	}
	if req.IconURL != nil {
		link.IconURL = req.IconURL
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		link.SortOrder = req.SortOrder
	}
	link.UpdatedAt = now()
	ok(c, http.StatusOK, "quick link updated", link)
}

func (s *server) deleteQuickLink(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, found := s.store.quickLinks[c.Param("id")]; !found {
		fail(c, http.StatusNotFound, "QUICK_LINK_NOT_FOUND", "quick link not found")
		return
	}
	delete(s.store.quickLinks, c.Param("id"))
	ok(c, http.StatusOK, "quick link deleted", gin.H{"id": c.Param("id")})
}
