package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/middleware"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin authentication and account management
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type adminView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func viewOf(a *model.Admin) adminView {
	return adminView{ID: a.ID.String(), Username: a.Username, FullName: a.FullName, Role: a.Role}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrAccountInactive):
			respondError(c, http.StatusForbidden, "Account is inactive. Please contact administrator.")
		default:
			log.Printf("Error during login: %v", err)
			respondError(c, http.StatusInternalServerError, "Error during login")
		}
		return
	}

	respondData(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"admin": viewOf(admin),
	})
}

// InitAdmin creates the bootstrap admin; it only works while no admin exists
func (h *AuthHandler) InitAdmin(c *gin.Context) {
	admin, password, err := h.service.BootstrapAdmin(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrAdminExists) {
			respondError(c, http.StatusBadRequest, "Admin user already exists")
			return
		}
		log.Printf("Error creating bootstrap admin: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating admin user")
		return
	}

	respondData(c, http.StatusCreated, "Default admin created successfully", gin.H{
		"credentials": gin.H{
			"username": admin.Username,
			"password": password,
			"note":     "Please change this password immediately after first login",
		},
		"adminId": admin.ID.String(),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	adminID := c.GetString(middleware.AuthAdminKey)

	admin, err := h.service.GetProfile(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}
		log.Printf("Error fetching admin profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching profile")
		return
	}

	respondData(c, http.StatusOK, "", admin)
}

func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		FullName string `json:"fullName" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	admin, err := h.service.CreateAdmin(c.Request.Context(), req.Username, req.FullName, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateAdmin):
			respondError(c, http.StatusConflict, "Admin with this username already exists")
		case errors.Is(err, service.ErrInvalidRole):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error creating admin: %v", err)
			respondError(c, http.StatusInternalServerError, "Error creating admin")
		}
		return
	}

	respondData(c, http.StatusCreated, "Admin created successfully", viewOf(admin))
}

func (h *AuthHandler) ListAdmins(c *gin.Context) {
	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		log.Printf("Error listing admins: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching admins")
		return
	}

	respondData(c, http.StatusOK, "", admins)
}

// RegisterAuthRoutes registers the public auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/init-admin", h.InitAdmin)
	}
}

// RegisterAdminRoutes registers the admin management routes
func (h *AuthHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW, superAdminMW gin.HandlerFunc) {
	admin := rg.Group("/admin")
	{
		admin.GET("/me", authMW, h.Me)
		admin.POST("/create", authMW, superAdminMW, h.CreateAdmin)
		admin.GET("/all", authMW, superAdminMW, h.ListAdmins)
	}
}
