package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type rolePayload struct {
	Name string `json:"name" binding:"required"`
}

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(userSvc *services.UserService) *UserController {
	return &UserController{UserSvc: userSvc}
}

// Register handles POST /api/users.
func (ctrl *UserController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPayload", "Invalid request payload", err)
		return
	}

	user, err := ctrl.UserSvc.RegisterUser(payload.FirstName, payload.LastName, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			utils.JSONError(c, http.StatusConflict, "error.userExists", err.Error())
			return
		}
		log.Printf("Register error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to register user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/users/login. Verifies credentials only; session or
// token issuance sits outside this service.
func (ctrl *UserController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "email and password are required")
		return
	}

	user, err := ctrl.UserSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "Invalid email or password.")
			return
		}
		log.Printf("Login error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Login failed", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, user)
}

// GetUsers handles GET /api/users.
func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.GetAllUsers()
	if err != nil {
		log.Printf("GetUsers error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.fetchUsers", "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetRoles handles GET /api/roles.
func (ctrl *UserController) GetRoles(c *gin.Context) {
	roles, err := ctrl.UserSvc.GetAllRoles()
	if err != nil {
		log.Printf("GetRoles error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.fetchRoles", "Failed to fetch roles", err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// CreateRole handles POST /api/roles.
func (ctrl *UserController) CreateRole(c *gin.Context) {
	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "name is required")
		return
	}

	role, err := ctrl.UserSvc.CreateRole(payload.Name)
	if err != nil {
		if errors.Is(err, services.ErrRoleAlreadyExists) {
			utils.JSONError(c, http.StatusConflict, "error.roleExists", err.Error())
			return
		}
		log.Printf("CreateRole error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to create role", err)
		return
	}

	c.JSON(http.StatusCreated, role)
}

// AssignRole handles POST /api/users/:id/roles/:roleId.
func (ctrl *UserController) AssignRole(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	roleID, ok := parseIDParam(c, "roleId")
	if !ok {
		return
	}

	user, err := ctrl.UserSvc.AssignRoleToUser(userID, roleID)
	if err != nil {
		ctrl.respondRoleMembershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RemoveRole handles DELETE /api/users/:id/roles/:roleId.
func (ctrl *UserController) RemoveRole(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	roleID, ok := parseIDParam(c, "roleId")
	if !ok {
		return
	}

	user, err := ctrl.UserSvc.RemoveRoleFromUser(userID, roleID)
	if err != nil {
		ctrl.respondRoleMembershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) respondRoleMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.userNotFound", "User not found.")
	case errors.Is(err, services.ErrRoleNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.roleNotFound", "Role not found.")
	default:
		log.Printf("role membership error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to update role membership", err)
	}
}
