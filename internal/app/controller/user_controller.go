package controller

import (
	"net/http"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type UserRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Role     string `json:"role" form:"role"`
}

type UserEditRequest struct {
	Name     *string `json:"name" form:"name"`
	Email    *string `json:"email" form:"email"`
	Password *string `json:"password" form:"password"`
	Role     *string `json:"role" form:"role"`
}

// ListUsers
// GET /users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	users, err := ctrl.userService.ListUsers()
	if err != nil {
		respondError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// CreateUser
// POST /users
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "Please fill in name, email and password.")
		return
	}

	user, err := ctrl.userService.CreateUser(service.UserInput{
		Username: req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	})
	if err != nil {
		respondError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created.",
		"user":    user,
	})
}

// EditUser
// POST /users/EDIT/:id
func (ctrl *UserController) EditUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UserEditRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "Invalid user fields.")
		return
	}

	update := service.UserUpdate{
		Username: req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		update.Role = &role
	}

	user, err := ctrl.userService.EditUser(id, update)
	if err != nil {
		respondError(c, err, "edit user")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated.",
		"user":    user,
	})
}

// DeleteUser
// POST /users/DELETE/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.userService.DeleteUser(id); err != nil {
		respondError(c, err, "delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted.",
	})
}
