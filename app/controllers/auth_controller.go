package controllers

import (
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /register.
func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	user, err := a.service.Register(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Logger().Info("user registered", "user_id", user.ID)
	c.OK(map[string]string{"message": "User registered successfully"})
}

// Users handles GET /users.
func (a *AuthController) Users(c *ctx.Context) {
	users, err := a.service.Users(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(users)
}

// Login handles POST /login with a form body of username and password.
func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindForm(&in) {
		return
	}
	token, err := a.service.Login(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(token)
}
