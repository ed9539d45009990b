package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/auth"
)

// CookieConfig controls the session cookie written on register and login.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type UserController struct {
	api       *echo.Group
	useCase   auth.UseCase
	cookie    CookieConfig
	session   echo.MiddlewareFunc
	rateLimit echo.MiddlewareFunc
}

func NewUserController(api *echo.Group, useCase auth.UseCase, cookie CookieConfig, session echo.MiddlewareFunc, rateLimit echo.MiddlewareFunc) *UserController {
	return &UserController{
		api:       api,
		useCase:   useCase,
		cookie:    cookie,
		session:   session,
		rateLimit: rateLimit,
	}
}

// InitUserRoutes initializes authentication and profile routes
func (controller *UserController) InitUserRoutes() {
	user := controller.api.Group("/user")
	user.POST("/register", controller.Register, controller.rateLimit)
	user.POST("/login", controller.Login, controller.rateLimit)
	user.GET("/current-user", controller.CurrentUser, controller.session)
	user.PATCH("/profile", controller.UpdateProfile, controller.session)
	user.POST("/logout", controller.Logout, controller.session)
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and start a session. The token is returned in the body and set as an HttpOnly cookie.
// @Tags user
// @Accept json
// @Produce json
// @Param user body model.RegisterDTO true "Registration data"
// @Success 201 {object} model.Response{data=model.AuthResult} "Registered user and token"
// @Failure 400 {object} model.Response "Invalid input"
// @Failure 409 {object} model.Response "Email already registered"
// @Failure 429 {object} model.Response "Too many attempts"
// @Router /user/register [post]
func (controller *UserController) Register(c echo.Context) error {
	var dto model.RegisterDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	result, err := controller.useCase.Register(c.Request().Context(), dto)
	if err != nil {
		return err
	}
	controller.setSessionCookie(c, result.Token, controller.cookie.TTL)
	return respond(c, http.StatusCreated, "user.registered", result)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags user
// @Accept json
// @Produce json
// @Param credentials body model.LoginDTO true "Credentials"
// @Success 200 {object} model.Response{data=model.AuthResult} "Logged in user and token"
// @Failure 400 {object} model.Response "Invalid input"
// @Failure 401 {object} model.Response "Wrong password"
// @Failure 404 {object} model.Response "Unknown email"
// @Failure 429 {object} model.Response "Too many attempts"
// @Router /user/login [post]
func (controller *UserController) Login(c echo.Context) error {
	var dto model.LoginDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	result, err := controller.useCase.Login(c.Request().Context(), dto)
	if err != nil {
		return err
	}
	controller.setSessionCookie(c, result.Token, controller.cookie.TTL)
	return respond(c, http.StatusOK, "user.logged-in", result)
}

// CurrentUser godoc
// @Summary Get the current user
// @Tags user
// @Produce json
// @Success 200 {object} model.Response{data=entity.User} "Current user"
// @Failure 401 {object} model.Response "Missing or invalid session"
// @Security CookieAuth
// @Router /user/current-user [get]
func (controller *UserController) CurrentUser(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	user, err := controller.useCase.CurrentUser(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user.fetched", user)
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags user
// @Accept json
// @Produce json
// @Param profile body model.UpdateProfileDTO true "Fields to change"
// @Success 200 {object} model.Response{data=entity.User} "Updated user"
// @Failure 400 {object} model.Response "Invalid input"
// @Failure 401 {object} model.Response "Missing or invalid session"
// @Security CookieAuth
// @Router /user/profile [patch]
func (controller *UserController) UpdateProfile(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var dto model.UpdateProfileDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	user, err := controller.useCase.UpdateProfile(c.Request().Context(), caller, dto)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user.updated", user)
}

// Logout godoc
// @Summary Log out
// @Description Clear the session cookie. Issued tokens stay valid until they expire.
// @Tags user
// @Produce json
// @Success 200 {object} model.Response "Logged out"
// @Failure 401 {object} model.Response "Missing or invalid session"
// @Security CookieAuth
// @Router /user/logout [post]
func (controller *UserController) Logout(c echo.Context) error {
	controller.setSessionCookie(c, "", -1)
	return respond(c, http.StatusOK, "user.logged-out", nil)
}

// setSessionCookie writes the session cookie; a negative ttl expires it.
func (controller *UserController) setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     controller.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   controller.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	}
	c.SetCookie(cookie)
}
