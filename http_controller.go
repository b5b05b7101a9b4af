package accounts

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"

	"github.com/accountkit/go-accounts/middleware/sessionware"
)

// RegisterAccountRoutes mounts the five account endpoints on the given
// router, usually a "/user" group. Signup and signin are open; listing,
// password update, and removal sit behind the session gate.
func RegisterAccountRoutes(router fiber.Router, opts ...AccountControllerOption) *AccountController {
	controller := NewAccountController(opts...)
	gate := controller.SessionGate()

	router.Post(controller.Routes.Signup, controller.SignupPost)
	router.Post(controller.Routes.Signin, controller.SigninPost)
	router.Get(controller.Routes.List, gate, controller.ListGet)
	router.Put(controller.Routes.UpdatePassword, gate, controller.UpdatePasswordPut)
	router.Delete(controller.Routes.Remove, gate, controller.RemoveDelete)

	return controller
}

type AccountControllerRoutes struct {
	Signup         string
	Signin         string
	List           string
	UpdatePassword string
	Remove         string
}

type AccountController struct {
	Debug      bool
	Logger     Logger
	Repo       RepositoryManager
	Tokens     *TokenService
	Routes     *AccountControllerRoutes
	ContextKey string
	AuthScheme string
}

type AccountControllerOption func(*AccountController) *AccountController

func NewAccountController(opts ...AccountControllerOption) *AccountController {
	c := &AccountController{
		Logger:     defLogger{},
		ContextKey: sessionware.DefaultContextKey,
		Routes: &AccountControllerRoutes{
			Signup:         "/signup",
			Signin:         "/signin",
			List:           "/",
			UpdatePassword: "/update-password",
			Remove:         "/remove",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in account controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in account controller...")
	}

	return c
}

func WithLogger(logger Logger) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Logger = logger
		return c
	}
}

func WithRepositoryManager(repo RepositoryManager) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Repo = repo
		return c
	}
}

func WithTokenService(tokens *TokenService) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Tokens = tokens
		return c
	}
}

func WithDebug(debug bool) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Debug = debug
		return c
	}
}

func WithContextKey(key string) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.ContextKey = key
		return c
	}
}

func WithAuthScheme(scheme string) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.AuthScheme = scheme
		return c
	}
}

// SessionGate builds the middleware protecting the gated endpoints. The
// decoder only unpacks the token payload; see TokenService.Decode.
func (a *AccountController) SessionGate() fiber.Handler {
	return sessionware.New(sessionware.Config{
		ContextKey: a.ContextKey,
		AuthScheme: a.AuthScheme,
		Decoder: func(raw string) (sessionware.Claims, error) {
			return a.Tokens.Decode(raw)
		},
		ContextEnricher: func(ctx context.Context, claims sessionware.Claims) context.Context {
			if full, ok := claims.(Claims); ok {
				return WithClaimsContext(ctx, full)
			}
			return ctx
		},
	})
}

// SignupPayload is the registration body
type SignupPayload struct {
	Email          string `form:"email" json:"email"`
	Password       string `form:"password" json:"password"`
	RepeatPassword string `form:"repeat_password" json:"repeat_password"`
	Username       string `form:"username" json:"username"`
	IdentityNumber string `form:"identity_number" json:"identity_number"`
}

// Validate will run validation rules
func (p SignupPayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(
			&p.Email,
			validation.Required.Error(msgEmailNotValid),
			is.Email.Error(msgEmailNotValid),
			EmailDomainRule,
		),
		validation.Field(
			&p.Password,
			validation.Required.Error(msgPasswordPattern),
			PasswordPatternRule,
		),
		validation.Field(
			&p.RepeatPassword,
			validation.Required.Error(msgRepeatPassword),
			StringEqualsRule(p.Password, msgRepeatPassword),
		),
		validation.Field(
			&p.Username,
			validation.Required.Error(msgUsernameNotValid),
			validation.RuneLength(3, 15).Error(msgUsernameNotValid),
		),
		validation.Field(
			&p.IdentityNumber,
			validation.Required.Error(msgIdentityNumber),
		),
	)

	return firstValidationMessage(err, "email", "password", "repeat_password", "username", "identity_number")
}

func (a *AccountController) SignupPost(c *fiber.Ctx) error {
	payload := new(SignupPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("signup parse payload", "error", err)
		return ErrUnableToParseData
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	register := NewRegisterAccountHandler(a.Repo)
	if err := register.Execute(c.UserContext(), RegisterAccountMessage{
		Email:          payload.Email,
		Password:       payload.Password,
		Username:       payload.Username,
		IdentityNumber: payload.IdentityNumber,
	}); err != nil {
		a.Logger.Error("signup register error", "error", err)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

// SigninPayload is the credential verification body
type SigninPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (p SigninPayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(
			&p.Email,
			validation.Required.Error(msgEmailNotValid),
			is.Email.Error(msgEmailNotValid),
			EmailDomainRule,
		),
		validation.Field(
			&p.Password,
			validation.Required.Error(msgPasswordPattern),
			PasswordPatternRule,
		),
	)

	return firstValidationMessage(err, "email", "password")
}

func (a *AccountController) SigninPost(c *fiber.Ctx) error {
	payload := new(SigninPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("signin parse payload", "error", err)
		return ErrUnableToParseData
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	var res *AuthenticateResponse

	authenticate := NewAuthenticateHandler(a.Repo, a.Tokens)
	if err := authenticate.Execute(c.UserContext(), AuthenticateMessage{
		Email:    payload.Email,
		Password: payload.Password,
		OnResponse: func(resp *AuthenticateResponse) {
			res = resp
		},
	}); err != nil {
		a.Logger.Info("signin rejected", "email", payload.Email, "error", err)
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"token": res.Token,
		},
	})
}

func (a *AccountController) ListGet(c *fiber.Ctx) error {
	var res *ListAccountsResponse

	list := NewListAccountsHandler(a.Repo)
	if err := list.Execute(c.UserContext(), ListAccountsMessage{
		OnResponse: func(resp *ListAccountsResponse) {
			res = resp
		},
	}); err != nil {
		a.Logger.Error("list accounts error", "error", err)
		return err
	}

	if a.Debug {
		fmt.Println("======= ACCOUNT LIST =======")
		fmt.Println(print.MaybePrettyJSON(res))
		fmt.Println("============================")
	}

	return c.JSON(fiber.Map{
		"data": res.Accounts,
	})
}

// UpdatePasswordPayload is the password replacement body
type UpdatePasswordPayload struct {
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (p UpdatePasswordPayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(
			&p.Password,
			validation.Required.Error(msgPasswordPattern),
			PasswordPatternRule,
		),
	)

	return firstValidationMessage(err, "password")
}

func (a *AccountController) UpdatePasswordPut(c *fiber.Ctx) error {
	claims, ok := sessionware.ClaimsFromCtx(c, a.ContextKey)
	if !ok {
		return sessionware.ErrAuthorizationRequired
	}

	payload := new(UpdatePasswordPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("update password parse payload", "error", err)
		return ErrUnableToParseData
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	update := NewUpdatePasswordHandler(a.Repo)
	if err := update.Execute(c.UserContext(), UpdatePasswordMessage{
		Email:    claims.GetEmail(),
		Password: payload.Password,
	}); err != nil {
		a.Logger.Error("update password error", "error", err)
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
	})
}

func (a *AccountController) RemoveDelete(c *fiber.Ctx) error {
	claims, ok := sessionware.ClaimsFromCtx(c, a.ContextKey)
	if !ok {
		return sessionware.ErrAuthorizationRequired
	}

	remove := NewRemoveAccountHandler(a.Repo)
	if err := remove.Execute(c.UserContext(), RemoveAccountMessage{
		Email: claims.GetEmail(),
	}); err != nil {
		a.Logger.Error("remove account error", "error", err)
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User removed successfully",
	})
}

// NewJSONErrorHandler builds the fiber error handler that maps rich
// errors onto HTTP statuses. Anything that is not a known failure class
// becomes a 500 with a generic body; details stay in the log.
func NewJSONErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{
					"message": fiberErr.Message,
				})
			}

			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := statusFromRichError(richErr)

		if status >= fiber.StatusInternalServerError {
			logger.Error(
				"unexpected error",
				"error", richErr.Message,
				"category", richErr.Category,
				"details", print.MaybePrettyJSON(richErr.Metadata),
			)
			return c.Status(status).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}

		logger.Info(
			"request failed",
			"status", status,
			"category", richErr.Category,
			"message", richErr.Message,
		)

		return c.Status(status).JSON(fiber.Map{
			"message": richErr.Message,
		})
	}
}

func statusFromRichError(richErr *errors.Error) int {
	if richErr.Code > 0 {
		return richErr.Code
	}

	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput, errors.CategoryConflict:
		return fiber.StatusBadRequest
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
