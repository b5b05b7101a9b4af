package accounts_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	accounts "github.com/accountkit/go-accounts"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()

	repo, cleanup := setupAccountsStore(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: accounts.NewJSONErrorHandler(testLogger{}),
	})

	accounts.RegisterAccountRoutes(
		app.Group("/user"),
		accounts.WithLogger(testLogger{}),
		accounts.WithRepositoryManager(repo),
		accounts.WithTokenService(newTestTokenService()),
	)

	return app, cleanup
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return res.StatusCode, decoded
}

func signupBody(email string) map[string]string {
	return map[string]string{
		"email":           email,
		"password":        "Password1!",
		"repeat_password": "Password1!",
		"username":        "testuser",
		"identity_number": "1234567890",
	}
}

func signin(t *testing.T, app *fiber.App, email, password string) (int, map[string]any) {
	t.Helper()
	return doJSON(t, app, http.MethodPost, "/user/signin", "", map[string]string{
		"email":    email,
		"password": password,
	})
}

func TestSignupAndSignin(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, body := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User created successfully", body["message"])

	status, body = signin(t, app, "user1@example.com", "Password1!")
	require.Equal(t, http.StatusOK, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	claims, err := newTestTokenService().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user1@example.com", claims.GetEmail())
	assert.Equal(t, "testuser", claims.GetUsername())
}

func TestSignupValidationFailure(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	payload := signupBody("user1@example.com")
	payload["email"] = "user1@example"

	status, body := doJSON(t, app, http.MethodPost, "/user/signup", "", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email not valid", body["message"])

	payload = signupBody("user1@example.com")
	payload["repeat_password"] = "Password2!"

	status, body = doJSON(t, app, http.MethodPost, "/user/signup", "", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "repeat_password not same as password", body["message"])

	// nothing was stored, so signin still fails
	status, _ = signin(t, app, "user1@example.com", "Password1!")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", body["message"])
}

func TestSigninRejections(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)

	// unknown email and wrong password return the same message
	status, body := signin(t, app, "ghost@example.com", "Password1!")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please input the correct email or password", body["message"])

	status, body = signin(t, app, "user1@example.com", "WrongPass1!")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please input the correct email or password", body["message"])
}

func TestListRequiresSession(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, body := doJSON(t, app, http.MethodGet, "/user/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Header authorization required", body["message"])

	status, body = doJSON(t, app, http.MethodGet, "/user/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Header authorization not valid", body["message"])
}

func TestListAccounts(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user2@example.com"))
	require.Equal(t, http.StatusCreated, status)

	status, body := signin(t, app, "user1@example.com", "Password1!")
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)

	status, body = doJSON(t, app, http.MethodGet, "/user/", token, nil)
	require.Equal(t, http.StatusOK, status)

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	entry, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user1@example.com", entry["email"])
	assert.Equal(t, "testuser", entry["user_name"])
	assert.Equal(t, "1234567890", entry["identity_number"])
	assert.NotEmpty(t, entry["account_number"])

	// credentials never leave the store
	for _, item := range data {
		record := item.(map[string]any)
		assert.NotContains(t, record, "password")
		assert.NotContains(t, record, "password_hash")
	}
}

func TestListAcceptsBearerScheme(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)

	status, body := signin(t, app, "user1@example.com", "Password1!")
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)

	status, _ = doJSON(t, app, http.MethodGet, "/user/", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestListCustomAuthScheme(t *testing.T) {
	repo, cleanup := setupAccountsStore(t)
	defer cleanup()

	app := fiber.New(fiber.Config{
		ErrorHandler: accounts.NewJSONErrorHandler(testLogger{}),
	})

	accounts.RegisterAccountRoutes(
		app.Group("/user"),
		accounts.WithLogger(testLogger{}),
		accounts.WithRepositoryManager(repo),
		accounts.WithTokenService(newTestTokenService()),
		accounts.WithAuthScheme("Token"),
	)

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)

	status, body := signin(t, app, "user1@example.com", "Password1!")
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)

	status, _ = doJSON(t, app, http.MethodGet, "/user/", "Token "+token, nil)
	assert.Equal(t, http.StatusOK, status)

	// a Bearer prefix is not stripped under the Token scheme
	status, _ = doJSON(t, app, http.MethodGet, "/user/", "Bearer "+token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUpdatePassword(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)

	status, body := signin(t, app, "user1@example.com", "Password1!")
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)

	status, body = doJSON(t, app, http.MethodPut, "/user/update-password", token, map[string]string{
		"password": "NewPass1!",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User updated successfully", body["message"])

	// the old password no longer verifies, the new one does
	status, _ = signin(t, app, "user1@example.com", "Password1!")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = signin(t, app, "user1@example.com", "NewPass1!")
	assert.Equal(t, http.StatusOK, status)
}

func TestUpdatePasswordValidation(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)

	status, body := signin(t, app, "user1@example.com", "Password1!")
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)

	status, body = doJSON(t, app, http.MethodPut, "/user/update-password", token, map[string]string{
		"password": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "password must have 8 characters that includes upper case, lower case, digits, and special characters", body["message"])

	// the stored password is untouched
	status, _ = signin(t, app, "user1@example.com", "Password1!")
	assert.Equal(t, http.StatusOK, status)
}

func TestRemoveAccount(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, _ := doJSON(t, app, http.MethodPost, "/user/signup", "", signupBody("user1@example.com"))
	require.Equal(t, http.StatusCreated, status)

	status, body := signin(t, app, "user1@example.com", "Password1!")
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)

	status, body = doJSON(t, app, http.MethodDelete, "/user/remove", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User removed successfully", body["message"])

	// a removed account cannot sign in again
	status, _ = signin(t, app, "user1@example.com", "Password1!")
	assert.Equal(t, http.StatusBadRequest, status)

	// the stale token still decodes, but the record is gone
	status, body = doJSON(t, app, http.MethodDelete, "/user/remove", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["message"])
}

func TestSignupUnparsableBody(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/user/signup", bytes.NewReader([]byte("{not-json")))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
