package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"barangay/internal/apperr"
	"barangay/internal/identity"
	identityMocks "barangay/internal/identity/mocks"
	"barangay/internal/model"
)

func TestLogin(t *testing.T) {
	juan := model.User{ID: "1", Email: "juan.delacruz@email.com", FirstName: "Juan", Role: model.RoleResident}

	tests := []struct {
		name       string
		body       string
		setupMocks func(m *identityMocks.MockIdentityService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "resident by default",
			body: `{"email":"juan.delacruz@email.com","password":"password123"}`,
			setupMocks: func(m *identityMocks.MockIdentityService) {
				m.On("Login", "juan.delacruz@email.com", "password123", model.RoleResident).Return(juan, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email":"juan.delacruz@email.com","password":"nope","role":"resident"}`,
			setupMocks: func(m *identityMocks.MockIdentityService) {
				m.On("Login", "juan.delacruz@email.com", "nope", model.RoleResident).Return(model.User{}, identity.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			setupMocks: func(m *identityMocks.MockIdentityService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_BODY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIDs := new(identityMocks.MockIdentityService)
			tt.setupMocks(mockIDs)
			issuer := identity.NewIssuer("test-secret", time.Hour)

			app := fiber.New()
			app.Post("/auth/login", Login(mockIDs, issuer))

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			} else {
				var body authResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "1", body.User.ID)

				sess, err := issuer.Parse(body.Token)
				require.NoError(t, err)
				assert.Equal(t, model.Session{UserID: "1", Role: model.RoleResident}, sess)
			}
			mockIDs.AssertExpectations(t)
		})
	}
}

func TestRegister(t *testing.T) {
	issuer := identity.NewIssuer("test-secret", time.Hour)

	t.Run("created", func(t *testing.T) {
		mockIDs := new(identityMocks.MockIdentityService)
		mockIDs.On("Register", mock.MatchedBy(func(in identity.RegisterInput) bool {
			return in.Email == "ana@email.com" && in.ConfirmPassword == "secret"
		})).Return(model.User{ID: "user-9", Email: "ana@email.com", Role: model.RoleResident}, nil)

		app := fiber.New()
		app.Post("/auth/register", Register(mockIDs, issuer))

		body := `{"email":"ana@email.com","password":"secret","confirm_password":"secret","first_name":"Ana","last_name":"Reyes","phone_number":"09171234567","address":"Purok 2"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var res authResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "user-9", res.User.ID)
		mockIDs.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		mockIDs := new(identityMocks.MockIdentityService)
		mockIDs.On("Register", mock.Anything).Return(model.User{}, identity.ErrEmailTaken)

		app := fiber.New()
		app.Post("/auth/register", Register(mockIDs, issuer))

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"juan.delacruz@email.com"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Error.Code)
	})

	t.Run("validation", func(t *testing.T) {
		mockIDs := new(identityMocks.MockIdentityService)
		mockIDs.On("Register", mock.Anything).Return(model.User{}, apperr.Required("first_name"))

		app := fiber.New()
		app.Post("/auth/register", Register(mockIDs, issuer))

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})
}
