package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/internal/apperr"
	"barangay/internal/model"
)

func fixtures() *Directory {
	return NewDirectory(
		[]model.Resident{
			{User: model.User{ID: "1", Email: "juan.delacruz@email.com", FirstName: "Juan", LastName: "Dela Cruz", Role: model.RoleResident, PhoneNumber: "+639123456789"}, VerificationStatus: model.VerificationVerified},
			{User: model.User{ID: "2", Email: "maria.santos@email.com", FirstName: "Maria", LastName: "Santos", Role: model.RoleResident, PhoneNumber: "+639987654321"}, VerificationStatus: model.VerificationPending},
		},
		[]model.Admin{
			{User: model.User{ID: "admin-1", Email: "captain@barangay.gov.ph", FirstName: "Roberto", LastName: "Garcia", Role: model.RoleAdmin}, Position: "Barangay Captain"},
		},
	)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     model.Role
		wantID   string
		wantErr  error
	}{
		{"resident", "juan.delacruz@email.com", DemoPassword, model.RoleResident, "1", nil},
		{"email case insensitive", "Juan.DelaCruz@Email.com", DemoPassword, model.RoleResident, "1", nil},
		{"admin", "captain@barangay.gov.ph", DemoPassword, model.RoleAdmin, "admin-1", nil},
		{"wrong role", "captain@barangay.gov.ph", DemoPassword, model.RoleResident, "", ErrInvalidCredentials},
		{"wrong password", "juan.delacruz@email.com", "hunter2", model.RoleResident, "", ErrInvalidCredentials},
		{"unknown email", "nobody@email.com", DemoPassword, model.RoleResident, "", ErrInvalidCredentials},
		{"missing email", "", DemoPassword, model.RoleResident, "", apperr.ErrValidation},
		{"missing password", "juan.delacruz@email.com", "", model.RoleResident, "", apperr.ErrValidation},
		{"bad role", "juan.delacruz@email.com", DemoPassword, model.Role("guest"), "", apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := fixtures().Login(tt.email, tt.password, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, u.ID)
		})
	}
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:           "ana.reyes@email.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Ana",
		LastName:        "Reyes",
		PhoneNumber:     "+639170000000",
		Address:         "12 Mabini St",
	}
}

func TestRegister_Resident(t *testing.T) {
	d := fixtures()

	u, err := d.Register(validInput())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "user-"))
	assert.Equal(t, model.RoleResident, u.Role)
	assert.Equal(t, "brgy-001", u.BarangayID)

	r, err := d.FindResident(u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VerificationPending, r.VerificationStatus)

	_, err = d.Login("ana.reyes@email.com", DemoPassword, model.RoleResident)
	assert.NoError(t, err)
}

func TestRegister_Admin(t *testing.T) {
	d := fixtures()
	in := validInput()
	in.Role = model.RoleAdmin

	u, err := d.Register(in)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)

	_, err = d.Login(in.Email, DemoPassword, model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, d.admins, 2)
	assert.Equal(t, "Staff", d.admins[1].Position)
	assert.True(t, d.admins[1].Can(model.PermissionManageDocuments))
	assert.False(t, d.admins[1].Can(model.PermissionManagePayments))
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{"missing address", func(in *RegisterInput) { in.Address = " " }, apperr.ErrValidation},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "other" }, apperr.ErrValidation},
		{"bad role", func(in *RegisterInput) { in.Role = "mayor" }, apperr.ErrValidation},
		{"resident email taken", func(in *RegisterInput) { in.Email = "maria.santos@email.com" }, ErrEmailTaken},
		{"admin email taken", func(in *RegisterInput) { in.Email = "CAPTAIN@barangay.gov.ph" }, ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := fixtures()
			in := validInput()
			tt.mutate(&in)

			_, err := d.Register(in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 2, d.ResidentStats().Total)
		})
	}
}

func TestListResidents(t *testing.T) {
	d := fixtures()

	assert.Len(t, d.ListResidents(""), 2)

	got := d.ListResidents("dela")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = d.ListResidents("MARIA.SANTOS")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = d.ListResidents("987654")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Empty(t, d.ListResidents("zzz"))
}

func TestVerifyResident(t *testing.T) {
	d := fixtures()
	assert.Equal(t, ResidentStats{Total: 2, Verified: 1, Pending: 1}, d.ResidentStats())

	r, err := d.VerifyResident("2")
	require.NoError(t, err)
	assert.Equal(t, model.VerificationVerified, r.VerificationStatus)
	assert.Equal(t, ResidentStats{Total: 2, Verified: 2}, d.ResidentStats())

	_, err = d.VerifyResident("2")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = d.VerifyResident("404")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)

	tok, exp, err := iss.Issue(model.User{ID: "1", Role: model.RoleResident})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	sess, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, model.Session{UserID: "1", Role: model.RoleResident}, sess)
}

func TestIssuer_Rejects(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)
	tok, _, err := iss.Issue(model.User{ID: "admin-1", Role: model.RoleAdmin})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewIssuer("other", time.Hour).Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewIssuer("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := iss.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			Role:             "superuser",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "x", Issuer: tokenIssuer},
		})
		s, err := forged.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = iss.Parse(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
