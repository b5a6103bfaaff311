package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martesys/petshop-api/internal/application/auth"
	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	pkgjwt "github.com/martesys/petshop-api/pkg/jwt"
)

type memUserRepo struct {
	users map[string]*entity.User // por email
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	c := *u
	r.users[u.Email] = &c
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func newAuthUC() (*auth.UseCase, *memUserRepo) {
	repo := &memUserRepo{users: map[string]*entity.User{}}
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "petshop-api-test",
	}), repo
}

func TestRegisterYLogin(t *testing.T) {
	uc, repo := newAuthUC()
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterRequest{
		Email:    "Ana@Example.com",
		Password: "secreta123",
		Name:     "Ana",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	// El hash nunca viaja en la respuesta y nunca es el password plano.
	stored := repo.users["ana@example.com"]
	assert.NotEqual(t, "secreta123", stored.PasswordHash)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ANA@example.com", Password: "otra456"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "no-es-email", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Fallas(t *testing.T) {
	uc, repo := newAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.users["ana@example.com"].Status = "inactive"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
