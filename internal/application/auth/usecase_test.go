package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/pkg/jwt"
)

// fakeUserRepo repositorio de usuarios en memoria para los tests de auth.
type fakeUserRepo struct {
	porEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{porEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.porEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.porEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.porEmail[email], nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.porEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.porEmail {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

var testCfg = JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "tramites-api-test"}

func TestRegisterCliente_CreaConRolClienteYHash(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testCfg)

	out, err := uc.RegisterCliente(context.Background(), dto.RegisterRequest{
		Email:    "ana@test.com",
		Password: "password-segura",
		Name:     "Ana Pérez",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCliente, out.Role, "el registro público siempre crea clientes")
	assert.Equal(t, "active", out.Status)

	guardado := repo.porEmail["ana@test.com"]
	require.NotNil(t, guardado)
	assert.NotEqual(t, "password-segura", guardado.PasswordHash, "el password nunca se guarda plano")
	assert.NotEmpty(t, guardado.PasswordHash)
}

func TestRegisterCliente_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testCfg)

	_, err := uc.RegisterCliente(context.Background(), dto.RegisterRequest{Email: "ana@test.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterCliente(context.Background(), dto.RegisterRequest{Email: "ana@test.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_DevuelveTokenConClaims(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testCfg)

	reg, err := uc.RegisterCliente(context.Background(), dto.RegisterRequest{
		Email: "ana@test.com", Password: "password-segura",
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "password-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := jwt.Parse(testCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleCliente, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testCfg)

	_, err := uc.RegisterCliente(context.Background(), dto.RegisterRequest{Email: "ana@test.com", Password: "password-segura"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testCfg)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@test.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testCfg)

	_, err := uc.RegisterCliente(context.Background(), dto.RegisterRequest{Email: "ana@test.com", Password: "password-segura"})
	require.NoError(t, err)
	repo.porEmail["ana@test.com"].Status = "inactive"

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "password-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
