package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	created int
	updated int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.created++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.updated++
	r.users[user.ID] = user
	return nil
}

// plainPasswords stores passwords as "hash:<password>".
type plainPasswords struct{}

func (plainPasswords) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (plainPasswords) VerifyPassword(hashed, password string) error {
	if hashed != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(password string) error {
	if len(password) < 6 {
		return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, "weak", domainerror.ErrWeakPassword)
	}
	return nil
}

type fakeTokens struct {
	spent  map[string]bool
	issued int
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{spent: make(map[string]bool)}
}

func (f *fakeTokens) GenerateTokenPair(_ context.Context, user *entity.User) (*adapter.TokenPair, error) {
	f.issued++
	return &adapter.TokenPair{
		AccessToken:  "access-" + user.Username,
		RefreshToken: user.ID.String(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeTokens) RotateTokenPair(ctx context.Context, old string, user *entity.User) (*adapter.TokenPair, error) {
	if f.spent[old] {
		return nil, domainerror.ErrInvalidToken
	}
	f.spent[old] = true
	return f.GenerateTokenPair(ctx, user)
}

func (f *fakeTokens) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokens) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	id, err := uuid.Parse(token)
	if err != nil || f.spent[token] {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: id}, nil
}

func (f *fakeTokens) InvalidateRefreshToken(_ context.Context, token string) error {
	f.spent[token] = true
	return nil
}

func (f *fakeTokens) InvalidateAllUserTokens(context.Context, uuid.UUID) error {
	return nil
}

func authCode(err error) domainerror.AuthErrorCode {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}

func TestLoginUserUseCase(t *testing.T) {
	operator := entity.NewUser("caixa", "caixa@cmc.com", "hash:segredo", entity.RoleOperator)

	tests := []struct {
		name     string
		input    LoginUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{name: "valid credentials", input: LoginUserInput{Username: " caixa ", Password: "segredo"}},
		{name: "wrong password", input: LoginUserInput{Username: "caixa", Password: "errada"}, wantCode: domainerror.ErrCodeInvalidCredentials},
		{name: "unknown user", input: LoginUserInput{Username: "ninguem", Password: "segredo"}, wantCode: domainerror.ErrCodeInvalidCredentials},
		{name: "missing password", input: LoginUserInput{Username: "caixa"}, wantCode: domainerror.ErrCodeMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewLoginUserUseCase(newFakeUserRepo(operator), plainPasswords{}, newFakeTokens())

			out, err := uc.Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				if got := authCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.AccessToken != "access-caixa" || out.User.Role != entity.RoleOperator {
				t.Errorf("unexpected output %+v", out)
			}
		})
	}
}

func TestRefreshTokenUseCase_RotatesOnce(t *testing.T) {
	user := entity.NewUser("caixa", "caixa@cmc.com", "hash:segredo", entity.RoleOperator)
	tokens := newFakeTokens()
	uc := NewRefreshTokenUseCase(newFakeUserRepo(user), tokens)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: user.ID.String()}); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	_, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: user.ID.String()})
	if got := authCode(err); got != domainerror.ErrCodeInvalidToken {
		t.Fatalf("reused token code = %q, want %q", got, domainerror.ErrCodeInvalidToken)
	}
}

func TestRefreshTokenUseCase_DeletedUser(t *testing.T) {
	uc := NewRefreshTokenUseCase(newFakeUserRepo(), newFakeTokens())

	_, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: uuid.NewString()})
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutUserUseCase(t *testing.T) {
	tokens := newFakeTokens()
	uc := NewLogoutUserUseCase(tokens)

	out, err := uc.Execute(context.Background(), LogoutUserInput{RefreshToken: "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tokens.spent["abc"] || out.Message == "" {
		t.Errorf("token not invalidated, output %+v", out)
	}
}

func TestGetCurrentUserUseCase(t *testing.T) {
	user := entity.NewUser("caixa", "caixa@cmc.com", "hash:x", entity.RoleOperator)
	uc := NewGetCurrentUserUseCase(newFakeUserRepo(user))
	ctx := context.Background()

	out, err := uc.Execute(ctx, GetCurrentUserInput{UserID: user.ID, StoreID: "xian"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Store.Name != "Xian" {
		t.Errorf("store = %+v", out.Store)
	}

	_, err = uc.Execute(ctx, GetCurrentUserInput{UserID: user.ID, StoreID: "nowhere"})
	if !errors.Is(err, domainerror.ErrStoreNotFound) {
		t.Errorf("err = %v, want ErrStoreNotFound", err)
	}
}

func TestEnsureMasterUserUseCase_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewEnsureMasterUserUseCase(repo, plainPasswords{})
	ctx := context.Background()

	first, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if !first.Created || first.User.Role != entity.RoleAdmin || first.User.PasswordHash != "hash:master" {
		t.Fatalf("unexpected master user %+v", first.User)
	}

	second, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created || repo.created != 1 {
		t.Errorf("master created again: created=%v count=%d", second.Created, repo.created)
	}
}

func TestResetMasterPasswordUseCase(t *testing.T) {
	t.Run("default password", func(t *testing.T) {
		master := entity.NewUser(entity.MasterUsername, entity.MasterEmail, "hash:master", entity.RoleAdmin)
		repo := newFakeUserRepo(master)

		out, err := NewResetMasterPasswordUseCase(repo, plainPasswords{}).Execute(context.Background(), ResetMasterPasswordInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.PasswordHash != "hash:123456" || repo.updated != 1 {
			t.Errorf("hash = %q, updates = %d", out.User.PasswordHash, repo.updated)
		}
	})

	t.Run("falls back to email", func(t *testing.T) {
		renamed := entity.NewUser("admin", entity.MasterEmail, "hash:x", entity.RoleAdmin)
		repo := newFakeUserRepo(renamed)

		out, err := NewResetMasterPasswordUseCase(repo, plainPasswords{}).Execute(context.Background(), ResetMasterPasswordInput{NewPassword: "novasenha"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.ID != renamed.ID || out.User.PasswordHash != "hash:novasenha" {
			t.Errorf("unexpected user %+v", out.User)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := NewResetMasterPasswordUseCase(newFakeUserRepo(), plainPasswords{}).Execute(context.Background(), ResetMasterPasswordInput{NewPassword: "123"})
		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Errorf("err = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("no master", func(t *testing.T) {
		_, err := NewResetMasterPasswordUseCase(newFakeUserRepo(), plainPasswords{}).Execute(context.Background(), ResetMasterPasswordInput{})
		if got := authCode(err); got != domainerror.ErrCodeUserNotFound {
			t.Errorf("code = %q, want %q", got, domainerror.ErrCodeUserNotFound)
		}
	})
}
