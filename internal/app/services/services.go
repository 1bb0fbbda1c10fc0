package services

import (
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
	"github.com/kin-platform/kin-backend/internal/pkg/email"
	"github.com/kin-platform/kin-backend/internal/pkg/filestorage"
)

// Services bundles all service instances for dependency injection
type Services struct {
	Auth      *AuthService
	User      *UserService
	Committee *CommitteeService
	Advisor   *AdvisorService
	Post      *PostService
}

// NewServices wires every service onto the shared repositories and
// collaborators
func NewServices(
	repos *repositories.Repositories,
	tokenService *pkgauth.TokenService,
	hasher *pkgauth.PasswordHasher,
	mailer email.Mailer,
	storage *filestorage.LocalStorage,
) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, tokenService, hasher, mailer),
		User:      NewUserService(repos.User, hasher, storage),
		Committee: NewCommitteeService(repos.Committee, repos.Membership, repos.User),
		Advisor:   NewAdvisorService(repos.Advisor, storage),
		Post:      NewPostService(repos.Post, repos.Comment, storage),
	}
}
