package repositories

import (
	"github.com/kin-platform/kin-backend/internal/db"
)

// Repositories bundles all repository instances for dependency injection
type Repositories struct {
	User       *UserRepository
	Committee  *CommitteeRepository
	Membership *MembershipRepository
	Advisor    *AdvisorRepository
	Post       *PostRepository
	Comment    *CommentRepository
}

// NewRepositories creates all repositories on one connection pool
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(pg),
		Committee:  NewCommitteeRepository(pg),
		Membership: NewMembershipRepository(pg),
		Advisor:    NewAdvisorRepository(pg),
		Post:       NewPostRepository(pg),
		Comment:    NewCommentRepository(pg),
	}
}
