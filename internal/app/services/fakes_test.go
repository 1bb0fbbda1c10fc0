package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
)

var errDeliveryFailed = errors.New("smtp relay unreachable")

// fakeUserRepo is an in-memory IUserRepository
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	u := *user
	u.ID = r.nextID
	r.users[u.ID] = &u
	r.nextID++
	return &u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	return r.add(user).ID, nil
}

func (r *fakeUserRepo) BulkCreate(_ context.Context, users []*models.User) error {
	for _, user := range users {
		created := r.add(user)
		user.ID = created.ID
	}
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	var matched []*models.User
	for _, u := range r.users {
		if search == "" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(search)) ||
			strings.Contains(strings.ToLower(u.Email), strings.ToLower(search)) {
			copied := *u
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id int64, name, gender, mobile, photo *string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if gender != nil {
		u.Gender = gender
	}
	if mobile != nil {
		u.Mobile = mobile
	}
	if photo != nil {
		u.Photo = photo
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hashedPassword string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, role models.Role) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, email string) error {
	for _, u := range r.users {
		if u.Email == email {
			u.IsVerified = true
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) SetBanned(_ context.Context, id int64, banned bool) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsBanned = banned
	return nil
}

func (r *fakeUserRepo) BumpTokenVersion(_ context.Context, email string) error {
	for _, u := range r.users {
		if u.Email == email {
			u.TokenVersion++
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) BulkDelete(_ context.Context, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		u, ok := r.users[id]
		if !ok || u.Role == models.RoleSuperAdmin {
			continue
		}
		delete(r.users, id)
		deleted++
	}
	return deleted, nil
}

func (r *fakeUserRepo) Counts(_ context.Context) (*repositories.UserCounts, error) {
	counts := &repositories.UserCounts{}
	for _, u := range r.users {
		counts.Total++
		if u.IsVerified {
			counts.Verified++
		}
		if u.IsBanned {
			counts.Banned++
		}
		if u.IsAdministrator() {
			counts.Admins++
		}
	}
	return counts, nil
}

// fakeMailer records delivered codes instead of sending mail
type fakeMailer struct {
	activationCodes map[string]string
	resetCodes      map[string]string
	failNext        bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		activationCodes: map[string]string{},
		resetCodes:      map[string]string{},
	}
}

func (m *fakeMailer) SendActivationCode(to, _, code string) error {
	if m.failNext {
		m.failNext = false
		return errDeliveryFailed
	}
	m.activationCodes[to] = code
	return nil
}

func (m *fakeMailer) SendPasswordResetCode(to, _, code string) error {
	if m.failNext {
		m.failNext = false
		return errDeliveryFailed
	}
	m.resetCodes[to] = code
	return nil
}

// fakeCommitteeRepo is an in-memory ICommitteeRepository
type fakeCommitteeRepo struct {
	committees map[int64]*models.Committee
	nextID     int64
}

func newFakeCommitteeRepo() *fakeCommitteeRepo {
	return &fakeCommitteeRepo{committees: map[int64]*models.Committee{}, nextID: 1}
}

func (r *fakeCommitteeRepo) Create(_ context.Context, committee *models.Committee) (int64, error) {
	for _, c := range r.committees {
		if c.Name == committee.Name {
			return 0, apperrors.NewConflictError("committee name already taken")
		}
	}
	c := *committee
	c.ID = r.nextID
	r.committees[c.ID] = &c
	r.nextID++
	return c.ID, nil
}

func (r *fakeCommitteeRepo) GetByID(_ context.Context, id int64) (*models.Committee, error) {
	c, ok := r.committees[id]
	if !ok {
		return nil, apperrors.ErrCommitteeNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCommitteeRepo) List(_ context.Context, offset uint64, limit int) ([]*models.Committee, int64, error) {
	var all []*models.Committee
	for _, c := range r.committees {
		copied := *c
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *fakeCommitteeRepo) Update(_ context.Context, committee *models.Committee) error {
	if _, ok := r.committees[committee.ID]; !ok {
		return apperrors.ErrCommitteeNotFound
	}
	copied := *committee
	r.committees[committee.ID] = &copied
	return nil
}

func (r *fakeCommitteeRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.committees[id]; !ok {
		return apperrors.ErrCommitteeNotFound
	}
	delete(r.committees, id)
	return nil
}

func (r *fakeCommitteeRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.committees[id]
	return ok, nil
}

// fakeMembershipRepo is an in-memory IMembershipRepository
type fakeMembershipRepo struct {
	assignments map[int64]*models.MembershipAssignment
	nextID      int64
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{assignments: map[int64]*models.MembershipAssignment{}, nextID: 1}
}

func (r *fakeMembershipRepo) Add(_ context.Context, assignment *models.MembershipAssignment) (int64, error) {
	for _, a := range r.assignments {
		if a.CommitteeID == assignment.CommitteeID && a.UserID == assignment.UserID {
			return 0, apperrors.ErrMemberAlreadyAdded
		}
	}
	a := *assignment
	a.ID = r.nextID
	r.assignments[a.ID] = &a
	r.nextID++
	return a.ID, nil
}

func (r *fakeMembershipRepo) GetByID(_ context.Context, id int64) (*models.MembershipAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, apperrors.ErrMemberNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeMembershipRepo) ListByCommitteeID(_ context.Context, committeeID int64) ([]models.MembershipAssignment, error) {
	var members []models.MembershipAssignment
	for _, a := range r.assignments {
		if a.CommitteeID == committeeID {
			members = append(members, *a)
		}
	}
	// Deliberately unordered; the service owns roster ordering
	return members, nil
}

func (r *fakeMembershipRepo) Update(_ context.Context, id int64, position *string, index *int) error {
	a, ok := r.assignments[id]
	if !ok {
		return apperrors.ErrMemberNotFound
	}
	if position != nil {
		a.Position = *position
	}
	if index != nil {
		a.Index = *index
	}
	return nil
}

func (r *fakeMembershipRepo) Remove(_ context.Context, id int64) error {
	if _, ok := r.assignments[id]; !ok {
		return apperrors.ErrMemberNotFound
	}
	delete(r.assignments, id)
	return nil
}

// fakeAdvisorRepo is an in-memory IAdvisorRepository
type fakeAdvisorRepo struct {
	advisors map[int64]*models.Advisor
	nextID   int64
}

func newFakeAdvisorRepo() *fakeAdvisorRepo {
	return &fakeAdvisorRepo{advisors: map[int64]*models.Advisor{}, nextID: 1}
}

func (r *fakeAdvisorRepo) Create(_ context.Context, advisor *models.Advisor) (int64, error) {
	for _, a := range r.advisors {
		if a.Email == advisor.Email {
			return 0, apperrors.NewConflictError("advisor email already exists")
		}
	}
	a := *advisor
	a.ID = r.nextID
	r.advisors[a.ID] = &a
	r.nextID++
	return a.ID, nil
}

func (r *fakeAdvisorRepo) BulkCreate(_ context.Context, advisors []*models.Advisor) error {
	for _, advisor := range advisors {
		id, err := r.Create(context.Background(), advisor)
		if err != nil {
			return err
		}
		advisor.ID = id
	}
	return nil
}

func (r *fakeAdvisorRepo) GetByID(_ context.Context, id int64) (*models.Advisor, error) {
	a, ok := r.advisors[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("advisor not found")
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAdvisorRepo) List(_ context.Context, offset uint64, limit int) ([]*models.Advisor, int64, error) {
	var all []*models.Advisor
	for _, a := range r.advisors {
		copied := *a
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *fakeAdvisorRepo) Update(_ context.Context, advisor *models.Advisor) error {
	if _, ok := r.advisors[advisor.ID]; !ok {
		return apperrors.NewNotFoundError("advisor not found")
	}
	for _, a := range r.advisors {
		if a.ID != advisor.ID && a.Email == advisor.Email {
			return apperrors.NewConflictError("advisor email already exists")
		}
	}
	copied := *advisor
	r.advisors[advisor.ID] = &copied
	return nil
}

func (r *fakeAdvisorRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.advisors[id]; !ok {
		return apperrors.NewNotFoundError("advisor not found")
	}
	delete(r.advisors, id)
	return nil
}

func (r *fakeAdvisorRepo) BulkDelete(_ context.Context, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := r.advisors[id]; ok {
			delete(r.advisors, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakePostRepo is an in-memory IPostRepository
type fakePostRepo struct {
	posts  map[int64]*models.Post
	nextID int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.Post{}, nextID: 1}
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) (int64, error) {
	for _, p := range r.posts {
		if p.Slug == post.Slug {
			return 0, apperrors.NewConflictError("a post with this title already exists")
		}
	}
	p := *post
	p.ID = r.nextID
	r.posts[p.ID] = &p
	r.nextID++
	return p.ID, nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("post not found")
	}
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) GetBySlug(_ context.Context, slug string) (*models.Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("post not found")
}

func (r *fakePostRepo) List(_ context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	var all []*models.Post
	for _, p := range r.posts {
		copied := *p
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *models.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return apperrors.NewNotFoundError("post not found")
	}
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) DeleteBySlug(_ context.Context, slug string) (*models.Post, error) {
	for id, p := range r.posts {
		if p.Slug == slug {
			copied := *p
			delete(r.posts, id)
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("post not found")
}

// fakeCommentRepo is an in-memory ICommentRepository
type fakeCommentRepo struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*models.Comment{}, nextID: 1}
}

func (r *fakeCommentRepo) Add(_ context.Context, comment *models.Comment) (int64, error) {
	c := *comment
	c.ID = r.nextID
	r.comments[c.ID] = &c
	r.nextID++
	return c.ID, nil
}

func (r *fakeCommentRepo) ListByPostID(_ context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments, nil
}

func (r *fakeCommentRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return apperrors.NewNotFoundError("comment not found")
	}
	delete(r.comments, id)
	return nil
}
