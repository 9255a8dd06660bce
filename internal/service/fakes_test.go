package service

import (
	"context"
	"fmt"
	"strings"

	pgx "github.com/jackc/pgx/v5"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

// Hand-written fakes. Each embeds the repository interface so only the
// methods a test exercises need an implementation; anything else panics.

type fakeTxManager struct {
	beginCount int
	failWith   error
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	f.beginCount++
	if f.failWith != nil {
		return f.failWith
	}
	return fn(ctx, nil)
}

// rollbackTxManager snapshots the member repo before the unit of work and
// restores it when the function errors, mirroring a real transaction
// rollback.
type rollbackTxManager struct {
	memRepo   *fakeMemberRepo
	rollbacks int
}

func (m *rollbackTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	snap := m.memRepo.snapshot()
	if err := fn(ctx, nil); err != nil {
		m.memRepo.restore(snap)
		m.rollbacks++
		return err
	}
	return nil
}

// ============================================
// Users
// ============================================

type fakeUserRepo struct {
	repository.UserRepository
	users   map[string]*repository.User
	tokens  map[string]*repository.ApiToken
	created []*repository.User
}

func newFakeUserRepo(users ...*repository.User) *fakeUserRepo {
	f := &fakeUserRepo{
		users:  make(map[string]*repository.User),
		tokens: make(map[string]*repository.ApiToken),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*repository.User, error) {
	u := f.users[id]
	if u != nil && u.DeletedAt != nil {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmailAny(ctx context.Context, email string) (*repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateTx(ctx context.Context, tx pgx.Tx, user *repository.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	f.users[user.ID] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) SaveApiToken(ctx context.Context, token *repository.ApiToken) error {
	f.tokens[token.UserID] = token
	return nil
}

func (f *fakeUserRepo) FindApiToken(ctx context.Context, token string) (*repository.ApiToken, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindApiTokenByUser(ctx context.Context, userID string) (*repository.ApiToken, error) {
	return f.tokens[userID], nil
}

func (f *fakeUserRepo) DeleteApiTokenByUser(ctx context.Context, userID string) error {
	delete(f.tokens, userID)
	return nil
}

// ============================================
// TypeUsers
// ============================================

type fakeTypeUserRepo struct {
	repository.TypeUserRepository
	byName map[string]*repository.TypeUser
}

func newFakeTypeUserRepo(roles ...string) *fakeTypeUserRepo {
	f := &fakeTypeUserRepo{byName: make(map[string]*repository.TypeUser)}
	for i, name := range roles {
		f.byName[name] = &repository.TypeUser{ID: fmt.Sprintf("role-%d", i+1), Name: name}
	}
	return f
}

func (f *fakeTypeUserRepo) FindByName(ctx context.Context, name string) (*repository.TypeUser, error) {
	return f.byName[strings.ToLower(name)], nil
}

// ============================================
// Representatives
// ============================================

type fakeRepresentativeRepo struct {
	repository.RepresentativeRepository
	pending map[string]*repository.Representative
	linked  map[string]string // rep id -> user id
	created []*repository.Representative
	calls   *[]string
}

func newFakeRepresentativeRepo() *fakeRepresentativeRepo {
	return &fakeRepresentativeRepo{
		pending: make(map[string]*repository.Representative),
		linked:  make(map[string]string),
	}
}

func (f *fakeRepresentativeRepo) FindPendingByEmail(ctx context.Context, email string) (*repository.Representative, error) {
	return f.pending[strings.ToLower(email)], nil
}

func (f *fakeRepresentativeRepo) LinkUserTx(ctx context.Context, tx pgx.Tx, id, userID string) error {
	f.linked[id] = userID
	return nil
}

func (f *fakeRepresentativeRepo) CreateTx(ctx context.Context, tx pgx.Tx, rep *repository.Representative) error {
	if rep.ID == "" {
		rep.ID = fmt.Sprintf("rep-%d", len(f.created)+1)
	}
	f.created = append(f.created, rep)
	return nil
}

func (f *fakeRepresentativeRepo) UpdateTx(ctx context.Context, tx pgx.Tx, rep *repository.Representative) error {
	return nil
}

func (f *fakeRepresentativeRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id string) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "representative:"+id)
	}
	return nil
}

// ============================================
// Members
// ============================================

type fakeMemberRepo struct {
	repository.MemberRepository
	pending  map[string]*repository.Member
	existing map[string]bool // "groupID|email" -> true
	members  map[string]*repository.Member
	joined   []string // "memberID|groupID"
	linked   map[string]string
	calls    *[]string
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		pending:  make(map[string]*repository.Member),
		existing: make(map[string]bool),
		members:  make(map[string]*repository.Member),
		linked:   make(map[string]string),
	}
}

type memberRepoState struct {
	existing map[string]bool
	members  map[string]*repository.Member
	joined   []string
}

func (f *fakeMemberRepo) snapshot() memberRepoState {
	s := memberRepoState{
		existing: make(map[string]bool, len(f.existing)),
		members:  make(map[string]*repository.Member, len(f.members)),
		joined:   append([]string(nil), f.joined...),
	}
	for k, v := range f.existing {
		s.existing[k] = v
	}
	for k, v := range f.members {
		s.members[k] = v
	}
	return s
}

func (f *fakeMemberRepo) restore(s memberRepoState) {
	f.existing = s.existing
	f.members = s.members
	f.joined = s.joined
}

func (f *fakeMemberRepo) FindPendingByEmail(ctx context.Context, email string) (*repository.Member, error) {
	return f.pending[strings.ToLower(email)], nil
}

func (f *fakeMemberRepo) LinkUserTx(ctx context.Context, tx pgx.Tx, id, userID string) error {
	f.linked[id] = userID
	return nil
}

func (f *fakeMemberRepo) ExistsInGroupTx(ctx context.Context, tx pgx.Tx, groupID, email string) (bool, error) {
	return f.existing[groupID+"|"+strings.ToLower(email)], nil
}

func (f *fakeMemberRepo) CreateTx(ctx context.Context, tx pgx.Tx, m *repository.Member) error {
	if m.ID == "" {
		m.ID = fmt.Sprintf("member-%d", len(f.members)+1)
	}
	f.members[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) AddToGroupTx(ctx context.Context, tx pgx.Tx, memberID, groupID string) error {
	f.joined = append(f.joined, memberID+"|"+groupID)
	f.existing[groupID+"|"+strings.ToLower(f.members[memberID].Email)] = true
	return nil
}

func (f *fakeMemberRepo) FindByID(ctx context.Context, id string) (*repository.Member, error) {
	return f.members[id], nil
}

func (f *fakeMemberRepo) FindByGroup(ctx context.Context, groupID string) ([]*repository.Member, error) {
	var out []*repository.Member
	for _, j := range f.joined {
		parts := strings.SplitN(j, "|", 2)
		if parts[1] == groupID {
			out = append(out, f.members[parts[0]])
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, m *repository.Member) error {
	f.members[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id string) error {
	delete(f.members, id)
	return nil
}

func (f *fakeMemberRepo) DeleteByGroupTx(ctx context.Context, tx pgx.Tx, groupID string) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "members:"+groupID)
	}
	return nil
}

// ============================================
// Groups
// ============================================

type fakeGroupRepo struct {
	repository.GroupRepository
	groups   map[string]*repository.Group
	repUsers map[string][]string // group id -> representative user ids
	calls    *[]string
}

func newFakeGroupRepo(groups ...*repository.Group) *fakeGroupRepo {
	f := &fakeGroupRepo{
		groups:   make(map[string]*repository.Group),
		repUsers: make(map[string][]string),
	}
	for _, g := range groups {
		f.groups[g.ID] = g
	}
	return f
}

func (f *fakeGroupRepo) FindByID(ctx context.Context, id string) (*repository.Group, error) {
	return f.groups[id], nil
}

func (f *fakeGroupRepo) FindRepresentativeUserIDs(ctx context.Context, groupID string) ([]string, error) {
	return f.repUsers[groupID], nil
}

func (f *fakeGroupRepo) CreateTx(ctx context.Context, tx pgx.Tx, g *repository.Group) error {
	if g.ID == "" {
		g.ID = fmt.Sprintf("group-%d", len(f.groups)+1)
	}
	f.groups[g.ID] = g
	return nil
}

func (f *fakeGroupRepo) UpdateTx(ctx context.Context, tx pgx.Tx, g *repository.Group) error {
	f.groups[g.ID] = g
	return nil
}

func (f *fakeGroupRepo) AddRepresentativeTx(ctx context.Context, tx pgx.Tx, groupID, userID string) error {
	f.repUsers[groupID] = append(f.repUsers[groupID], userID)
	return nil
}

func (f *fakeGroupRepo) RemoveRepresentativeTx(ctx context.Context, tx pgx.Tx, groupID, userID string) error {
	kept := f.repUsers[groupID][:0]
	for _, id := range f.repUsers[groupID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	f.repUsers[groupID] = kept
	return nil
}

func (f *fakeGroupRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id string) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "group:"+id)
	}
	delete(f.groups, id)
	return nil
}

// ============================================
// Activities
// ============================================

type fakeActivityRepo struct {
	repository.ActivityRepository
	activities map[string]*repository.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[string]*repository.Activity)}
}

func (f *fakeActivityRepo) Create(ctx context.Context, a *repository.Activity) error {
	if a.ID == "" {
		a.ID = fmt.Sprintf("activity-%d", len(f.activities)+1)
	}
	f.activities[a.ID] = a
	return nil
}

func (f *fakeActivityRepo) FindByID(ctx context.Context, id string) (*repository.Activity, error) {
	return f.activities[id], nil
}

func (f *fakeActivityRepo) FindByGroup(ctx context.Context, groupID string) ([]*repository.Activity, error) {
	var out []*repository.Activity
	for _, a := range f.activities {
		if a.GroupID == groupID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, a *repository.Activity) error {
	f.activities[a.ID] = a
	return nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	delete(f.activities, id)
	return nil
}

// ============================================
// Documents / Meetings
// ============================================

type fakeDocumentRepo struct {
	repository.DocumentRepository
	docs map[string]*repository.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*repository.Document)}
}

func (f *fakeDocumentRepo) Create(ctx context.Context, d *repository.Document) error {
	if d.ID == "" {
		d.ID = fmt.Sprintf("doc-%d", len(f.docs)+1)
	}
	f.docs[d.ID] = d
	return nil
}

func (f *fakeDocumentRepo) FindByID(ctx context.Context, id string) (*repository.Document, error) {
	return f.docs[id], nil
}

func (f *fakeDocumentRepo) FindByGroup(ctx context.Context, groupID string) ([]*repository.Document, error) {
	var out []*repository.Document
	for _, d := range f.docs {
		if d.GroupID == groupID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Update(ctx context.Context, d *repository.Document) error {
	f.docs[d.ID] = d
	return nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

type fakeMeetingRepo struct {
	repository.MeetingRepository
	meetings map[string]*repository.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[string]*repository.Meeting)}
}

func (f *fakeMeetingRepo) Create(ctx context.Context, m *repository.Meeting) error {
	if m.ID == "" {
		m.ID = fmt.Sprintf("meeting-%d", len(f.meetings)+1)
	}
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) FindByID(ctx context.Context, id string) (*repository.Meeting, error) {
	return f.meetings[id], nil
}

func (f *fakeMeetingRepo) Update(ctx context.Context, m *repository.Meeting) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) Delete(ctx context.Context, id string) error {
	delete(f.meetings, id)
	return nil
}

// ============================================
// TypeGroups
// ============================================

type fakeTypeGroupRepo struct {
	repository.TypeGroupRepository
	items map[string]*repository.TypeGroup
	calls *[]string
}

func newFakeTypeGroupRepo() *fakeTypeGroupRepo {
	return &fakeTypeGroupRepo{items: make(map[string]*repository.TypeGroup)}
}

func (f *fakeTypeGroupRepo) CreateTx(ctx context.Context, tx pgx.Tx, t *repository.TypeGroup) error {
	if t.ID == "" {
		t.ID = fmt.Sprintf("tg-%d", len(f.items)+1)
	}
	f.items[t.ID] = t
	return nil
}

func (f *fakeTypeGroupRepo) UpdateTx(ctx context.Context, tx pgx.Tx, t *repository.TypeGroup) error {
	f.items[t.ID] = t
	return nil
}

func (f *fakeTypeGroupRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id string) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "type_group:"+id)
	}
	delete(f.items, id)
	return nil
}
