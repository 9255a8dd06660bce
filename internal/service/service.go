package service

import (
	"errors"
	"fmt"

	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/db"
	"github.com/grupohub/grupohub-backend/internal/email"
	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/sso"
	"github.com/grupohub/grupohub-backend/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrMembersExist       = errors.New("one or more members already belong to this group")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthenticated")
	ErrForbidden          = errors.New("This action is unauthorized.")
	ErrInUse              = errors.New("resource is referenced by other records")
	ErrInvalidInput       = errors.New("invalid input")
)

// NotFoundError carries the entity-specific message surfaced on 404s.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func notFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth       AuthService
	User       UserService
	TypeUser   TypeUserService
	TypeGroup  TypeGroupService
	Group      GroupService
	Member     MemberService
	Activity   ActivityService
	Document   DocumentService
	Meeting    MeetingService
	Note       NoteService
	Report     ReportService
	Permission PermissionService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config   *config.Config
	Repos    *repository.Repositories
	EmailSvc *email.Service
	Storage  *storage.Storage
	Redis    *db.RedisDB
	SSO      *sso.Client
}

func NewServices(deps *ServiceDeps) *Services {
	permissionService := NewPermissionService(deps.Repos.UserRepo, deps.Repos.GroupRepo)

	return &Services{
		Auth: NewAuthService(
			deps.Config,
			deps.Repos.Tx,
			deps.Repos.UserRepo,
			deps.Repos.TypeUserRepo,
			deps.Repos.RepresentativeRepo,
			deps.Repos.MemberRepo,
			deps.EmailSvc,
			deps.Redis,
			deps.SSO,
		),
		User:      NewUserService(deps.Repos.UserRepo),
		TypeUser:  NewTypeUserService(deps.Repos.TypeUserRepo),
		TypeGroup: NewTypeGroupService(deps.Repos.TypeGroupRepo),
		Group: NewGroupService(
			deps.Config,
			deps.Repos.Tx,
			deps.Repos.GroupRepo,
			deps.Repos.TypeGroupRepo,
			deps.Repos.RepresentativeRepo,
			deps.Repos.MemberRepo,
			deps.Repos.UserRepo,
			deps.EmailSvc,
		),
		Member: NewMemberService(
			deps.Repos.Tx,
			deps.Repos.MemberRepo,
			deps.Repos.GroupRepo,
			deps.Repos.UserRepo,
		),
		Activity: NewActivityService(deps.Repos.ActivityRepo, deps.Repos.GroupRepo),
		Document: NewDocumentService(deps.Repos.DocumentRepo, deps.Repos.GroupRepo, deps.Storage),
		Meeting:  NewMeetingService(deps.Repos.MeetingRepo, deps.Repos.GroupRepo, deps.Storage),
		Note:     NewNoteService(deps.Repos.NoteRepo, deps.Repos.GroupRepo),
		Report: NewReportService(
			deps.Config,
			deps.Repos.GroupRepo,
			deps.Repos.MemberRepo,
			deps.Repos.DocumentRepo,
			deps.Repos.UserRepo,
			deps.Storage,
		),
		Permission: permissionService,
	}
}
