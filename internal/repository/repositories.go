package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Tx TxManager

	UserRepo           UserRepository
	TypeUserRepo       TypeUserRepository
	TypeGroupRepo      TypeGroupRepository
	RepresentativeRepo RepresentativeRepository
	GroupRepo          GroupRepository
	MemberRepo         MemberRepository
	ActivityRepo       ActivityRepository
	DocumentRepo       DocumentRepository
	MeetingRepo        MeetingRepository
	NoteRepo           NoteRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Tx: NewTxManager(pool),

		UserRepo:           NewUserRepository(pool),
		TypeUserRepo:       NewTypeUserRepository(pool),
		TypeGroupRepo:      NewTypeGroupRepository(pool),
		RepresentativeRepo: NewRepresentativeRepository(pool),
		GroupRepo:          NewGroupRepository(pool),
		MemberRepo:         NewMemberRepository(pool),
		ActivityRepo:       NewActivityRepository(pool),
		DocumentRepo:       NewDocumentRepository(pool),
		MeetingRepo:        NewMeetingRepository(pool),
		NoteRepo:           NewNoteRepository(pool),
	}
}
