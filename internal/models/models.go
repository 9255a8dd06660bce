package models

import (
	"time"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

// ============================================
// Auth DTOs
// ============================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SSOLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ============================================
// User DTOs
// ============================================

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

func ToUserResponse(u *repository.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.TypeUserName,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================
// TypeUser / TypeGroup DTOs
// ============================================

type TypeUserRequest struct {
	Name string `json:"name" binding:"required,min=4"`
}

type TypeUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToTypeUserResponse(t *repository.TypeUser) TypeUserResponse {
	return TypeUserResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

type CreateTypeGroupRequest struct {
	Name string `json:"name" binding:"required,min=2"`
	Kind string `json:"kind,omitempty" binding:"omitempty,oneof=internal external"`
}

type UpdateTypeGroupRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=2"`
	Kind *string `json:"kind,omitempty" binding:"omitempty,oneof=internal external"`
}

type TypeGroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToTypeGroupResponse(t *repository.TypeGroup) TypeGroupResponse {
	return TypeGroupResponse{ID: t.ID, Name: t.Name, Kind: t.Kind, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

// ============================================
// Group DTOs
// ============================================

type CreateGroupRequest struct {
	Name                string  `json:"name" binding:"required,min=2"`
	Description         *string `json:"description,omitempty"`
	TypeGroupName       string  `json:"typeGroupName" binding:"required,min=2"`
	TypeGroupKind       string  `json:"typeGroupKind,omitempty" binding:"omitempty,oneof=internal external"`
	RepresentativeName  string  `json:"representativeName,omitempty"`
	RepresentativeEmail string  `json:"representativeEmail" binding:"required,email"`
}

type UpdateGroupRequest struct {
	Name                *string `json:"name,omitempty" binding:"omitempty,min=2"`
	Description         *string `json:"description,omitempty"`
	TypeGroupName       *string `json:"typeGroupName,omitempty" binding:"omitempty,min=2"`
	TypeGroupKind       *string `json:"typeGroupKind,omitempty" binding:"omitempty,oneof=internal external"`
	RepresentativeName  *string `json:"representativeName,omitempty"`
	RepresentativeEmail *string `json:"representativeEmail,omitempty" binding:"omitempty,email"`
}

type RepresentativeResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	UserID *string `json:"userId,omitempty"`
}

type GroupResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    *string                 `json:"description,omitempty"`
	TypeGroup      *TypeGroupResponse      `json:"typeGroup,omitempty"`
	Representative *RepresentativeResponse `json:"representative,omitempty"`
	CreatorUserID  string                  `json:"creatorUserId"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

func ToGroupResponse(g *repository.Group) GroupResponse {
	resp := GroupResponse{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		CreatorUserID: g.CreatorUserID,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	if g.TypeGroup != nil {
		tg := ToTypeGroupResponse(g.TypeGroup)
		resp.TypeGroup = &tg
	}
	if g.Representative != nil {
		resp.Representative = &RepresentativeResponse{
			ID:     g.Representative.ID,
			Name:   g.Representative.Name,
			Email:  g.Representative.Email,
			UserID: g.Representative.UserID,
		}
	}
	return resp
}

// ============================================
// Member DTOs
// ============================================

type CreateMemberItem struct {
	Name      string     `json:"name" binding:"required,min=2"`
	Email     string     `json:"email" binding:"required,email"`
	Phone     *string    `json:"phone,omitempty"`
	Role      *string    `json:"role,omitempty"`
	EntryDate *time.Time `json:"entryDate,omitempty"`
}

type CreateMembersRequest struct {
	Members []CreateMemberItem `json:"members" binding:"required,min=1,dive"`
}

type UpdateMemberRequest struct {
	Phone         *string    `json:"phone,omitempty"`
	Role          *string    `json:"role,omitempty"`
	EntryDate     *time.Time `json:"entryDate,omitempty"`
	DepartureDate *time.Time `json:"departureDate,omitempty"`
}

type MemberResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone,omitempty"`
	Role          *string    `json:"role,omitempty"`
	EntryDate     *time.Time `json:"entryDate,omitempty"`
	DepartureDate *time.Time `json:"departureDate,omitempty"`
	UserID        *string    `json:"userId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func ToMemberResponse(m *repository.Member) MemberResponse {
	return MemberResponse{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		Role:          m.Role,
		EntryDate:     m.EntryDate,
		DepartureDate: m.DepartureDate,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}

// ============================================
// Activity DTOs
// ============================================

type CreateActivityRequest struct {
	Name        string     `json:"name" binding:"required,min=2"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

type UpdateActivityRequest struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,min=2"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

type ActivityResponse struct {
	ID          string     `json:"id"`
	GroupID     string     `json:"groupId"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ToActivityResponse(a *repository.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		GroupID:     a.GroupID,
		Name:        a.Name,
		Description: a.Description,
		Date:        a.Date,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ============================================
// Document / Meeting DTOs
// ============================================

type RenameDocumentRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

type DocumentResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToDocumentResponse(d *repository.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		GroupID:   d.GroupID,
		Name:      d.Name,
		Size:      d.Size,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type UpdateMeetingRequest struct {
	Title *string    `json:"title,omitempty" binding:"omitempty,min=2"`
	Date  *time.Time `json:"date,omitempty"`
}

type MeetingResponse struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"groupId"`
	Title     string     `json:"title"`
	Name      string     `json:"name"`
	Size      int64      `json:"size"`
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func ToMeetingResponse(m *repository.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:        m.ID,
		GroupID:   m.GroupID,
		Title:     m.Title,
		Name:      m.Name,
		Size:      m.Size,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ============================================
// Note DTOs
// ============================================

type CreateNoteRequest struct {
	Title   string  `json:"title" binding:"required,min=2"`
	Content *string `json:"content,omitempty"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=2"`
	Content *string `json:"content,omitempty"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Title     string    `json:"title"`
	Content   *string   `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToNoteResponse(n *repository.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		GroupID:   n.GroupID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
