package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/grupohub/grupohub-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	TypeUser  *TypeUserHandler
	TypeGroup *TypeGroupHandler
	Group     *GroupHandler
	Member    *MemberHandler
	Activity  *ActivityHandler
	Document  *DocumentHandler
	Meeting   *MeetingHandler
	Note      *NoteHandler
	Report    *ReportHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:      &AuthHandler{authService: services.Auth},
		User:      &UserHandler{userService: services.User, permissions: services.Permission},
		TypeUser:  &TypeUserHandler{typeUserService: services.TypeUser, permissions: services.Permission},
		TypeGroup: &TypeGroupHandler{typeGroupService: services.TypeGroup, permissions: services.Permission},
		Group:     &GroupHandler{groupService: services.Group, permissions: services.Permission},
		Member:    &MemberHandler{memberService: services.Member, permissions: services.Permission},
		Activity:  &ActivityHandler{activityService: services.Activity, permissions: services.Permission},
		Document:  &DocumentHandler{documentService: services.Document, permissions: services.Permission},
		Meeting:   &MeetingHandler{meetingService: services.Meeting, permissions: services.Permission},
		Note:      &NoteHandler{noteService: services.Note, permissions: services.Permission},
		Report:    &ReportHandler{reportService: services.Report, permissions: services.Permission},
	}
}

// ============================================
// Error Responses
// ============================================

// respondError maps a service error onto the response envelope:
// {"errors": message, "code": status}. Validation failures are the one
// exception: they carry a bare {"errors": {field: [messages]}} body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var body interface{} = "Internal server error."

	var verrs validator.ValidationErrors
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationMessages(verrs)})
		return
	case errors.As(err, &nf):
		status = http.StatusNotFound
		body = nf.Error()
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		body = service.ErrForbidden.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		body = err.Error()
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrMembersExist),
		errors.Is(err, service.ErrInUse),
		errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
		body = err.Error()
	}

	c.JSON(status, gin.H{"errors": body, "code": status})
}

// bindJSON binds the request body and writes the validation envelope on
// failure. Returns false when the handler should stop.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationMessages(verrs)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": "Malformed request body.", "code": http.StatusBadRequest})
		return false
	}
	return true
}

// validationMessages turns validator errors into a field -> messages map.
func validationMessages(verrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		out[field] = append(out[field], fieldMessage(field, fe))
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must have at least %s items.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
