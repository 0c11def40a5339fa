package group

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when the capstone API knows no such group.
var ErrNotFound = errors.New("group not found")

// Repository resolves group details from the capstone API.
type Repository interface {
	GetGroup(ctx context.Context, groupID string) (Group, error)
}

// Student is a group member as supplied by the capstone API.
type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Role       string `json:"role"` // leader | secretary | member
	Email      string `json:"email"`
}

// Group is the capstone group detail shape. Membership is collaborator-owned;
// this core treats it as the authoritative roster for a given request.
type Group struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	GroupCode   string    `json:"group_code"`
	Students    []Student `json:"students"`
	Supervisors []string  `json:"supervisors"`
}

// Member finds a student by roll number.
func (g Group) Member(rollNumber string) (Student, bool) {
	for _, s := range g.Students {
		if s.RollNumber == rollNumber {
			return s, true
		}
	}
	return Student{}, false
}
