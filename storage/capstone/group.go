package capstone

import (
	"context"

	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/group"
)

var _ group.Repository = (*Client)(nil)

type (
	studentDTO struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		RollNumber string `json:"rollNumber"`
		Role       string `json:"role"`
		Email      string `json:"email"`
	}

	groupDTO struct {
		ID          string       `json:"id"`
		ProjectName string       `json:"projectName"`
		GroupCode   string       `json:"groupCode"`
		Students    []studentDTO `json:"students"`
		Supervisors []string     `json:"supervisors"`
	}
)

// GetGroup fetches the group detail, including the authoritative member
// roster used for attendance reconciliation.
func (c *Client) GetGroup(ctx context.Context, groupID string) (group.Group, error) {
	var dto groupDTO
	if err := c.get(ctx, "/groups/"+groupID, &dto); err != nil {
		if statusCode(err) == 404 {
			return group.Group{}, group.ErrNotFound
		}
		return group.Group{}, errors.Wrap(err, "fetching group")
	}

	grp := group.Group{
		ID:          dto.ID,
		ProjectName: dto.ProjectName,
		GroupCode:   dto.GroupCode,
		Supervisors: dto.Supervisors,
	}
	for _, s := range dto.Students {
		grp.Students = append(grp.Students, group.Student{
			ID:         s.ID,
			Name:       s.Name,
			RollNumber: s.RollNumber,
			Role:       s.Role,
			Email:      s.Email,
		})
	}
	return grp, nil
}
