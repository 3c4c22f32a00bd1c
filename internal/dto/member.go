package dto

import (
	"time"

	"github.com/clinicore/clinic-management-api/internal/models"
)

// MemberDTO is one row of the organization member listing: the membership
// joined with the user's display data.
type MemberDTO struct {
	MembershipID uint64                  `json:"membershipId"`
	UserID       uint64                  `json:"userId"`
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Role         models.MembershipRole   `json:"role"`
	Status       models.MembershipStatus `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// ToMemberDTOs joins memberships with their users. A membership whose user
// record is missing degrades to a placeholder name and empty email.
func ToMemberDTOs(members []models.Membership, users map[uint64]models.User) []MemberDTO {
	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		name := "Desconhecido"
		email := ""
		if u, ok := users[m.UserID]; ok {
			name = u.Name
			email = u.Email
		}

		dtos[i] = MemberDTO{
			MembershipID: m.ID,
			UserID:       m.UserID,
			Name:         name,
			Email:        email,
			Role:         m.Role,
			Status:       m.Status,
			CreatedAt:    m.CreatedAt,
		}
	}
	return dtos
}
