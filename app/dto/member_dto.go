package dto

// CreateMemberRequest represents the payload to enroll a member
type CreateMemberRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Tier        string  `json:"tier" validate:"required,oneof=basic plus premium founders"`
	HouseholdID *string `json:"household_id,omitempty" validate:"omitempty,max=64"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateMemberRequest represents a partial member update
type UpdateMemberRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Tier   *string `json:"tier,omitempty" validate:"omitempty,oneof=basic plus premium founders"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active lapsed archived"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// MemberDTO is the member representation in API responses
type MemberDTO struct {
	ID             uint    `json:"id"`
	UUID           string  `json:"uuid"`
	MemberNumber   string  `json:"member_number"`
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Tier           string  `json:"tier"`
	CreditsBalance float64 `json:"credits_balance"`
	JoinDate       string  `json:"join_date"`
	Status         string  `json:"status"`
	HouseholdID    *string `json:"household_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// MemberResponse wraps a single member
type MemberResponse struct {
	Message string    `json:"message"`
	Member  MemberDTO `json:"member"`
}

// ListMembersRequest filters the member list
type ListMembersRequest struct {
	Tier        *string `json:"tier,omitempty" validate:"omitempty,oneof=basic plus premium founders"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active lapsed archived"`
	HouseholdID *string `json:"household_id,omitempty" validate:"omitempty,max=64"`
	Page        int     `json:"page" validate:"omitempty,min=1"`
	PageSize    int     `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListMembersResponse lists members with pagination
type ListMembersResponse struct {
	Message    string      `json:"message"`
	Items      []MemberDTO `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// MembershipOverviewResponse summarizes the member base
type MembershipOverviewResponse struct {
	Message         string           `json:"message"`
	TotalMembers    int64            `json:"total_members"`
	ActiveMembers   int64            `json:"active_members"`
	MembersByTier   map[string]int64 `json:"members_by_tier"`
	CreditsGranted  float64          `json:"credits_granted_month"`
	CreditsRedeemed float64          `json:"credits_redeemed_month"`
	GeneratedAt     string           `json:"generated_at"`
}

// AdjustCreditsRequest grants or redeems member credits
type AdjustCreditsRequest struct {
	Delta  float64 `json:"delta" validate:"required"`
	Reason string  `json:"reason" validate:"required,min=3,max=500"`
}

// AdjustCreditsResponse returns the member after adjustment
type AdjustCreditsResponse struct {
	Message string    `json:"message"`
	Member  MemberDTO `json:"member"`
}
