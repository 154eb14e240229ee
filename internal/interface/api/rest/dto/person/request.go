package person

// CreateRequest is the body of POST and PUT. Username and password are
// mandatory, everything else keeps its stored value when omitted.
type CreateRequest struct {
	Username    *string `json:"username" validate:"required,notblank,max=150,username"`
	Password    *string `json:"password" validate:"required,notblank,max=128"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name" validate:"omitempty,max=150"`
	Email       *string `json:"email" validate:"omitempty,max=254,optional_email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,date"`
	IsActive    *bool   `json:"is_active"`
	Role        *string `json:"role" validate:"omitempty,role"`
}

// UpdateRequest is the body of PATCH: every field is optional.
type UpdateRequest struct {
	Username    *string `json:"username" validate:"omitnil,notblank,max=150,username"`
	Password    *string `json:"password" validate:"omitnil,notblank,max=128"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name" validate:"omitempty,max=150"`
	Email       *string `json:"email" validate:"omitempty,max=254,optional_email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,date"`
	IsActive    *bool   `json:"is_active"`
	Role        *string `json:"role" validate:"omitempty,role"`
}
