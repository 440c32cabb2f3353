package dto

type CreateUserDto struct {
	Username       string  `json:"username" binding:"required,min=3,max=20"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8,max=48"`
	Bio            string  `json:"bio" binding:"required"`
	ProfilePicture *string `json:"profilepicture"`
}

type SignInDto struct {
	Email    string `json:"email" binding:"required,min=5"`
	Password string `json:"password" binding:"required,min=3"`
}

// UpdateProfileDto carries only the fields the owner is allowed to change.
// Absent fields are left untouched.
type UpdateProfileDto struct {
	Password       *string `json:"password" binding:"omitempty,min=8,max=48"`
	ProfilePicture *string `json:"profilepicture"`
	Bio            *string `json:"bio"`
	Username       *string `json:"username" binding:"omitempty,min=3,max=20"`
}
