package request

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" validate:"omitempty,url"`
}
