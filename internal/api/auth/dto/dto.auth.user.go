// Package authdto - đầu vào cho các endpoint auth và user CRUD.
package authdto

// UserRegisterInput đầu vào đăng ký người dùng.
type UserRegisterInput struct {
	Username      string `json:"username" validate:"required,min=3,max=64,no_xss"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,strong_password"`
	FullName      string `json:"fullName" validate:"omitempty,max=128,no_xss"`
	JobPosition   string `json:"jobPosition" validate:"omitempty,job_position"`
	StoreLocation string `json:"storeLocation" validate:"omitempty,store_location"`
	Department    string `json:"department" validate:"omitempty,department"`
}

// UserLoginInput đầu vào đăng nhập.
type UserLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserCreateInput đầu vào tạo người dùng qua CRUD (trùng shape với đăng ký).
type UserCreateInput = UserRegisterInput

// UserUpdateInput đầu vào cập nhật hồ sơ người dùng.
// Không cho đổi username/password qua CRUD thường.
type UserUpdateInput struct {
	FullName      string `json:"fullName" validate:"omitempty,max=128,no_xss"`
	JobPosition   string `json:"jobPosition" validate:"omitempty,job_position"`
	StoreLocation string `json:"storeLocation" validate:"omitempty,store_location"`
	Department    string `json:"department" validate:"omitempty,department"`
}
