package dto

import "github.com/citydash/tripdash/pkg/validator"

type LoginRequest struct {
	Password string `json:"password"`
}

func (r *LoginRequest) Validate(v *validator.Validator) {
	v.Check(r.Password != "", "password", "must be provided")
	v.Check(len(r.Password) <= 128, "password", "must not be more than 128 characters long")
}
