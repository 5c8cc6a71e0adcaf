package dto

import (
	"bookingpay/internal/domains/user/model"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	Level     string  `json:"level"`
	LastLogin *string `json:"last_login"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Level = user.Level
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}
