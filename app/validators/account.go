package validators

import (
	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
)

const emailTakenMsg = "E-Mail exists already, please pick a different one."

type Signup struct {
	Name            *string `json:"name" validate:"required,min=3,max=100" msg:"required=User name is required;min=Too short user name;max=Too long user name"`
	Email           *string `json:"email" validate:"required,email" msg:"required=Email is required;email=Please enter a valid email."`
	Password        *string `json:"password" validate:"required,alphanum,min=6" msg:"*=Please enter a password with only letters and numbers and at least 6 characters."`
	PasswordConfirm *string `json:"passwordConfirm" validate:"required,eqfield=Password" msg:"*=Passwords have to match!"`
	Phone           *string `json:"phone" validate:"omitempty,phone_egsa"`
}

func (in *Signup) check(c *Checks) {
	if taken(c, "email", normalizeEmail(in.Email)) {
		c.Fail("email", emailTakenMsg, *in.Email)
	}
}

func (in *Signup) Params() (name, email, phone, password string) {
	return trimmed(in.Name), normalizeEmail(in.Email), trimmed(in.Phone), *in.Password
}

type Login struct {
	Email    *string `json:"email" validate:"required,email" msg:"required=Email is required;email=Please enter a valid email."`
	Password *string `json:"password" validate:"required,min=1" msg:"*=Password is required"`
}

func (in *Login) Credentials() (email, password string) {
	return normalizeEmail(in.Email), *in.Password
}

type ForgotPassword struct {
	Email *string `json:"email" validate:"required,email" msg:"required=Email is required;email=Please enter a valid email."`
}

func (in *ForgotPassword) Address() string {
	return normalizeEmail(in.Email)
}

type VerifyResetCode struct {
	ResetCode *string `json:"resetCode" validate:"required,min=1" msg:"*=Reset code is required"`
}

func (in *VerifyResetCode) Code() string {
	return trimmed(in.ResetCode)
}

type ResetPassword struct {
	Email           *string `json:"email" validate:"required,email" msg:"required=Email is required;email=Please enter a valid email."`
	NewPassword     *string `json:"newPassword" validate:"required,alphanum,min=6" msg:"*=Please enter a password with only letters and numbers and at least 6 characters."`
	PasswordConfirm *string `json:"passwordConfirm" validate:"required,eqfield=NewPassword" msg:"*=Passwords have to match!"`
}

func (in *ResetPassword) Params() (email, password string) {
	return normalizeEmail(in.Email), *in.NewPassword
}

// UserCreate is the admin form for new accounts.
type UserCreate struct {
	Name            *string `json:"name" validate:"required,min=3,max=100" msg:"required=User name is required;min=Too short user name;max=Too long user name"`
	Email           *string `json:"email" validate:"required,email" msg:"required=Email is required;email=Please enter a valid email."`
	Password        *string `json:"password" validate:"required,alphanum,min=6" msg:"*=Please enter a password with only letters and numbers and at least 6 characters."`
	PasswordConfirm *string `json:"passwordConfirm" validate:"required,eqfield=Password" msg:"*=Passwords have to match!"`
	Phone           *string `json:"phone" validate:"omitempty,phone_egsa"`
	ProfileImg      *string `json:"profileImg" upload:"users,user"`
	Role            *string `json:"role" validate:"omitempty,oneof=user manager admin"`
}

func (in *UserCreate) check(c *Checks) {
	if taken(c, "email", normalizeEmail(in.Email)) {
		c.Fail("email", emailTakenMsg, *in.Email)
	}
}

func (in *UserCreate) Model() *models.User {
	user := &models.User{
		Name:       trimmed(in.Name),
		Slug:       helpers.GenerateSlug(*in.Name),
		Email:      normalizeEmail(in.Email),
		Phone:      trimmed(in.Phone),
		ProfileImg: str(in.ProfileImg),
		Role:       models.RoleUser,
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	return user
}

func (in *UserCreate) PlainPassword() string {
	return *in.Password
}

// UserUpdate is the admin form for existing accounts; passwords change
// through their own endpoint.
type UserUpdate struct {
	Name       *string `json:"name" validate:"omitempty,min=3,max=100" msg:"min=Too short user name;max=Too long user name"`
	Email      *string `json:"email" validate:"omitempty,email" msg:"*=Please enter a valid email."`
	Phone      *string `json:"phone" validate:"omitempty,phone_egsa"`
	ProfileImg *string `json:"profileImg" upload:"users,user"`
	Role       *string `json:"role" validate:"omitempty,oneof=user manager admin"`
	Active     *bool   `json:"active"`
}

func (in *UserUpdate) check(c *Checks) {
	if taken(c, "email", normalizeEmail(in.Email)) {
		c.Fail("email", emailTakenMsg, *in.Email)
	}
}

func (in *UserUpdate) Changes() map[string]any {
	changes := profileChanges(in.Name, in.Email, in.Phone, in.ProfileImg)
	if in.Role != nil {
		changes["role"] = *in.Role
	}
	if in.Active != nil {
		changes["active"] = *in.Active
	}
	return changes
}

// UpdateMe lets a user edit their own profile. Bind it with Subject.ID set
// to the caller so their current email does not count as taken.
type UpdateMe struct {
	Name       *string `json:"name" validate:"omitempty,min=3,max=100" msg:"min=Too short user name;max=Too long user name"`
	Email      *string `json:"email" validate:"omitempty,email" msg:"*=Invalid email address"`
	Phone      *string `json:"phone" validate:"omitempty,phone_egsa"`
	ProfileImg *string `json:"profileImg" upload:"users,user"`
}

func (in *UpdateMe) check(c *Checks) {
	if taken(c, "email", normalizeEmail(in.Email)) {
		c.Fail("email", emailTakenMsg, *in.Email)
	}
}

func (in *UpdateMe) Changes() map[string]any {
	return profileChanges(in.Name, in.Email, in.Phone, in.ProfileImg)
}

type ChangePassword struct {
	CurrentPassword *string `json:"currentPassword" validate:"required,min=1" msg:"*=current password is required"`
	Password        *string `json:"password" validate:"required,alphanum,min=6" msg:"required=password is required;*=The new password must be only letters or numbers and at least 6 characters."`
	PasswordConfirm *string `json:"passwordConfirm" validate:"required,eqfield=Password" msg:"*=Passwords have to match!"`
}

func (in *ChangePassword) Passwords() (current, next string) {
	return *in.CurrentPassword, *in.Password
}

type AddressCreate struct {
	Alias      *string `json:"alias" validate:"required,min=1" msg:"*=address alias is required"`
	Details    *string `json:"details" validate:"required,min=1" msg:"*=address details is required"`
	Phone      *string `json:"phone" validate:"required,phone_egsa" msg:"required=phone of the address is required"`
	City       *string `json:"city" validate:"omitempty,min=1" msg:"*=Please enter a valid city name"`
	PostalCode *string `json:"postalCode" validate:"omitempty,postal_code"`
}

func (in *AddressCreate) check(c *Checks) {
	c.AliasFree("alias", trimmed(in.Alias))
}

func (in *AddressCreate) Model() *models.Address {
	return &models.Address{
		Alias:      trimmed(in.Alias),
		Details:    trimmed(in.Details),
		Phone:      trimmed(in.Phone),
		City:       trimmed(in.City),
		PostalCode: trimmed(in.PostalCode),
	}
}

type AddressUpdate struct {
	Alias      *string `json:"alias" validate:"omitempty,min=1"`
	Details    *string `json:"details" validate:"omitempty,min=1"`
	Phone      *string `json:"phone" validate:"omitempty,phone_egsa"`
	City       *string `json:"city" validate:"omitempty,min=1" msg:"*=Please enter a valid city name"`
	PostalCode *string `json:"postalCode" validate:"omitempty,postal_code"`
}

func (in *AddressUpdate) check(c *Checks) {
	c.AliasFree("alias", trimmed(in.Alias))
}

func (in *AddressUpdate) Changes() map[string]any {
	changes := map[string]any{}
	set := func(column string, p *string) {
		if p != nil {
			changes[column] = trimmed(p)
		}
	}
	set("alias", in.Alias)
	set("details", in.Details)
	set("phone", in.Phone)
	set("city", in.City)
	set("postal_code", in.PostalCode)
	return changes
}

func profileChanges(name, email, phone, profileImg *string) map[string]any {
	changes := map[string]any{}
	if name != nil {
		changes["name"] = trimmed(name)
		changes["slug"] = helpers.GenerateSlug(*name)
	}
	if email != nil {
		changes["email"] = normalizeEmail(email)
	}
	if phone != nil {
		changes["phone"] = trimmed(phone)
	}
	if profileImg != nil {
		changes["profile_img"] = *profileImg
	}
	return changes
}

func taken(c *Checks, column, value string) bool {
	if value == "" || c.err != nil {
		return false
	}
	ok, err := c.store.Taken(c.ctx, "users", column, value, c.subject.ID)
	if c.failed(err) {
		return false
	}
	return ok
}
