package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                    string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name                  string     `gorm:"size:100;not null" json:"name"`
	Slug                  string     `gorm:"size:128;index" json:"slug"`
	Email                 string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone                 string     `gorm:"size:20" json:"phone,omitempty"`
	ProfileImg            string     `gorm:"size:255" json:"profileImg,omitempty"`
	Password              string     `gorm:"size:255;not null" json:"-"`
	PasswordChangedAt     *time.Time `json:"passwordChangedAt,omitempty"`
	PasswordResetCode     *string    `gorm:"size:64" json:"-"`
	PasswordResetExpires  *time.Time `json:"-"`
	PasswordResetVerified *bool      `json:"-"`
	Role                  string     `gorm:"size:20;default:'user';not null" json:"role"`
	Active                bool       `gorm:"default:true;not null" json:"active"`
	Wishlist              []Product  `gorm:"many2many:user_wishlist;" json:"wishlist,omitempty"`
	Addresses             []Address  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&u.ID)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return
}

func (u *User) ImageFiles() []string {
	return collectPaths(UserImageDir, u.ProfileImg)
}

func (u *User) ExpandImageURLs(baseURL string) {
	u.ProfileImg = imageURL(baseURL, UserImageDir, u.ProfileImg)
}

// ChangedPasswordAfter reports whether the password was changed after a
// token issued at issuedAt (seconds precision, matching JWT iat).
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

func (u *User) AddressByAlias(alias string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].Alias == alias {
			return &u.Addresses[i]
		}
	}
	return nil
}
